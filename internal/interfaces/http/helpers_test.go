package http_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/application/comprobantes"
	"github.com/tu-usuario/lavadero-pro/internal/application/dashboard"
	"github.com/tu-usuario/lavadero-pro/internal/application/lavaderos"
	"github.com/tu-usuario/lavadero-pro/internal/application/usuarios"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/internal/infrastructure/sesiones"
	apphttp "github.com/tu-usuario/lavadero-pro/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria para levantar la app completa sin PostgreSQL
// ──────────────────────────────────────────────────────────────────────────────

type memUsuarios struct {
	mu    sync.Mutex
	porID map[string]*entity.Usuario
}

func newMemUsuarios() *memUsuarios { return &memUsuarios{porID: map[string]*entity.Usuario{}} }

func (r *memUsuarios) Create(u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.porID {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	copia := *u
	r.porID[u.ID] = &copia
	return nil
}

func (r *memUsuarios) GetByID(id string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (r *memUsuarios) GetByEmail(email string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.porID {
		if u.Email == email {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *memUsuarios) GetByGoogleID(googleID string) (*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.porID {
		if u.GoogleID != "" && u.GoogleID == googleID {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *memUsuarios) Update(u *entity.Usuario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.porID[u.ID]; !ok {
		return domain.ErrUsuarioNotFound
	}
	copia := *u
	r.porID[u.ID] = &copia
	return nil
}

func (r *memUsuarios) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.porID[id]; !ok {
		return domain.ErrUsuarioNotFound
	}
	delete(r.porID, id)
	return nil
}

func (r *memUsuarios) List(limit, offset int) ([]*entity.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Usuario
	for _, u := range r.porID {
		copia := *u
		out = append(out, &copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *memUsuarios) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.porID), nil
}

func (r *memUsuarios) CountByRol(rol entity.Rol) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.porID {
		if u.Rol == rol {
			n++
		}
	}
	return n, nil
}

type memLavaderos struct {
	mu    sync.Mutex
	porID map[string]*entity.Lavadero
}

func newMemLavaderos() *memLavaderos { return &memLavaderos{porID: map[string]*entity.Lavadero{}} }

func (r *memLavaderos) Create(l *entity.Lavadero) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copia := *l
	r.porID[l.ID] = &copia
	return nil
}

func (r *memLavaderos) GetByID(id string) (*entity.Lavadero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *l
	return &copia, nil
}

func (r *memLavaderos) GetByAdminID(adminID string) (*entity.Lavadero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.porID {
		if l.AdminID == adminID {
			copia := *l
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *memLavaderos) Update(l *entity.Lavadero) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.porID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *l
	r.porID[l.ID] = &copia
	return nil
}

func (r *memLavaderos) ListOperativos() ([]*entity.Lavadero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Lavadero
	for _, l := range r.porID {
		if l.Operativo() {
			copia := *l
			out = append(out, &copia)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r *memLavaderos) ExpirarVencidos(ahora time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.porID {
		if l.NormalizarVencimiento(ahora) {
			n++
		}
	}
	return n, nil
}

func (r *memLavaderos) CountByEstado(estado string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.porID {
		if l.Estado == estado {
			n++
		}
	}
	return n, nil
}

type memComprobantes struct {
	mu    sync.Mutex
	porID map[string]*entity.Comprobante
	// para la bandeja de revisión
	lavaderos *memLavaderos
	usuarios  *memUsuarios
}

func newMemComprobantes(lavaderos *memLavaderos, usuarios *memUsuarios) *memComprobantes {
	return &memComprobantes{porID: map[string]*entity.Comprobante{}, lavaderos: lavaderos, usuarios: usuarios}
}

func (r *memComprobantes) Create(c *entity.Comprobante) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.porID {
		if e.LavaderoID == c.LavaderoID && e.Periodo == c.Periodo && e.EsActivo() {
			return domain.ErrComprobanteActivo
		}
	}
	copia := *c
	r.porID[c.ID] = &copia
	return nil
}

func (r *memComprobantes) GetByID(id string) (*entity.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *memComprobantes) GetActivoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.porID {
		if c.LavaderoID == lavaderoID && c.Periodo == periodo && c.EsActivo() {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *memComprobantes) GetUltimoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ultimo *entity.Comprobante
	for _, c := range r.porID {
		if c.LavaderoID != lavaderoID || c.Periodo != periodo {
			continue
		}
		if ultimo == nil || c.EnviadoEn.After(ultimo.EnviadoEn) {
			ultimo = c
		}
	}
	if ultimo == nil {
		return nil, nil
	}
	copia := *ultimo
	return &copia, nil
}

func (r *memComprobantes) Update(c *entity.Comprobante) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.porID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *c
	r.porID[c.ID] = &copia
	return nil
}

func (r *memComprobantes) ListPendientes() ([]*repository.ComprobantePendiente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*repository.ComprobantePendiente
	for _, c := range r.porID {
		if c.Estado != entity.ComprobantePendiente {
			continue
		}
		p := &repository.ComprobantePendiente{Comprobante: *c}
		if l, _ := r.lavaderos.GetByID(c.LavaderoID); l != nil {
			p.LavaderoNombre = l.Nombre
		}
		if u, _ := r.usuarios.GetByID(c.AdminID); u != nil {
			p.AdminNombre = u.Nombre
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Comprobante.EnviadoEn.Before(out[j].Comprobante.EnviadoEn)
	})
	return out, nil
}

func (r *memComprobantes) ListByLavadero(lavaderoID string, limit, offset int) ([]*entity.Comprobante, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Comprobante
	for _, c := range r.porID {
		if c.LavaderoID == lavaderoID {
			copia := *c
			out = append(out, &copia)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnviadoEn.After(out[j].EnviadoEn) })
	return out, nil
}

func (r *memComprobantes) CountByLavadero(lavaderoID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.porID {
		if c.LavaderoID == lavaderoID {
			n++
		}
	}
	return n, nil
}

func (r *memComprobantes) CountPendientes() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.porID {
		if c.Estado == entity.ComprobantePendiente {
			n++
		}
	}
	return n, nil
}

type memTx struct {
	usuarios     *memUsuarios
	lavaderos    *memLavaderos
	comprobantes *memComprobantes
}

func (t *memTx) RunRegistro(_ context.Context, fn func(repository.UsuarioRepository, repository.LavaderoRepository) error) error {
	return fn(t.usuarios, t.lavaderos)
}

func (t *memTx) RunRevision(_ context.Context, fn func(repository.ComprobanteRepository, repository.LavaderoRepository) error) error {
	return fn(t.comprobantes, t.lavaderos)
}

type memPuente struct {
	mu       sync.Mutex
	perfiles map[string]*auth.PerfilPuente
}

func (p *memPuente) Canjear(_ context.Context, sessionID string) (*auth.PerfilPuente, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	perfil, ok := p.perfiles[sessionID]
	if !ok {
		return nil, errors.New("session id desconocido o ya usado")
	}
	delete(p.perfiles, sessionID)
	return perfil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	cookieSesion = "session_token"
	aliasPago    = "lavadero.pro.mp"
)

type plataforma struct {
	app       *fiber.App
	usuarios  *memUsuarios
	lavaderos *memLavaderos
	comps     *memComprobantes
	puente    *memPuente
	authUC    *auth.AuthUseCase
	reloj     *relojControlado
}

// relojControlado deja avanzar el tiempo del servidor desde los tests.
type relojControlado struct {
	mu sync.Mutex
	t  time.Time
}

func (r *relojControlado) Now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t
}

func (r *relojControlado) Avanzar(d time.Duration) {
	r.mu.Lock()
	r.t = r.t.Add(d)
	r.mu.Unlock()
}

// nuevaPlataforma levanta la app Fiber completa con repos en memoria, la misma
// cadena de middlewares y rutas que producción.
func nuevaPlataforma(t *testing.T) *plataforma {
	t.Helper()

	reloj := &relojControlado{t: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	usuariosRepo := newMemUsuarios()
	lavaderosRepo := newMemLavaderos()
	compsRepo := newMemComprobantes(lavaderosRepo, usuariosRepo)
	tx := &memTx{usuarios: usuariosRepo, lavaderos: lavaderosRepo, comprobantes: compsRepo}
	puenteFake := &memPuente{perfiles: map[string]*auth.PerfilPuente{}}

	authUC := auth.NewAuthUseCase(
		usuariosRepo, lavaderosRepo,
		sesiones.NewMemoria(30*time.Minute),
		puenteFake, tx,
		auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "lavadero-pro-test"},
		auth.SuscripcionConfig{AliasBancario: aliasPago, Monto: decimal.NewFromInt(5000), Dias: 30},
		30*time.Minute,
	).ConReloj(reloj.Now)

	lavaderoUC := lavaderos.NewLavaderoUseCase(lavaderosRepo, compsRepo).ConReloj(reloj.Now)
	comprobanteUC := comprobantes.NewComprobanteUseCase(compsRepo, lavaderosRepo, tx, 30).ConReloj(reloj.Now)
	dashboardUC := dashboard.NewDashboardUseCase(usuariosRepo, lavaderosRepo, compsRepo).ConReloj(reloj.Now)
	usuarioUC := usuarios.NewUsuarioUseCase(usuariosRepo)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		LavaderoUC:    lavaderoUC,
		ComprobanteUC: comprobanteUC,
		DashboardUC:   dashboardUC,
		UsuarioUC:     usuarioUC,
		CookieNombre:  cookieSesion,
		CookieSegura:  false,
		CookieTTL:     30 * time.Minute,
	})

	return &plataforma{
		app:       app,
		usuarios:  usuariosRepo,
		lavaderos: lavaderosRepo,
		comps:     compsRepo,
		puente:    puenteFake,
		authUC:    authUC,
		reloj:     reloj,
	}
}

// crearSuperAdmin siembra un SUPER_ADMIN directo en el repo (no hay endpoint
// público para crearlo) y devuelve su bearer por login.
func (p *plataforma) crearSuperAdmin(t *testing.T) string {
	t.Helper()
	out, err := p.authUC.RegistrarCliente(dtoRegister("sa@plataforma.com", "Super Admin"))
	if err != nil {
		t.Fatalf("sembrar super admin: %v", err)
	}
	u, _ := p.usuarios.GetByID(out.ID)
	u.Rol = entity.RolSuperAdmin
	if err := p.usuarios.Update(u); err != nil {
		t.Fatalf("promover super admin: %v", err)
	}
	login, err := p.authUC.Login(dtoLogin("sa@plataforma.com"))
	if err != nil {
		t.Fatalf("login super admin: %v", err)
	}
	return login.Token
}
