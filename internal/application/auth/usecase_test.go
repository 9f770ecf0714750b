package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
	"github.com/tu-usuario/lavadero-pro/internal/infrastructure/sesiones"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type usuarioRepoFake struct {
	porID map[string]*entity.Usuario
}

func newUsuarioRepoFake() *usuarioRepoFake {
	return &usuarioRepoFake{porID: map[string]*entity.Usuario{}}
}

func (r *usuarioRepoFake) Create(u *entity.Usuario) error {
	for _, e := range r.porID {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	copia := *u
	r.porID[u.ID] = &copia
	return nil
}

func (r *usuarioRepoFake) GetByID(id string) (*entity.Usuario, error) {
	u, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}

func (r *usuarioRepoFake) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range r.porID {
		if u.Email == email {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepoFake) GetByGoogleID(googleID string) (*entity.Usuario, error) {
	for _, u := range r.porID {
		if u.GoogleID != "" && u.GoogleID == googleID {
			copia := *u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepoFake) Update(u *entity.Usuario) error {
	if _, ok := r.porID[u.ID]; !ok {
		return domain.ErrUsuarioNotFound
	}
	copia := *u
	r.porID[u.ID] = &copia
	return nil
}

func (r *usuarioRepoFake) Delete(id string) error {
	if _, ok := r.porID[id]; !ok {
		return domain.ErrUsuarioNotFound
	}
	delete(r.porID, id)
	return nil
}

func (r *usuarioRepoFake) List(limit, offset int) ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range r.porID {
		copia := *u
		out = append(out, &copia)
	}
	return out, nil
}

func (r *usuarioRepoFake) Count() (int, error) { return len(r.porID), nil }

func (r *usuarioRepoFake) CountByRol(rol entity.Rol) (int, error) {
	n := 0
	for _, u := range r.porID {
		if u.Rol == rol {
			n++
		}
	}
	return n, nil
}

type lavaderoRepoFake struct {
	porID map[string]*entity.Lavadero
}

func newLavaderoRepoFake() *lavaderoRepoFake {
	return &lavaderoRepoFake{porID: map[string]*entity.Lavadero{}}
}

func (r *lavaderoRepoFake) Create(l *entity.Lavadero) error {
	copia := *l
	r.porID[l.ID] = &copia
	return nil
}

func (r *lavaderoRepoFake) GetByID(id string) (*entity.Lavadero, error) {
	l, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *l
	return &copia, nil
}

func (r *lavaderoRepoFake) GetByAdminID(adminID string) (*entity.Lavadero, error) {
	for _, l := range r.porID {
		if l.AdminID == adminID {
			copia := *l
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *lavaderoRepoFake) Update(l *entity.Lavadero) error {
	copia := *l
	r.porID[l.ID] = &copia
	return nil
}

func (r *lavaderoRepoFake) ListOperativos() ([]*entity.Lavadero, error) { return nil, nil }

func (r *lavaderoRepoFake) ExpirarVencidos(time.Time) (int, error) { return 0, nil }

func (r *lavaderoRepoFake) CountByEstado(string) (int, error) { return 0, nil }

type puenteFake struct {
	perfiles map[string]*auth.PerfilPuente // session id de un solo uso → perfil
}

func (p *puenteFake) Canjear(_ context.Context, sessionID string) (*auth.PerfilPuente, error) {
	perfil, ok := p.perfiles[sessionID]
	if !ok {
		return nil, errors.New("session id desconocido o ya usado")
	}
	delete(p.perfiles, sessionID)
	return perfil, nil
}

type registroTxFake struct {
	usuarios  repository.UsuarioRepository
	lavaderos repository.LavaderoRepository
}

func (t *registroTxFake) RunRegistro(_ context.Context, fn func(repository.UsuarioRepository, repository.LavaderoRepository) error) error {
	return fn(t.usuarios, t.lavaderos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

var ahora = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type entorno struct {
	uc        *auth.AuthUseCase
	usuarios  *usuarioRepoFake
	lavaderos *lavaderoRepoFake
	puente    *puenteFake
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()
	usuarios := newUsuarioRepoFake()
	lavaderos := newLavaderoRepoFake()
	puente := &puenteFake{perfiles: map[string]*auth.PerfilPuente{}}
	uc := auth.NewAuthUseCase(
		usuarios, lavaderos,
		sesiones.NewMemoria(30*time.Minute),
		puente,
		&registroTxFake{usuarios: usuarios, lavaderos: lavaderos},
		auth.JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "lavadero-pro-test"},
		auth.SuscripcionConfig{AliasBancario: "lavadero.pro.mp", Monto: decimal.NewFromInt(5000), Dias: 30},
		30*time.Minute,
	)
	return &entorno{uc: uc, usuarios: usuarios, lavaderos: lavaderos, puente: puente}
}

func TestRegistrarCliente(t *testing.T) {
	e := nuevoEntorno(t)

	out, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "cliente@test.com", Password: "secreta123", Nombre: "Cliente Uno",
	})

	require.NoError(t, err)
	assert.Equal(t, string(entity.RolCliente), out.Rol)
	assert.True(t, out.Activo)

	_, err = e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "cliente@test.com", Password: "otra12345", Nombre: "Duplicado",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// EMPLEADO es un alias legado: se acepta en el registro pero se persiste como
// CLIENTE, nunca como rol propio.
func TestRegistrarCliente_EmpleadoSePersisteComoCliente(t *testing.T) {
	e := nuevoEntorno(t)

	out, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "emp@test.com", Password: "secreta123", Nombre: "Empleado", Rol: "EMPLEADO",
	})

	require.NoError(t, err)
	assert.Equal(t, string(entity.RolCliente), out.Rol)
}

func TestRegistrarCliente_RolProhibido(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "sa@test.com", Password: "secreta123", Nombre: "Intruso", Rol: "SUPER_ADMIN",
	})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestRegistrarAdmin_CreaLavaderoPendiente(t *testing.T) {
	e := nuevoEntorno(t)

	out, err := e.uc.RegistrarAdmin(context.Background(), dto.RegisterAdminRequest{
		Email: "admin@norte.com", Password: "secreta123", Nombre: "Admin Norte",
		Lavadero: dto.LavaderoAltaRequest{Nombre: "Lavadero Norte", Direccion: "Av. Siempre Viva 123"},
	})

	require.NoError(t, err)
	assert.Equal(t, "lavadero.pro.mp", out.AliasBancario)
	assert.True(t, out.Monto.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, entity.EstadoPendienteAprobacion, out.Estado)

	admin, err := e.usuarios.GetByEmail("admin@norte.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RolAdmin, admin.Rol)

	lav, err := e.lavaderos.GetByAdminID(admin.ID)
	require.NoError(t, err)
	require.NotNil(t, lav)
	assert.Equal(t, "Lavadero Norte", lav.Nombre)
	assert.Equal(t, entity.EstadoPendienteAprobacion, lav.Estado)
	assert.Nil(t, lav.VenceEl)
}

func TestLogin(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "cliente@test.com", Password: "secreta123", Nombre: "Cliente",
	})
	require.NoError(t, err)

	out, err := e.uc.Login(dto.LoginRequest{Email: "cliente@test.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "cliente@test.com", out.User.Email)

	// El token emitido sirve como bearer.
	u, err := e.uc.ValidarBearer(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "cliente@test.com", u.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := nuevoEntorno(t)
	_, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "cliente@test.com", Password: "secreta123", Nombre: "Cliente",
	})
	require.NoError(t, err)

	_, err = e.uc.Login(dto.LoginRequest{Email: "cliente@test.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrNoAutorizado)

	_, err = e.uc.Login(dto.LoginRequest{Email: "nadie@test.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrNoAutorizado)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	e := nuevoEntorno(t)
	out, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "cliente@test.com", Password: "secreta123", Nombre: "Cliente",
	})
	require.NoError(t, err)

	u, _ := e.usuarios.GetByID(out.ID)
	u.Activo = false
	require.NoError(t, e.usuarios.Update(u))

	_, err = e.uc.Login(dto.LoginRequest{Email: "cliente@test.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrCuentaInactiva)
}

func TestCanjearSesionPuente_CreaClienteNuevo(t *testing.T) {
	e := nuevoEntorno(t)
	e.puente.perfiles["sid-1"] = &auth.PerfilPuente{
		GoogleID: "g-123", Email: "nuevo@gmail.com", Nombre: "Nuevo", Picture: "https://img/p.jpg",
	}

	out, err := e.uc.CanjearSesionPuente(context.Background(), "sid-1")
	require.NoError(t, err)
	require.NotEmpty(t, out.SessionToken)

	u, err := e.uc.ValidarSesion(context.Background(), out.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@gmail.com", u.Email)
	assert.Equal(t, entity.RolCliente, u.Rol)
	assert.Equal(t, "g-123", u.GoogleID)
}

// Una cuenta local preexistente con el mismo email se vincula a la identidad
// externa en vez de duplicarse.
func TestCanjearSesionPuente_VinculaPorEmail(t *testing.T) {
	e := nuevoEntorno(t)
	creado, err := e.uc.RegistrarCliente(dto.RegisterRequest{
		Email: "cliente@test.com", Password: "secreta123", Nombre: "Cliente",
	})
	require.NoError(t, err)

	e.puente.perfiles["sid-1"] = &auth.PerfilPuente{
		GoogleID: "g-123", Email: "cliente@test.com", Nombre: "Cliente G",
	}
	out, err := e.uc.CanjearSesionPuente(context.Background(), "sid-1")
	require.NoError(t, err)

	u, err := e.uc.ValidarSesion(context.Background(), out.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, creado.ID, u.ID, "misma cuenta, no un duplicado")
	assert.Equal(t, "g-123", u.GoogleID)
}

// El session id del puente es de un solo uso.
func TestCanjearSesionPuente_IdYaUsado(t *testing.T) {
	e := nuevoEntorno(t)
	e.puente.perfiles["sid-1"] = &auth.PerfilPuente{GoogleID: "g-123", Email: "a@b.com", Nombre: "A"}

	_, err := e.uc.CanjearSesionPuente(context.Background(), "sid-1")
	require.NoError(t, err)

	_, err = e.uc.CanjearSesionPuente(context.Background(), "sid-1")
	assert.Error(t, err)
}

func TestValidarSesion_RechazaInexistenteYLogout(t *testing.T) {
	e := nuevoEntorno(t)
	e.puente.perfiles["sid-1"] = &auth.PerfilPuente{GoogleID: "g-1", Email: "a@b.com", Nombre: "A"}
	out, err := e.uc.CanjearSesionPuente(context.Background(), "sid-1")
	require.NoError(t, err)

	_, err = e.uc.ValidarSesion(context.Background(), "token-falso")
	assert.ErrorIs(t, err, domain.ErrSesionInvalida)

	require.NoError(t, e.uc.Logout(context.Background(), out.SessionToken))
	_, err = e.uc.ValidarSesion(context.Background(), out.SessionToken)
	assert.ErrorIs(t, err, domain.ErrSesionInvalida)

	// Logout es idempotente.
	assert.NoError(t, e.uc.Logout(context.Background(), out.SessionToken))
}

func TestValidarSesion_CuentaDesactivada(t *testing.T) {
	e := nuevoEntorno(t)
	e.puente.perfiles["sid-1"] = &auth.PerfilPuente{GoogleID: "g-1", Email: "a@b.com", Nombre: "A"}
	out, err := e.uc.CanjearSesionPuente(context.Background(), "sid-1")
	require.NoError(t, err)

	u, err := e.uc.ValidarSesion(context.Background(), out.SessionToken)
	require.NoError(t, err)

	u.Activo = false
	require.NoError(t, e.usuarios.Update(u))

	// La sesión sigue existiendo pero la cuenta ya no puede operar.
	_, err = e.uc.ValidarSesion(context.Background(), out.SessionToken)
	assert.ErrorIs(t, err, domain.ErrSesionInvalida)
}

func TestValidarBearer_TokenInvalido(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.uc.ValidarBearer("no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrSesionInvalida)
}
