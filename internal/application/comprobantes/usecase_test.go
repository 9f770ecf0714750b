package comprobantes_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/lavadero-pro/internal/application/comprobantes"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

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
	if _, ok := r.porID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *l
	r.porID[l.ID] = &copia
	return nil
}

func (r *lavaderoRepoFake) ListOperativos() ([]*entity.Lavadero, error) {
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

func (r *lavaderoRepoFake) ExpirarVencidos(ahora time.Time) (int, error) {
	n := 0
	for _, l := range r.porID {
		if l.NormalizarVencimiento(ahora) {
			n++
		}
	}
	return n, nil
}

func (r *lavaderoRepoFake) CountByEstado(estado string) (int, error) {
	n := 0
	for _, l := range r.porID {
		if l.Estado == estado {
			n++
		}
	}
	return n, nil
}

type comprobanteRepoFake struct {
	porID map[string]*entity.Comprobante
}

func newComprobanteRepoFake() *comprobanteRepoFake {
	return &comprobanteRepoFake{porID: map[string]*entity.Comprobante{}}
}

func (r *comprobanteRepoFake) Create(c *entity.Comprobante) error {
	activo, _ := r.GetActivoPorPeriodo(c.LavaderoID, c.Periodo)
	if activo != nil {
		return domain.ErrComprobanteActivo
	}
	copia := *c
	r.porID[c.ID] = &copia
	return nil
}

func (r *comprobanteRepoFake) GetByID(id string) (*entity.Comprobante, error) {
	c, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *comprobanteRepoFake) GetActivoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error) {
	for _, c := range r.porID {
		if c.LavaderoID == lavaderoID && c.Periodo == periodo && c.EsActivo() {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *comprobanteRepoFake) GetUltimoPorPeriodo(lavaderoID, periodo string) (*entity.Comprobante, error) {
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

func (r *comprobanteRepoFake) Update(c *entity.Comprobante) error {
	if _, ok := r.porID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *c
	r.porID[c.ID] = &copia
	return nil
}

func (r *comprobanteRepoFake) ListPendientes() ([]*repository.ComprobantePendiente, error) {
	var out []*repository.ComprobantePendiente
	for _, c := range r.porID {
		if c.Estado == entity.ComprobantePendiente {
			out = append(out, &repository.ComprobantePendiente{Comprobante: *c})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Comprobante.EnviadoEn.Before(out[j].Comprobante.EnviadoEn)
	})
	return out, nil
}

func (r *comprobanteRepoFake) ListByLavadero(lavaderoID string, limit, offset int) ([]*entity.Comprobante, error) {
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

func (r *comprobanteRepoFake) CountByLavadero(lavaderoID string) (int, error) {
	n := 0
	for _, c := range r.porID {
		if c.LavaderoID == lavaderoID {
			n++
		}
	}
	return n, nil
}

func (r *comprobanteRepoFake) CountPendientes() (int, error) {
	n := 0
	for _, c := range r.porID {
		if c.Estado == entity.ComprobantePendiente {
			n++
		}
	}
	return n, nil
}

type txRunnerFake struct {
	comprobantes repository.ComprobanteRepository
	lavaderos    repository.LavaderoRepository
}

func (t *txRunnerFake) RunRevision(_ context.Context, fn func(repository.ComprobanteRepository, repository.LavaderoRepository) error) error {
	return fn(t.comprobantes, t.lavaderos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

var hoy = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func nuevoEscenario(t *testing.T) (*comprobantes.ComprobanteUseCase, *lavaderoRepoFake, *comprobanteRepoFake) {
	t.Helper()
	lavaderos := newLavaderoRepoFake()
	comps := newComprobanteRepoFake()
	require.NoError(t, lavaderos.Create(&entity.Lavadero{
		ID:               "lav-1",
		AdminID:          "adm-1",
		Nombre:           "Lavadero Norte",
		Estado:           entity.EstadoPendienteAprobacion,
		MontoSuscripcion: decimal.NewFromInt(5000),
	}))
	uc := comprobantes.NewComprobanteUseCase(comps, lavaderos, &txRunnerFake{comprobantes: comps, lavaderos: lavaderos}, 30).
		ConReloj(func() time.Time { return hoy })
	return uc, lavaderos, comps
}

func TestEnviar_CreaPendiente(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)

	out, err := uc.Enviar("adm-1", "https://img/1.jpg")

	require.NoError(t, err)
	assert.Equal(t, entity.ComprobantePendiente, out.Estado)
	assert.Equal(t, "2026-03", out.Periodo)
	assert.True(t, out.Monto.Equal(decimal.NewFromInt(5000)), "el monto sale de la suscripción del lavadero")
}

func TestEnviar_RechazaSegundoActivo(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)
	_, err := uc.Enviar("adm-1", "https://img/1.jpg")
	require.NoError(t, err)

	_, err = uc.Enviar("adm-1", "https://img/2.jpg")
	assert.ErrorIs(t, err, domain.ErrComprobanteActivo)
}

func TestEnviar_SinLavadero(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)

	_, err := uc.Enviar("otro-admin", "https://img/1.jpg")
	assert.ErrorIs(t, err, domain.ErrProhibido)
}

func TestEnviar_SinImagen(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)

	_, err := uc.Enviar("adm-1", "  ")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}

func TestAprobar_ActivaLavadero(t *testing.T) {
	uc, lavaderos, _ := nuevoEscenario(t)
	out, err := uc.Enviar("adm-1", "https://img/1.jpg")
	require.NoError(t, err)

	require.NoError(t, uc.Aprobar(context.Background(), "sa-1", out.ID))

	l, err := lavaderos.GetByID("lav-1")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoActivo, l.Estado)
	require.NotNil(t, l.VenceEl)
	assert.Equal(t, hoy.AddDate(0, 0, 30), *l.VenceEl)

	pendientes, err := uc.ListarPendientes()
	require.NoError(t, err)
	assert.Empty(t, pendientes)
}

func TestAprobar_DosVecesEsConflicto(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)
	out, err := uc.Enviar("adm-1", "https://img/1.jpg")
	require.NoError(t, err)
	require.NoError(t, uc.Aprobar(context.Background(), "sa-1", out.ID))

	err = uc.Aprobar(context.Background(), "sa-2", out.ID)
	assert.ErrorIs(t, err, domain.ErrConflicto)
}

func TestAprobar_Inexistente(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)

	err := uc.Aprobar(context.Background(), "sa-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRechazar_NoTocaLavaderoYHabilitaReenvio(t *testing.T) {
	uc, lavaderos, _ := nuevoEscenario(t)
	out, err := uc.Enviar("adm-1", "https://img/1.jpg")
	require.NoError(t, err)

	require.NoError(t, uc.Rechazar(context.Background(), "sa-1", out.ID, "monto incorrecto"))

	l, err := lavaderos.GetByID("lav-1")
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPendienteAprobacion, l.Estado, "rechazar no cambia el estado del tenant")

	// El período quedó reabierto: el reenvío entra sin conflicto.
	reenvio, err := uc.Enviar("adm-1", "https://img/2.jpg")
	require.NoError(t, err)
	assert.Equal(t, entity.ComprobantePendiente, reenvio.Estado)
}

func TestRechazar_ComentarioObligatorio(t *testing.T) {
	uc, _, comps := nuevoEscenario(t)
	out, err := uc.Enviar("adm-1", "https://img/1.jpg")
	require.NoError(t, err)

	err = uc.Rechazar(context.Background(), "sa-1", out.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)

	c, err := comps.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ComprobantePendiente, c.Estado)
}

func TestListarPendientes_IncluyeDatosDeRevision(t *testing.T) {
	uc, _, _ := nuevoEscenario(t)
	_, err := uc.Enviar("adm-1", "https://img/1.jpg")
	require.NoError(t, err)

	pendientes, err := uc.ListarPendientes()
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, "2026-03", pendientes[0].Periodo)
	assert.True(t, pendientes[0].Monto.Equal(decimal.NewFromInt(5000)))
}
