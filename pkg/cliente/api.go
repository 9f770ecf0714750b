package cliente

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// ErrEntradaInvalida la validación local abortó la operación antes de llamar
// al servidor.
var ErrEntradaInvalida = errors.New("entrada inválida")

// FalloAutenticacion credenciales rechazadas por el servidor (login fallido,
// token vencido, sesión inexistente).
type FalloAutenticacion struct {
	Motivo string
}

func (e *FalloAutenticacion) Error() string {
	return "autenticación rechazada: " + e.Motivo
}

// ConflictoWorkflow el servidor rechazó una mutación del workflow de
// comprobantes (ya hay uno activo, o ya fue revisado).
type ConflictoWorkflow struct {
	Mensaje string
}

func (e *ConflictoWorkflow) Error() string {
	return "conflicto de workflow: " + e.Mensaje
}

// ErrorAPI cualquier otra respuesta de error del servidor.
type ErrorAPI struct {
	Status  int
	Code    string
	Message string
}

func (e *ErrorAPI) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// API transporte HTTP hacia el servidor. Lleva los dos transportes de
// credencial a la vez: el cookie jar para la sesión de navegador y un bearer
// opcional para el camino de fallback. Nunca se asumen excluyentes.
type API struct {
	baseURL string
	http    *http.Client

	mu     sync.RWMutex
	bearer string
}

// NewAPI construye el cliente con su propio cookie jar.
func NewAPI(baseURL string, timeout time.Duration) *API {
	jar, _ := cookiejar.New(nil)
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}
}

// SetBearer fija (o borra, con "") el token que se adjunta como Authorization.
func (a *API) SetBearer(token string) {
	a.mu.Lock()
	a.bearer = token
	a.mu.Unlock()
}

func (a *API) hacer(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = &bytes.Buffer{}
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, buf)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	a.mu.RLock()
	if a.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+a.bearer)
	}
	a.mu.RUnlock()
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return a.mapError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *API) mapError(resp *http.Response) error {
	var e dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&e)
	if e.Message == "" {
		e.Message = resp.Status
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &FalloAutenticacion{Motivo: e.Message}
	case http.StatusConflict:
		return &ConflictoWorkflow{Mensaje: e.Message}
	}
	return &ErrorAPI{Status: resp.StatusCode, Code: e.Code, Message: e.Message}
}

// CheckSession pregunta si la cookie de sesión vigente es válida. Nunca es un
// error de autenticación: authenticated=false es una respuesta normal.
func (a *API) CheckSession(ctx context.Context) (*dto.CheckSessionResponse, error) {
	var out dto.CheckSessionResponse
	if err := a.hacer(ctx, http.MethodGet, "/api/auth/check-session", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionData canjea el session id efímero del puente por un session_token.
func (a *API) SessionData(ctx context.Context, sessionID string) (*dto.SessionDataResponse, error) {
	var out dto.SessionDataResponse
	err := a.hacer(ctx, http.MethodGet, "/api/auth/session-data", nil, &out, map[string]string{"X-Session-ID": sessionID})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetSessionCookie pide al servidor que fije el token como cookie de sesión.
func (a *API) SetSessionCookie(ctx context.Context, sessionToken string) error {
	in := dto.SetSessionCookieRequest{SessionToken: sessionToken}
	return a.hacer(ctx, http.MethodPost, "/api/auth/set-session-cookie", in, nil, nil)
}

// Me devuelve el actor autenticado con lo que haya (cookie o bearer).
func (a *API) Me(ctx context.Context) (*dto.UsuarioResponse, error) {
	var out dto.UsuarioResponse
	if err := a.hacer(ctx, http.MethodGet, "/api/auth/me", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login autentica con email y password.
func (a *API) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	in := dto.LoginRequest{Email: email, Password: password}
	var out dto.LoginResponse
	if err := a.hacer(ctx, http.MethodPost, "/api/auth/login", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register registra un cliente final.
func (a *API) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	var out dto.UsuarioResponse
	if err := a.hacer(ctx, http.MethodPost, "/api/auth/register", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterAdmin registra un admin con su lavadero y devuelve las
// instrucciones de pago.
func (a *API) RegisterAdmin(ctx context.Context, in dto.RegisterAdminRequest) (*dto.RegisterAdminResponse, error) {
	var out dto.RegisterAdminResponse
	if err := a.hacer(ctx, http.MethodPost, "/api/auth/register-admin", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalida la sesión del lado del servidor.
func (a *API) Logout(ctx context.Context) error {
	return a.hacer(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// PagoPendiente estado de pago del período vigente del lavadero del actor.
func (a *API) PagoPendiente(ctx context.Context) (*dto.PagoPendienteResponse, error) {
	var out dto.PagoPendienteResponse
	if err := a.hacer(ctx, http.MethodGet, "/api/lavaderos/mi/pago-pendiente", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnviarComprobante sube la referencia del comprobante de pago.
func (a *API) EnviarComprobante(ctx context.Context, imagenURL string) (*dto.ComprobanteResponse, error) {
	in := dto.EnviarComprobanteRequest{ImagenURL: imagenURL}
	var out dto.ComprobanteResponse
	if err := a.hacer(ctx, http.MethodPost, "/api/comprobantes", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// ComprobantesPendientes lista global de comprobantes a revisar.
func (a *API) ComprobantesPendientes(ctx context.Context) ([]*dto.ComprobantePendienteResponse, error) {
	var out []*dto.ComprobantePendienteResponse
	if err := a.hacer(ctx, http.MethodGet, "/api/comprobantes/pendientes", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// AprobarComprobante marca un comprobante como confirmado.
func (a *API) AprobarComprobante(ctx context.Context, id string) error {
	return a.hacer(ctx, http.MethodPost, "/api/comprobantes/"+id+"/aprobar", nil, nil, nil)
}

// RechazarComprobante marca un comprobante como rechazado con comentario.
func (a *API) RechazarComprobante(ctx context.Context, id, comentario string) error {
	in := dto.RechazarComprobanteRequest{Comentario: comentario}
	return a.hacer(ctx, http.MethodPost, "/api/comprobantes/"+id+"/rechazar", in, nil, nil)
}

// LavaderosOperativos directorio público de lavaderos en estado operativo.
func (a *API) LavaderosOperativos(ctx context.Context) ([]*dto.LavaderoResponse, error) {
	var out []*dto.LavaderoResponse
	if err := a.hacer(ctx, http.MethodGet, "/api/lavaderos/operativos", nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}
