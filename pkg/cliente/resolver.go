package cliente

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// marcadorSesion es la clave del fragmento con la que el puente OAuth
// devuelve su session id efímero (…#session_id=abc).
const marcadorSesion = "session_id"

// SessionResolver decide quién es el actor probando, en orden estricto, el
// handoff del puente OAuth, la sesión por cookie y el bearer guardado. Cada
// paso puede mutar estado de credenciales que consume el siguiente, así que
// nunca corren en paralelo.
type SessionResolver struct {
	api       *API
	creds     CredentialStore
	identidad *IdentityContext

	// espera entre fijar la cookie y confirmarla; el orden canje → cookie →
	// confirmación es contrato, la espera solo da margen de asentamiento.
	espera time.Duration

	// OnAviso recibe los mensajes destinados al usuario (fallas del puente).
	// nil los descarta.
	OnAviso func(mensaje string)
}

// NewSessionResolver construye el resolver sobre el transporte y el store dados.
func NewSessionResolver(api *API, creds CredentialStore, identidad *IdentityContext) *SessionResolver {
	return &SessionResolver{api: api, creds: creds, identidad: identidad}
}

// ConEspera fija el margen de asentamiento posterior al bind de la cookie.
func (r *SessionResolver) ConEspera(d time.Duration) *SessionResolver {
	r.espera = d
	return r
}

// ExtraerSessionID busca el marcador del puente en un fragmento de URL.
func ExtraerSessionID(fragment string) (string, bool) {
	fragment = strings.TrimPrefix(fragment, "#")
	valores, err := url.ParseQuery(fragment)
	if err != nil {
		return "", false
	}
	sid := valores.Get(marcadorSesion)
	return sid, sid != ""
}

// LimpiarFragmento quita el marcador del puente del fragmento y preserva el
// resto. El session id es de un solo uso: si queda en la barra de direcciones
// un reload lo reintenta y falla.
func LimpiarFragmento(fragment string) string {
	f := strings.TrimPrefix(fragment, "#")
	valores, err := url.ParseQuery(f)
	if err != nil || valores.Get(marcadorSesion) == "" {
		return fragment
	}
	valores.Del(marcadorSesion)
	if len(valores) == 0 {
		return ""
	}
	return "#" + valores.Encode()
}

// Resolver corre la resolución completa una vez y deja el resultado en el
// IdentityContext. Corre hasta el final en todos los caminos: la carga nunca
// queda prendida, ni siquiera ante errores. Devuelve el actor resuelto (o nil)
// y el fragmento ya sin el marcador, para que el shell lo aplique a la barra
// de direcciones.
func (r *SessionResolver) Resolver(ctx context.Context, fragment string) (*dto.UsuarioResponse, string) {
	gen := r.identidad.comenzarCarga()
	limpio := LimpiarFragmento(fragment)

	// Paso 1: handoff del puente. Una falla en cualquier tramo del canje
	// avisa al usuario y resuelve a "sin actor"; no tumba el proceso.
	if sid, ok := ExtraerSessionID(fragment); ok {
		if err := r.canjearPuente(ctx, sid); err != nil {
			r.avisar("no se pudo completar el ingreso con Google")
			r.identidad.terminar(gen, nil)
			return nil, limpio
		}
		if r.espera > 0 {
			select {
			case <-time.After(r.espera):
			case <-ctx.Done():
			}
		}
	}

	// Paso 2: sesión por cookie.
	if cs, err := r.api.CheckSession(ctx); err == nil && cs.Authenticated && cs.User != nil {
		r.identidad.terminar(gen, cs.User)
		return cs.User, limpio
	}

	// Paso 3: bearer guardado. Si el servidor lo rechaza se limpia por el
	// mismo contrato que el logout, así la próxima resolución no lo reintenta.
	if tok := r.creds.Get(); tok != "" {
		r.api.SetBearer(tok)
		actor, err := r.api.Me(ctx)
		if err == nil {
			r.identidad.terminar(gen, actor)
			return actor, limpio
		}
		var fa *FalloAutenticacion
		if errors.As(err, &fa) {
			_ = r.creds.Clear()
			r.api.SetBearer("")
		}
	}

	// Paso 4: sin sesión y sin token usable.
	r.identidad.terminar(gen, nil)
	return nil, limpio
}

// canjearPuente ejecuta la secuencia canje → bind de cookie, en ese orden.
func (r *SessionResolver) canjearPuente(ctx context.Context, sessionID string) error {
	datos, err := r.api.SessionData(ctx, sessionID)
	if err != nil {
		return err
	}
	return r.api.SetSessionCookie(ctx, datos.SessionToken)
}

// Login autentica con password. En éxito guarda el bearer y adopta el actor;
// en falla no toca ningún estado local.
func (r *SessionResolver) Login(ctx context.Context, email, password string) (*dto.UsuarioResponse, error) {
	out, err := r.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := r.creds.Set(out.Token); err != nil {
		return nil, err
	}
	r.api.SetBearer(out.Token)
	actor := out.User
	r.identidad.adoptar(&actor)
	return &actor, nil
}

// Logout notifica al servidor a mejor esfuerzo y limpia incondicionalmente el
// estado local: una falla de red no puede dejar credenciales colgadas.
func (r *SessionResolver) Logout(ctx context.Context) {
	_ = r.api.Logout(ctx)
	_ = r.creds.Clear()
	r.api.SetBearer("")
	r.identidad.limpiar()
}

// URLLoginGoogle arma la URL del puente a la que hay que redirigir el cliente
// entero; el puente vuelve al callback con el marcador en el fragmento.
func URLLoginGoogle(puenteBaseURL, callbackURL string) string {
	return strings.TrimSuffix(puenteBaseURL, "/") + "/?redirect=" + url.QueryEscape(callbackURL)
}

func (r *SessionResolver) avisar(mensaje string) {
	if r.OnAviso != nil {
		r.OnAviso(mensaje)
	}
}
