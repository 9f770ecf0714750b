// Package puente implementa el cliente HTTP del proveedor de identidad externo
// (el "puente OAuth"): el navegador vuelve de la redirección con un session id
// de un solo uso en el fragmento, y el backend lo canjea aquí por el perfil
// autenticado.
package puente

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tu-usuario/lavadero-pro/internal/application/auth"
	"github.com/tu-usuario/lavadero-pro/pkg/config"
)

var _ auth.PuenteOAuth = (*Cliente)(nil)

// Cliente cliente HTTP del puente OAuth.
type Cliente struct {
	baseURL string
	http    *http.Client
}

// New construye el cliente con timeout propio.
func New(cfg config.PuenteConfig) *Cliente {
	timeout := time.Duration(cfg.TimeoutSegundos) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cliente{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type perfilRespuesta struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Canjear consume el session id de un solo uso contra el puente y devuelve el
// perfil autenticado. Un id usado o desconocido responde no-2xx y se propaga
// como error (el flujo de resolución lo degrada a "sin actor").
func (c *Cliente) Canjear(ctx context.Context, sessionID string) (*auth.PerfilPuente, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/env/oauth/session-data", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("puente no disponible: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("puente respondió %d", resp.StatusCode)
	}
	var p perfilRespuesta
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decodificar perfil del puente: %w", err)
	}
	if p.Email == "" {
		return nil, fmt.Errorf("perfil del puente sin email")
	}
	return &auth.PerfilPuente{
		GoogleID: p.ID,
		Email:    p.Email,
		Nombre:   p.Name,
		Picture:  p.Picture,
	}, nil
}

// URLRedireccion arma la URL a la que el cliente debe redirigir el navegador
// para iniciar el login externo; el puente vuelve al callback con
// #session_id=... en el fragmento.
func URLRedireccion(baseURL, callbackURL string) string {
	return fmt.Sprintf("%s/?redirect=%s", baseURL, url.QueryEscape(callbackURL))
}
