package entity

import "time"

// Sesion es la credencial opaca del lado del servidor referenciada por cookie.
// El cliente nunca la materializa: solo conoce "authenticated: bool" más la
// proyección del Usuario que devuelve check-session.
type Sesion struct {
	Token     string
	UsuarioID string
	CreadaEn  time.Time
	ExpiraEn  time.Time
}

// Expirada indica si la sesión ya no es válida.
func (s *Sesion) Expirada(ahora time.Time) bool {
	return !s.ExpiraEn.After(ahora)
}
