package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUsuarioNotFound    = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrEntradaInvalida    = errors.New("entrada inválida")
	ErrNoAutorizado       = errors.New("no autorizado")
	ErrSesionInvalida     = errors.New("sesión inválida o expirada")
	ErrProhibido          = errors.New("acceso denegado")
	ErrConflicto          = errors.New("conflicto con el estado actual")
	ErrTransicionInvalida = errors.New("transición de estado inválida")
	ErrComprobanteActivo  = errors.New("ya existe un comprobante activo para el período")
	ErrCuentaInactiva     = errors.New("cuenta inactiva")
)
