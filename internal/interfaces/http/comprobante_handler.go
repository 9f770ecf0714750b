package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/application/comprobantes"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// ComprobanteHandler maneja el envío y la revisión de comprobantes de pago.
type ComprobanteHandler struct {
	uc *comprobantes.ComprobanteUseCase
}

// NewComprobanteHandler construye el handler de comprobantes.
func NewComprobanteHandler(uc *comprobantes.ComprobanteUseCase) *ComprobanteHandler {
	return &ComprobanteHandler{uc: uc}
}

// Enviar godoc
// @Summary      Enviar comprobante de pago
// @Description  Un solo comprobante activo (PENDIENTE o CONFIRMADO) por lavadero y período; uno rechazado habilita el reenvío.
// @Tags         comprobantes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnviarComprobanteRequest  true  "imagen_url del comprobante"
// @Success      201   {object}  dto.ComprobanteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comprobantes [post]
func (h *ComprobanteHandler) Enviar(c *fiber.Ctx) error {
	var in dto.EnviarComprobanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Enviar(GetUserID(c), in.ImagenURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEntradaInvalida):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "imagen_url es requerida"})
		case errors.Is(err, domain.ErrComprobanteActivo):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PROOF_ACTIVE", Message: "ya existe un comprobante activo para este período"})
		case errors.Is(err, domain.ErrProhibido), errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tenés un lavadero para el que enviar comprobantes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MisComprobantes godoc
// @Summary      Historial de comprobantes del lavadero del admin
// @Tags         comprobantes
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.ComprobanteResponse
// @Router       /api/comprobantes/mios [get]
func (h *ComprobanteHandler) MisComprobantes(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	out, err := h.uc.ListarDelLavadero(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no tenés un lavadero registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Pendientes godoc
// @Summary      Comprobantes pendientes de revisión
// @Tags         comprobantes
// @Produce      json
// @Success      200  {array}  dto.ComprobantePendienteResponse
// @Router       /api/comprobantes/pendientes [get]
func (h *ComprobanteHandler) Pendientes(c *fiber.Ctx) error {
	out, err := h.uc.ListarPendientes()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Aprobar godoc
// @Summary      Aprobar un comprobante
// @Description  Marca el comprobante CONFIRMADO y extiende el vencimiento del lavadero en una sola transacción.
// @Tags         comprobantes
// @Produce      json
// @Param        id  path  string  true  "id del comprobante"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/comprobantes/{id}/aprobar [post]
func (h *ComprobanteHandler) Aprobar(c *fiber.Ctx) error {
	if err := h.uc.Aprobar(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return h.mapRevisionError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "comprobante aprobado"})
}

// Rechazar godoc
// @Summary      Rechazar un comprobante
// @Description  Requiere un comentario; el lavadero no cambia de estado.
// @Tags         comprobantes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id del comprobante"
// @Param        body  body  dto.RechazarComprobanteRequest  true  "comentario del revisor"
// @Success      200   {object}  dto.MensajeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/comprobantes/{id}/rechazar [post]
func (h *ComprobanteHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.RechazarComprobanteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Rechazar(c.Context(), GetUserID(c), c.Params("id"), in.Comentario); err != nil {
		return h.mapRevisionError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "comprobante rechazado"})
}

func (h *ComprobanteHandler) mapRevisionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el comprobante no existe"})
	case errors.Is(err, domain.ErrConflicto):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_REVIEWED", Message: "el comprobante ya fue revisado"})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "comentario es requerido para rechazar"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
