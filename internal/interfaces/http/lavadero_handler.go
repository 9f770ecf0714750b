package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/application/lavaderos"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// LavaderoHandler expone el directorio público y el estado de pago del tenant.
type LavaderoHandler struct {
	uc *lavaderos.LavaderoUseCase
}

// NewLavaderoHandler construye el handler de lavaderos.
func NewLavaderoHandler(uc *lavaderos.LavaderoUseCase) *LavaderoHandler {
	return &LavaderoHandler{uc: uc}
}

// Operativos godoc
// @Summary      Lavaderos operativos (directorio público)
// @Description  Solo lavaderos ACTIVO y no vencidos; el barrido de vencimientos corre antes de listar.
// @Tags         lavaderos
// @Produce      json
// @Success      200  {array}  dto.LavaderoResponse
// @Router       /api/lavaderos/operativos [get]
func (h *LavaderoHandler) Operativos(c *fiber.Ctx) error {
	out, err := h.uc.Operativos()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MiLavadero godoc
// @Summary      Lavadero del admin autenticado
// @Tags         lavaderos
// @Produce      json
// @Success      200  {object}  dto.LavaderoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lavaderos/mi [get]
func (h *LavaderoHandler) MiLavadero(c *fiber.Ctx) error {
	out, err := h.uc.MiLavadero(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no tenés un lavadero registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// PagoPendiente godoc
// @Summary      Estado de pago del período vigente
// @Description  has_pending indica si el lavadero necesita un pago aprobado para operar; incluye el estado del último comprobante del período.
// @Tags         lavaderos
// @Produce      json
// @Success      200  {object}  dto.PagoPendienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lavaderos/mi/pago-pendiente [get]
func (h *LavaderoHandler) PagoPendiente(c *fiber.Ctx) error {
	out, err := h.uc.PagoPendiente(GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no tenés un lavadero registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
