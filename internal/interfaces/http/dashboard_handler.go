package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/application/dashboard"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/internal/domain/entity"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// DashboardHandler estadísticas por rol.
type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewDashboardHandler construye el handler de estadísticas.
func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas del panel del actor
// @Description  La forma de la respuesta depende del rol: plataforma para SUPER_ADMIN, lavadero para ADMIN, directorio para CLIENTE.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	var (
		out any
		err error
	)
	switch GetRol(c).Normalizar() {
	case entity.RolSuperAdmin:
		out, err = h.uc.Plataforma()
	case entity.RolAdmin:
		out, err = h.uc.Lavadero(GetUserID(c))
	default:
		out, err = h.uc.Cliente()
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no tenés un lavadero registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
