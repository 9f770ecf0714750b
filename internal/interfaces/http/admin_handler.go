package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lavadero-pro/internal/application/usuarios"
	"github.com/tu-usuario/lavadero-pro/internal/domain"
	"github.com/tu-usuario/lavadero-pro/pkg/dto"
)

// AdminHandler operaciones de administración de plataforma (solo SUPER_ADMIN).
type AdminHandler struct {
	uc *usuarios.UsuarioUseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *usuarios.UsuarioUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsuarios godoc
// @Summary      Listar usuarios de la plataforma
// @Tags         admin
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/admin/usuarios [get]
func (h *AdminHandler) ListUsuarios(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// EliminarUsuario godoc
// @Summary      Eliminar una cuenta
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios/{id} [delete]
func (h *AdminHandler) EliminarUsuario(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) || errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MensajeResponse{Message: "usuario eliminado correctamente"})
}

// ToggleActivo godoc
// @Summary      Habilitar o deshabilitar una cuenta
// @Description  Invierte el flag activo; una cuenta deshabilitada pierde toda sesión y login.
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "id del usuario"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/usuarios/{id}/toggle-activo [post]
func (h *AdminHandler) ToggleActivo(c *fiber.Ctx) error {
	out, err := h.uc.ToggleActivo(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) || errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el usuario no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
