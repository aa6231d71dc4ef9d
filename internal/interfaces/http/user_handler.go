package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP para User (protegido).
type UserHandler struct {
	uc     *usecase.UserUseCase
	authUC *auth.AuthUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, authUC *auth.AuthUseCase) *UserHandler {
	return &UserHandler{uc: uc, authUC: authUC}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/users/all [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Usuarios obtenidos")
	resp.Users = out
	return c.JSON(resp)
}

// Current godoc
// @Summary      Usuario actual (según el token)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/users/current [get]
func (h *UserHandler) Current(c *fiber.Ctx) error {
	out, err := h.authUC.CurrentUser(GetUserID(c))
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Usuario actual")
	resp.User = out
	return c.JSON(resp)
}

// Transactions godoc
// @Summary      Usuario con sus transacciones
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/users/{id}/transactions [get]
func (h *UserHandler) Transactions(c *fiber.Ctx) error {
	out, err := h.uc.GetWithTransactions(c.Params("id"))
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Usuario con transacciones")
	resp.User = out
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar usuario (patch disperso)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/users/update/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error(fiber.StatusBadRequest, "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return failWith(c, err)
	}
	resp := dto.OK("Usuario actualizado exitosamente")
	resp.User = out
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/users/delete/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return failWith(c, err)
	}
	return c.JSON(dto.OK("Usuario eliminado exitosamente"))
}
