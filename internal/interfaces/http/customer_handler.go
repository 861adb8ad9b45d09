package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/registro-clientes/internal/application/dto"
	"github.com/jhoicas/registro-clientes/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP del registro de clientes (protegido).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUsername(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/customers?sort=id|name|balance|added&q=texto&min_balance=100
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	q := dto.ListCustomersQuery{Sort: c.Query("sort"), Search: c.Query("q")}
	if raw := c.Query("min_balance"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "min_balance debe ser numérico"})
		}
		q.MinBalance = &v
	}
	list, err := h.uc.List(q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/customers/:id
// Los parámetros de ruta se copian: el registro conserva el ID en su historial.
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUsername(c), utils.CopyString(c.Params("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByPhone GET /api/customers/phone/:phone
func (h *CustomerHandler) GetByPhone(c *fiber.Ctx) error {
	out, err := h.uc.GetByPhone(GetUsername(c), utils.CopyString(c.Params("phone")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Remove DELETE /api/customers/:id
func (h *CustomerHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(GetUsername(c), utils.CopyString(c.Params("id"))); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear DELETE /api/customers (solo admin)
func (h *CustomerHandler) Clear(c *fiber.Ctx) error {
	h.uc.Clear(GetUsername(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats GET /api/customers/stats
func (h *CustomerHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stats())
}

// Recent GET /api/customers/recent?n=10
func (h *CustomerHandler) Recent(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Query("n", "10"))
	if err != nil || n < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "n debe ser un entero no negativo"})
	}
	return c.JSON(h.uc.Recent(n))
}
