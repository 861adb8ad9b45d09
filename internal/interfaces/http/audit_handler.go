package http

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/registro-clientes/internal/application/dto"
	"github.com/jhoicas/registro-clientes/internal/application/usecase"
	"github.com/jhoicas/registro-clientes/internal/domain"
)

// AuditHandler expone la bitácora persistente.
type AuditHandler struct {
	uc        *usecase.AuditUseCase
	exportDir string
}

// NewAuditHandler construye el handler. Las exportaciones se escriben solo dentro de exportDir.
func NewAuditHandler(uc *usecase.AuditUseCase, exportDir string) *AuditHandler {
	return &AuditHandler{uc: uc, exportDir: exportDir}
}

// Logs GET /api/audit/logs?last=20&action=ADD_CUSTOMER&actor=ana
func (h *AuditHandler) Logs(c *fiber.Ctx) error {
	q := dto.AuditLogsQuery{Action: c.Query("action"), Actor: c.Query("actor")}
	if raw := c.Query("last"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "last debe ser un entero no negativo"})
		}
		q.Last = n
	}
	out, err := h.uc.Logs(q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/audit/stats
func (h *AuditHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export POST /api/audit/export (solo admin). path es un nombre de archivo simple; se
// resuelve dentro del directorio de exportación.
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	dest, err := h.exportPath(in.Path)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Export(GetUsername(c), dest); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"exported_to": dest})
}

// exportPath admite solo nombres sin separadores ni componentes relativos.
func (h *AuditHandler) exportPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: path debe ser un nombre de archivo dentro del directorio de exportación", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de exportación: %w", err)
	}
	return filepath.Join(h.exportDir, name), nil
}
