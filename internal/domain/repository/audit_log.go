package repository

import "github.com/jhoicas/registro-clientes/internal/domain/entity"

// AuditLog define el puerto de escritura de la bitácora persistente de acciones.
// Los errores devueltos son diagnósticos: nunca deben hacer fallar la operación que los originó.
type AuditLog interface {
	Append(action, description string) error
	AppendError(action string, err error) error
	SetActor(actor string) error
	Actor() string
}

// AuditQuery define el puerto de consulta y exportación de la bitácora.
type AuditQuery interface {
	ReadAll() ([]string, error)
	ReadLast(n int) ([]string, error)
	FindByAction(action string) ([]string, error)
	FindByActor(actor string) ([]string, error)
	Stats() (entity.AuditStats, error)
	Export(dest string) error
}
