package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("cliente no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicateID    = errors.New("ya existe un cliente con ese ID")
	ErrDuplicatePhone = errors.New("el teléfono ya está registrado para otro cliente")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
)

// Códigos estables usados por la bitácora y la capa HTTP.
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeDuplicateID    = "DUPLICATE_ID"
	CodeDuplicatePhone = "DUPLICATE_PHONE"
	CodeNotFound       = "NOT_FOUND"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeInternal       = "INTERNAL"
)

// ErrorCode clasifica un error (posiblemente envuelto) en su código de dominio.
// Errores desconocidos se reportan como INTERNAL.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrDuplicateID):
		return CodeDuplicateID
	case errors.Is(err, ErrDuplicatePhone):
		return CodeDuplicatePhone
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}
