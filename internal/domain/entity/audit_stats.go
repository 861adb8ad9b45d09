package entity

import "fmt"

// AuditStats resumen de la bitácora de acciones.
type AuditStats struct {
	Total      int
	Successful int
	Errors     int
	Actor      string
}

// Summary bloque de texto con las estadísticas de la bitácora.
func (s AuditStats) Summary() string {
	return fmt.Sprintf("=== ESTADÍSTICAS DE LOGS ===\n"+
		"Total de Entradas: %d\n"+
		"Operaciones Exitosas: %d\n"+
		"Errores Registrados: %d\n"+
		"Usuario Actual: %s",
		s.Total, s.Successful, s.Errors, s.Actor)
}
