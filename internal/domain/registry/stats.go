package registry

import (
	"fmt"

	"github.com/jhoicas/registro-clientes/internal/domain/entity"
)

// Stats resumen agregado del registro.
type Stats struct {
	Count          int
	TotalBalance   float64
	AverageBalance float64
	// Top es el primer cliente (en orden por ID) con el mayor saldo; nil si el registro está vacío.
	Top *entity.Customer
}

// Stats calcula los agregados sin efectos secundarios.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	list := r.sortedLocked()
	r.mu.RUnlock()

	s := Stats{Count: len(list)}
	for _, c := range list {
		s.TotalBalance += c.Balance
		if s.Top == nil || c.Balance > s.Top.Balance {
			s.Top = c
		}
	}
	if s.Count > 0 {
		s.AverageBalance = s.TotalBalance / float64(s.Count)
	}
	return s
}

// Summary bloque de texto con las estadísticas del sistema.
func (s Stats) Summary() string {
	topName, topBalance := "N/A", 0.0
	if s.Top != nil {
		topName, topBalance = s.Top.FullName(), s.Top.Balance
	}
	return fmt.Sprintf("=== ESTADÍSTICAS DEL SISTEMA ===\n"+
		"Total de Clientes: %d\n"+
		"Saldo Total: $%.2f\n"+
		"Saldo Promedio: $%.2f\n"+
		"Cliente con Mayor Saldo: %s ($%.2f)",
		s.Count, s.TotalBalance, s.AverageBalance, topName, topBalance)
}
