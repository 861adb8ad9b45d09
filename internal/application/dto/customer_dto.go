package dto

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/registro-clientes/internal/domain/entity"
)

// CreateCustomerRequest entrada para alta de cliente. Si ID está vacío se genera uno.
// Balance acepta número o texto JSON ("1500.50").
type CreateCustomerRequest struct {
	ID        string          `json:"id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	Balance   decimal.Decimal `json:"balance"`
}

// Orden de listado.
const (
	SortByID      = "id"
	SortByName    = "name"
	SortByBalance = "balance"
	SortByAdded   = "added"
)

// ListCustomersQuery filtros de listado. MinBalance nil = sin filtro de saldo.
type ListCustomersQuery struct {
	Sort       string
	Search     string
	MinBalance *float64
}

// CustomerResponse salida de cliente. Los montos se renderizan con dos decimales.
type CustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Balance   string `json:"balance"`
}

// RegistryStatsResponse estadísticas del registro.
type RegistryStatsResponse struct {
	Count          int               `json:"count"`
	TotalBalance   string            `json:"total_balance"`
	AverageBalance string            `json:"average_balance"`
	Top            *CustomerResponse `json:"top_customer"`
	Summary        string            `json:"summary"`
}

// OperationResponse entrada del historial reciente del registro.
type OperationResponse struct {
	Kind        string    `json:"kind"`
	CustomerID  string    `json:"customer_id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Money redondea un saldo a dos decimales para presentación. Los valores no finitos
// (p. ej. un total desbordado) se muestran como +Inf, -Inf o NaN.
func Money(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// NewCustomerResponse mapea la entidad a su representación de salida.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Phone:     c.Phone,
		Balance:   Money(c.Balance),
	}
}

// NewCustomerList mapea una lista de entidades.
func NewCustomerList(list []*entity.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

// NewOperationList mapea el historial reciente.
func NewOperationList(ops []entity.Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, OperationResponse{
			Kind:        string(op.Kind),
			CustomerID:  op.CustomerID,
			Description: op.Description,
			Timestamp:   op.Timestamp,
		})
	}
	return out
}
