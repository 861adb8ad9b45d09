package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/registro-clientes/internal/domain/entity"
	"github.com/jhoicas/registro-clientes/internal/domain/repository"
)

var _ repository.CustomerSource = (*CustomerRepo)(nil)

// CustomerRepo fuente de clientes para la carga inicial del registro (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// customerRow fila de la tabla customers; balance es NUMERIC (codec pgx-shopspring-decimal).
type customerRow struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Balance   decimal.Decimal
}

func (r customerRow) toEntity() *entity.Customer {
	return &entity.Customer{
		ID:        strings.TrimSpace(r.ID),
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Phone:     strings.TrimSpace(r.Phone),
		Balance:   r.Balance.InexactFloat64(),
	}
}

// ListAll lee todos los clientes ordenados por ID.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `
		SELECT id, first_name, last_name, phone, balance
		FROM customers ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		var row customerRow
		if err := rows.Scan(&row.ID, &row.FirstName, &row.LastName, &row.Phone, &row.Balance); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, row.toEntity())
	}
	return list, rows.Err()
}
