package repository

import (
	"context"

	"github.com/jhoicas/registro-clientes/internal/domain/entity"
)

// CustomerSource define el puerto de lectura usado para la carga inicial del registro.
type CustomerSource interface {
	ListAll(ctx context.Context) ([]*entity.Customer, error)
}
