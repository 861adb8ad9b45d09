package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/jhoicas/registro-clientes/internal/application/dto"
	"github.com/jhoicas/registro-clientes/internal/domain"
	"github.com/jhoicas/registro-clientes/internal/domain/entity"
	"github.com/jhoicas/registro-clientes/internal/domain/registry"
	"github.com/jhoicas/registro-clientes/internal/domain/repository"
)

// CustomerUseCase casos de uso sobre el registro de clientes. Cada alta, baja, consulta y
// limpieza queda también en la bitácora persistente.
type CustomerUseCase struct {
	reg     *registry.Registry
	auditor *Auditor
	obs     Observer
}

// NewCustomerUseCase construye el caso de uso. obs puede ser nil.
func NewCustomerUseCase(reg *registry.Registry, auditor *Auditor, obs Observer) *CustomerUseCase {
	if obs == nil {
		obs = noopObserver{}
	}
	return &CustomerUseCase{reg: reg, auditor: auditor, obs: obs}
}

// Create agrega un cliente al registro.
func (uc *CustomerUseCase) Create(actor string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &entity.Customer{
		ID:        strings.TrimSpace(in.ID),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Balance:   in.Balance.InexactFloat64(),
	}
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}

	err := uc.auditor.Do(actor, ActionAddCustomer, func() (string, error) {
		if customer.FirstName == "" || customer.LastName == "" || customer.Phone == "" {
			return "", fmt.Errorf("%w: nombre, apellido y teléfono son requeridos", domain.ErrInvalidInput)
		}
		if hasControlChars(customer.ID, customer.FirstName, customer.LastName, customer.Phone) {
			return "", fmt.Errorf("%w: los campos no admiten caracteres de control", domain.ErrInvalidInput)
		}
		if err := uc.reg.Add(customer); err != nil {
			return "", err
		}
		return fmt.Sprintf("Cliente agregado exitosamente: %s (%s)", customer.ID, customer.FullName()), nil
	})
	if err != nil {
		return nil, err
	}
	uc.afterMutation(string(entity.OperationAdd))
	return dto.NewCustomerResponse(customer), nil
}

// Remove elimina un cliente por ID.
func (uc *CustomerUseCase) Remove(actor, id string) error {
	err := uc.auditor.Do(actor, ActionRemoveCustomer, func() (string, error) {
		if err := uc.reg.Remove(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("Cliente removido exitosamente: %s", id), nil
	})
	if err != nil {
		return err
	}
	uc.afterMutation(string(entity.OperationRemove))
	return nil
}

// Get busca un cliente por ID.
func (uc *CustomerUseCase) Get(actor, id string) (*dto.CustomerResponse, error) {
	var found *entity.Customer
	err := uc.auditor.Do(actor, ActionFindCustomer, func() (string, error) {
		c, err := uc.reg.Find(id)
		if err != nil {
			return "", err
		}
		found = c
		return "Cliente consultado: " + id, nil
	})
	if err != nil {
		return nil, err
	}
	uc.obs.IncOperation(string(entity.OperationLookup))
	return dto.NewCustomerResponse(found), nil
}

// GetByPhone busca un cliente por teléfono.
func (uc *CustomerUseCase) GetByPhone(actor, phone string) (*dto.CustomerResponse, error) {
	var found *entity.Customer
	err := uc.auditor.Do(actor, ActionFindCustomer, func() (string, error) {
		c, err := uc.reg.FindByPhone(phone)
		if err != nil {
			return "", err
		}
		found = c
		return fmt.Sprintf("Cliente consultado por teléfono %s: %s", phone, c.ID), nil
	})
	if err != nil {
		return nil, err
	}
	uc.obs.IncOperation(string(entity.OperationLookup))
	return dto.NewCustomerResponse(found), nil
}

// List devuelve los clientes en el orden pedido, aplicando los filtros de nombre y saldo.
// Los listados no se registran en la bitácora.
func (uc *CustomerUseCase) List(q dto.ListCustomersQuery) ([]*dto.CustomerResponse, error) {
	var list []*entity.Customer
	switch q.Sort {
	case "", dto.SortByID:
		list = uc.reg.ListByID()
	case dto.SortByName:
		list = uc.reg.ListByName()
	case dto.SortByBalance:
		list = uc.reg.ListByBalanceDesc()
	case dto.SortByAdded:
		list = uc.reg.ListByInsertion()
	default:
		return nil, fmt.Errorf("%w: orden desconocido %q", domain.ErrInvalidInput, q.Sort)
	}

	if q.Search != "" {
		list = intersect(list, uc.reg.SearchByName(q.Search))
	}
	if q.MinBalance != nil {
		list = intersect(list, uc.reg.BalanceAbove(*q.MinBalance))
	}
	return dto.NewCustomerList(list), nil
}

// Stats estadísticas agregadas del registro.
func (uc *CustomerUseCase) Stats() dto.RegistryStatsResponse {
	s := uc.reg.Stats()
	return dto.RegistryStatsResponse{
		Count:          s.Count,
		TotalBalance:   dto.Money(s.TotalBalance),
		AverageBalance: dto.Money(s.AverageBalance),
		Top:            dto.NewCustomerResponse(s.Top),
		Summary:        s.Summary(),
	}
}

// Recent últimas n operaciones del historial en memoria del registro.
func (uc *CustomerUseCase) Recent(n int) []dto.OperationResponse {
	return dto.NewOperationList(uc.reg.RecentOperations(n))
}

// Clear vacía el registro.
func (uc *CustomerUseCase) Clear(actor string) {
	_ = uc.auditor.Do(actor, ActionClearRegistry, func() (string, error) {
		n := uc.reg.Count()
		uc.reg.Clear()
		return fmt.Sprintf("Proceso de limpieza realizado: %d clientes eliminados", n), nil
	})
	uc.afterMutation("CLEAR")
}

// Seed carga los clientes de source en el registro. Los rechazados (ID o teléfono repetido)
// se registran en la bitácora y no interrumpen la carga.
func (uc *CustomerUseCase) Seed(ctx context.Context, source repository.CustomerSource) (int, error) {
	list, err := source.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("carga inicial: %w", err)
	}

	loaded, rejected := 0, 0
	for _, c := range list {
		err := uc.auditor.Do("", ActionAddCustomer, func() (string, error) {
			if err := uc.reg.Add(c); err != nil {
				return "", err
			}
			return fmt.Sprintf("Cliente agregado exitosamente: %s (%s)", c.ID, c.FullName()), nil
		})
		if err != nil {
			rejected++
			continue
		}
		loaded++
		uc.obs.IncOperation(string(entity.OperationAdd))
	}

	_ = uc.auditor.Do("", ActionInitialLoad, func() (string, error) {
		return fmt.Sprintf("Proceso de carga inicial realizado: %d clientes, %d rechazados", loaded, rejected), nil
	})
	uc.obs.SetCustomers(uc.reg.Count())
	return loaded, nil
}

func (uc *CustomerUseCase) afterMutation(kind string) {
	uc.obs.IncOperation(kind)
	uc.obs.SetCustomers(uc.reg.Count())
}

func hasControlChars(fields ...string) bool {
	for _, f := range fields {
		if strings.ContainsFunc(f, unicode.IsControl) {
			return true
		}
	}
	return false
}

// intersect conserva el orden de base y descarta los clientes ausentes en filter.
func intersect(base, filter []*entity.Customer) []*entity.Customer {
	keep := make(map[string]struct{}, len(filter))
	for _, c := range filter {
		keep[c.ID] = struct{}{}
	}
	out := base[:0]
	for _, c := range base {
		if _, ok := keep[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}
