// Package registry implementa el registro en memoria de clientes con doble índice
// (ID y teléfono), vistas ordenadas y un historial acotado de operaciones recientes.
package registry

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/registro-clientes/internal/domain"
	"github.com/jhoicas/registro-clientes/internal/domain/entity"
)

// Registry almacén autoritativo de clientes.
//
// Invariantes (verificadas tras cada operación):
//   - knownIDs contiene exactamente las claves de byID.
//   - phoneIndex[p] = id implica byID[id].Phone == p; un teléfono por cliente.
//   - insertion contiene cada cliente presente una sola vez, en orden de alta.
//   - recent nunca supera MaxRecentOperations entradas.
type Registry struct {
	mu         sync.RWMutex
	byID       map[string]entity.Customer
	knownIDs   map[string]struct{}
	phoneIndex map[string]string
	insertion  []string
	recent     opRing
	now        func() time.Time
}

// Option configura el registro.
type Option func(*Registry)

// WithClock reemplaza el reloj usado para fechar las operaciones.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New construye un registro vacío.
func New(opts ...Option) *Registry {
	r := &Registry{
		byID:       make(map[string]entity.Customer),
		knownIDs:   make(map[string]struct{}),
		phoneIndex: make(map[string]string),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add agrega un cliente. Falla con ErrInvalidInput, ErrDuplicateID o ErrDuplicatePhone
// sin modificar el estado.
func (r *Registry) Add(c *entity.Customer) error {
	if c == nil {
		return fmt.Errorf("%w: el cliente no puede ser nulo", domain.ErrInvalidInput)
	}
	if c.ID == "" {
		return fmt.Errorf("%w: el ID del cliente es requerido", domain.ErrInvalidInput)
	}
	if math.IsInf(c.Balance, 0) || math.IsNaN(c.Balance) {
		return fmt.Errorf("%w: saldo no representable", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.knownIDs[c.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, c.ID)
	}
	if owner, ok := r.phoneIndex[c.Phone]; ok {
		return fmt.Errorf("%w: %s (cliente %s)", domain.ErrDuplicatePhone, c.Phone, owner)
	}

	r.byID[c.ID] = *c
	r.knownIDs[c.ID] = struct{}{}
	r.phoneIndex[c.Phone] = c.ID
	r.insertion = append(r.insertion, c.ID)

	r.record(entity.OperationAdd, c.ID, "Cliente agregado exitosamente")
	return nil
}

// Remove elimina un cliente y libera su teléfono.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.knownIDs[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	c := r.byID[id]

	delete(r.byID, id)
	delete(r.knownIDs, id)
	delete(r.phoneIndex, c.Phone)
	r.insertion = slices.DeleteFunc(r.insertion, func(s string) bool { return s == id })

	r.record(entity.OperationRemove, id, "Cliente removido del sistema")
	return nil
}

// Find busca por ID. La consulta queda registrada en el historial reciente.
func (r *Registry) Find(id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(id)
}

// FindByPhone resuelve el teléfono a un ID y delega en la búsqueda por ID.
func (r *Registry) FindByPhone(phone string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.phoneIndex[phone]
	if !ok {
		return nil, fmt.Errorf("%w: no se encontró cliente con el teléfono %s", domain.ErrNotFound, phone)
	}
	return r.findLocked(id)
}

func (r *Registry) findLocked(id string) (*entity.Customer, error) {
	if _, ok := r.knownIDs[id]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	c := r.byID[id]
	r.record(entity.OperationLookup, id, "Cliente consultado")
	return &c, nil
}

// ListByID lista los clientes en orden ascendente de ID.
func (r *Registry) ListByID() []*entity.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked()
}

// ListByName ordena por nombre y, a igualdad, por apellido (comparación ordinal).
func (r *Registry) ListByName() []*entity.Customer {
	r.mu.RLock()
	list := r.sortedLocked()
	r.mu.RUnlock()

	slices.SortStableFunc(list, func(a, b *entity.Customer) int {
		if c := strings.Compare(a.FirstName, b.FirstName); c != 0 {
			return c
		}
		return strings.Compare(a.LastName, b.LastName)
	})
	return list
}

// ListByBalanceDesc ordena por saldo descendente; los empates conservan el orden por ID.
func (r *Registry) ListByBalanceDesc() []*entity.Customer {
	r.mu.RLock()
	list := r.sortedLocked()
	r.mu.RUnlock()

	slices.SortStableFunc(list, func(a, b *entity.Customer) int {
		return cmp.Compare(b.Balance, a.Balance)
	})
	return list
}

// ListByInsertion lista los clientes en el orden en que fueron agregados.
func (r *Registry) ListByInsertion() []*entity.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Customer, 0, len(r.insertion))
	for _, id := range r.insertion {
		c := r.byID[id]
		out = append(out, &c)
	}
	return out
}

// SearchByName busca, sin distinguir mayúsculas, el texto dentro del nombre o del apellido.
// Un texto vacío coincide con todos los clientes.
func (r *Registry) SearchByName(text string) []*entity.Customer {
	lower := cases.Lower(language.Und)
	needle := lower.String(text)

	r.mu.RLock()
	list := r.sortedLocked()
	r.mu.RUnlock()

	out := make([]*entity.Customer, 0, len(list))
	for _, c := range list {
		if strings.Contains(lower.String(c.FirstName), needle) ||
			strings.Contains(lower.String(c.LastName), needle) {
			out = append(out, c)
		}
	}
	return out
}

// BalanceAbove devuelve los clientes con saldo estrictamente mayor al umbral, en orden por ID.
func (r *Registry) BalanceAbove(threshold float64) []*entity.Customer {
	r.mu.RLock()
	list := r.sortedLocked()
	r.mu.RUnlock()

	return slices.DeleteFunc(list, func(c *entity.Customer) bool { return c.Balance <= threshold })
}

// Count cantidad de clientes registrados.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Exists indica si el ID está registrado. No queda en el historial.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.knownIDs[id]
	return ok
}

// RecentOperations devuelve las últimas n operaciones en orden cronológico.
func (r *Registry) RecentOperations(n int) []entity.Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recent.last(n)
}

// Clear vacía las cinco estructuras en una sola sección crítica. Es idempotente.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]entity.Customer)
	r.knownIDs = make(map[string]struct{})
	r.phoneIndex = make(map[string]string)
	r.insertion = nil
	r.recent.reset()
}

func (r *Registry) record(kind entity.OperationKind, customerID, description string) {
	r.recent.push(entity.Operation{
		Kind:        kind,
		CustomerID:  customerID,
		Description: description,
		Timestamp:   r.now(),
	})
}

// sortedLocked copia los clientes ordenados por ID. Requiere el lock tomado.
func (r *Registry) sortedLocked() []*entity.Customer {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*entity.Customer, 0, len(ids))
	for _, id := range ids {
		c := r.byID[id]
		out = append(out, &c)
	}
	return out
}
