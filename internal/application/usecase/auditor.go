package usecase

import (
	"sync"

	"github.com/jhoicas/registro-clientes/internal/domain"
	"github.com/jhoicas/registro-clientes/internal/domain/repository"
	"github.com/jhoicas/registro-clientes/pkg/logger"
)

// Acciones registradas en la bitácora por los casos de uso.
const (
	ActionAddCustomer    = "ADD_CUSTOMER"
	ActionRemoveCustomer = "REMOVE_CUSTOMER"
	ActionFindCustomer   = "FIND_CUSTOMER"
	ActionClearRegistry  = "CLEAR_REGISTRY"
	ActionInitialLoad    = "INITIAL_LOAD"
)

// Observer recibe eventos de observabilidad. Lo implementa *metrics.Metrics.
type Observer interface {
	SetCustomers(n int)
	IncOperation(kind string)
	IncRejection(code string)
	IncAuditFailure()
}

type noopObserver struct{}

func (noopObserver) SetCustomers(int)    {}
func (noopObserver) IncOperation(string) {}
func (noopObserver) IncRejection(string) {}
func (noopObserver) IncAuditFailure()    {}

// Auditor serializa el cambio de usuario, la operación y su entrada en la bitácora, de modo
// que cada línea lleve el usuario de la petición que la originó. Los fallos de la bitácora
// se registran por log y nunca se propagan.
type Auditor struct {
	mu    sync.Mutex
	audit repository.AuditLog
	log   *logger.Logger
	obs   Observer
}

// NewAuditor construye el auditor. obs puede ser nil.
func NewAuditor(audit repository.AuditLog, log *logger.Logger, obs Observer) *Auditor {
	if log == nil {
		log = logger.Nop()
	}
	if obs == nil {
		obs = noopObserver{}
	}
	return &Auditor{audit: audit, log: log.Component("auditor"), obs: obs}
}

// WithActor ejecuta fn con actor como usuario actual de la bitácora. Un actor vacío conserva
// el usuario actual.
func (a *Auditor) WithActor(actor string, fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if actor != "" && actor != a.audit.Actor() {
		a.report(a.audit.SetActor(actor), "ACTOR_CHANGE")
	}
	fn()
}

// Do ejecuta op y registra su resultado: la descripción si tuvo éxito o el error en caso
// contrario. Devuelve el error de op sin alterarlo.
func (a *Auditor) Do(actor, action string, op func() (string, error)) error {
	var opErr error
	a.WithActor(actor, func() {
		var description string
		description, opErr = op()
		if opErr != nil {
			a.obs.IncRejection(domain.ErrorCode(opErr))
			a.report(a.audit.AppendError(action, opErr), action)
			return
		}
		a.report(a.audit.Append(action, description), action)
	})
	return opErr
}

func (a *Auditor) report(err error, action string) {
	if err == nil {
		return
	}
	a.obs.IncAuditFailure()
	a.log.Warn().Err(err).Str("action", action).Msg("no se pudo registrar en la bitácora")
}
