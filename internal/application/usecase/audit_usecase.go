package usecase

import (
	"fmt"
	"strings"

	"github.com/jhoicas/registro-clientes/internal/application/dto"
	"github.com/jhoicas/registro-clientes/internal/domain"
	"github.com/jhoicas/registro-clientes/internal/domain/repository"
)

// AuditUseCase consultas y exportación de la bitácora persistente.
type AuditUseCase struct {
	query   repository.AuditQuery
	auditor *Auditor
}

// NewAuditUseCase construye el caso de uso. El auditor debe envolver la misma bitácora que query.
func NewAuditUseCase(query repository.AuditQuery, auditor *Auditor) *AuditUseCase {
	return &AuditUseCase{query: query, auditor: auditor}
}

// Logs devuelve entradas filtradas por acción, usuario o las últimas n (en ese orden de prioridad).
func (uc *AuditUseCase) Logs(q dto.AuditLogsQuery) (*dto.AuditLogsResponse, error) {
	var (
		entries []string
		err     error
	)
	switch {
	case q.Action != "":
		entries, err = uc.query.FindByAction(q.Action)
	case q.Actor != "":
		entries, err = uc.query.FindByActor(q.Actor)
	case q.Last > 0:
		entries, err = uc.query.ReadLast(q.Last)
	default:
		entries, err = uc.query.ReadAll()
	}
	if err != nil {
		return nil, err
	}
	return &dto.AuditLogsResponse{Entries: entries, Count: len(entries)}, nil
}

// Stats estadísticas de la bitácora.
func (uc *AuditUseCase) Stats() (*dto.AuditStatsResponse, error) {
	s, err := uc.query.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.AuditStatsResponse{
		Total:      s.Total,
		Successful: s.Successful,
		Errors:     s.Errors,
		Actor:      s.Actor,
		Summary:    s.Summary(),
	}, nil
}

// Export copia la bitácora a dest. La entrada EXPORT se firma con actor.
func (uc *AuditUseCase) Export(actor, dest string) error {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return fmt.Errorf("%w: ruta de destino requerida", domain.ErrInvalidInput)
	}
	var err error
	uc.auditor.WithActor(actor, func() {
		err = uc.query.Export(dest)
	})
	return err
}
