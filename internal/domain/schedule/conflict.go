package schedule

import (
	"context"
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/config"
)

// ConflictResult é valor, não erro: conflito faz parte do fluxo normal
// de reserva e o chamador responde com horários alternativos.
type ConflictResult struct {
	Conflict      bool      `json:"conflict"`
	ConflictStart time.Time `json:"conflict_start,omitempty"`
	ConflictEnd   time.Time `json:"conflict_end,omitempty"`
}

type Engine struct {
	repo Repository
	cfg  config.Scheduling
}

func NewEngine(repo Repository, cfg config.Scheduling) *Engine {
	return &Engine{repo: repo, cfg: cfg}
}

func (e *Engine) Buffer() time.Duration {
	return time.Duration(e.cfg.BufferMin) * time.Minute
}

// CheckConflict verifica o candidato contra todos os agendamentos ativos
// do serviço. Reporta o primeiro conflito na ordem de start_time; o fim
// reportado já inclui o buffer.
func (e *Engine) CheckConflict(
	ctx context.Context,
	serviceID uint,
	candidateStart time.Time,
	candidateDuration time.Duration,
	excludeID *uint,
) (ConflictResult, error) {

	existing, err := e.repo.ListActiveAppointments(ctx, serviceID, excludeID)
	if err != nil {
		return ConflictResult{}, err
	}

	buffer := e.Buffer()

	for i := range existing {
		other := &existing[i]
		otherDuration := AppointmentDuration(e.cfg, other)

		if Overlaps(candidateStart, candidateDuration, other.StartTime, otherDuration, buffer) {
			return ConflictResult{
				Conflict:      true,
				ConflictStart: other.StartTime,
				ConflictEnd:   other.StartTime.Add(otherDuration).Add(buffer),
			}, nil
		}
	}

	return ConflictResult{}, nil
}
