package appointment

import (
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/cache"
	"github.com/EssiesHairStudio/salon-scheduler/internal/config"
	"github.com/EssiesHairStudio/salon-scheduler/internal/domain/schedule"
	"github.com/EssiesHairStudio/salon-scheduler/internal/notify"
)

// Service orquestra o fluxo de agendamento: validação, checagem de
// conflito dentro da transação, cache de disponibilidade e notificações.
type Service struct {
	repo  schedule.Repository
	cfg   config.Scheduling
	loc   *time.Location
	cache *cache.AvailabilityCache

	audit *audit.Dispatcher
	mail  *notify.Dispatcher

	adminEmail string

	// injetável nos testes
	now func() time.Time
}

func NewService(
	repo schedule.Repository,
	cfg config.Scheduling,
	loc *time.Location,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	mailDispatcher *notify.Dispatcher,
	adminEmail string,
) *Service {
	return &Service{
		repo:       repo,
		cfg:        cfg,
		loc:        loc,
		cache:      availCache,
		audit:      auditDispatcher,
		mail:       mailDispatcher,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

func (s *Service) dispatchAudit(ev audit.Event) {
	if s.audit != nil {
		s.audit.Dispatch(ev)
	}
}

func (s *Service) dispatchMail(msg notify.Email) {
	if s.mail != nil {
		s.mail.Dispatch(msg)
	}
}
