package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EssiesHairStudio/salon-scheduler/internal/config"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

func testCfg() config.Scheduling {
	return config.Scheduling{
		BufferMin:                 10,
		DefaultBookingDurationMin: 60,
		DefaultSlotDurationMin:    30,
		SlotStepMin:               15,
		SlotWindowStartHour:       8,
		SlotWindowEndHour:         20,
		BookingHourStart:          8,
		BookingHourEnd:            22,
	}
}

// fakeRepo implementa só o que o Engine consome.
type fakeRepo struct {
	Repository
	apps []models.Appointment
}

func (f *fakeRepo) ListActiveAppointments(
	_ context.Context,
	serviceID uint,
	excludeID *uint,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range f.apps {
		if ap.ServiceID != serviceID {
			continue
		}
		if excludeID != nil && ap.ID == *excludeID {
			continue
		}
		if !IsActive(Status(ap.Status)) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func minutes(n int) *int { return &n }

func at(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

// ======================================================
// Duration Resolver
// ======================================================

func TestResolveDuration_SubServiceWins(t *testing.T) {
	cfg := testCfg()

	sub := &models.SubService{DurationMin: minutes(45)}
	override := 20 * time.Minute

	got := ResolveDuration(cfg, sub, &override)
	assert.Equal(t, 45*time.Minute, got)
}

func TestResolveDuration_OverrideThenDefault(t *testing.T) {
	cfg := testCfg()

	override := 20 * time.Minute
	assert.Equal(t, 20*time.Minute, ResolveDuration(cfg, nil, &override))

	// subserviço sem duração configurada não vale
	sub := &models.SubService{}
	assert.Equal(t, 20*time.Minute, ResolveDuration(cfg, sub, &override))

	assert.Equal(t, 60*time.Minute, ResolveDuration(cfg, nil, nil))
}

// ======================================================
// Overlap / buffer
// ======================================================

func TestOverlaps_BufferOnlyTrails(t *testing.T) {
	buffer := 10 * time.Minute
	existingStart := at(9, 0) // 09:00–10:00

	// exatamente um buffer depois do fim: livre
	assert.False(t, Overlaps(at(10, 10), 30*time.Minute, existingStart, 60*time.Minute, buffer))

	// um minuto mais cedo que isso: conflito
	assert.True(t, Overlaps(at(10, 9), 30*time.Minute, existingStart, 60*time.Minute, buffer))
	assert.True(t, Overlaps(at(10, 5), 30*time.Minute, existingStart, 60*time.Minute, buffer))

	// o buffer do candidato também conta contra quem vem depois
	assert.True(t, Overlaps(at(8, 25), 30*time.Minute, existingStart, 60*time.Minute, buffer))
	assert.False(t, Overlaps(at(8, 20), 30*time.Minute, existingStart, 60*time.Minute, buffer))
}

// ======================================================
// CheckConflict
// ======================================================

func TestCheckConflict_ReportsFirstByStartTime(t *testing.T) {
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: 1, ServiceID: 7, StartTime: at(9, 0), Status: "confirmed", EstimatedDurationMin: minutes(60)},
		{ID: 2, ServiceID: 7, StartTime: at(11, 0), Status: "pending", EstimatedDurationMin: minutes(30)},
	}}
	eng := NewEngine(repo, testCfg())

	// candidato cruza os dois; o reportado é o mais cedo
	res, err := eng.CheckConflict(context.Background(), 7, at(9, 30), 3*time.Hour, nil)
	require.NoError(t, err)
	assert.True(t, res.Conflict)
	assert.Equal(t, at(9, 0), res.ConflictStart)
	assert.Equal(t, at(10, 10), res.ConflictEnd) // fim + buffer
}

func TestCheckConflict_NoConflict(t *testing.T) {
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: 1, ServiceID: 7, StartTime: at(9, 0), Status: "confirmed", EstimatedDurationMin: minutes(60)},
	}}
	eng := NewEngine(repo, testCfg())

	res, err := eng.CheckConflict(context.Background(), 7, at(10, 10), 30*time.Minute, nil)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestCheckConflict_IgnoresOtherServicesAndTerminalStates(t *testing.T) {
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: 1, ServiceID: 8, StartTime: at(9, 0), Status: "confirmed"},
		{ID: 2, ServiceID: 7, StartTime: at(9, 0), Status: "cancelled"},
		{ID: 3, ServiceID: 7, StartTime: at(9, 0), Status: "completed"},
	}}
	eng := NewEngine(repo, testCfg())

	res, err := eng.CheckConflict(context.Background(), 7, at(9, 0), 30*time.Minute, nil)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestCheckConflict_ExcludesOwnID(t *testing.T) {
	own := uint(5)
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: own, ServiceID: 7, StartTime: at(9, 0), Status: "pending", EstimatedDurationMin: minutes(60)},
	}}
	eng := NewEngine(repo, testCfg())

	res, err := eng.CheckConflict(context.Background(), 7, at(9, 0), 60*time.Minute, &own)
	require.NoError(t, err)
	assert.False(t, res.Conflict)
}

func TestCheckConflict_Idempotent(t *testing.T) {
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: 1, ServiceID: 7, StartTime: at(9, 0), Status: "confirmed", EstimatedDurationMin: minutes(60)},
	}}
	eng := NewEngine(repo, testCfg())

	first, err := eng.CheckConflict(context.Background(), 7, at(9, 30), 30*time.Minute, nil)
	require.NoError(t, err)
	second, err := eng.CheckConflict(context.Background(), 7, at(9, 30), 30*time.Minute, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// ======================================================
// AvailableSlots
// ======================================================

func TestAvailableSlots_AscendingWithinWindow(t *testing.T) {
	repo := &fakeRepo{}
	eng := NewEngine(repo, testCfg())

	seq, err := eng.AvailableSlots(context.Background(), 7, at(0, 0), nil)
	require.NoError(t, err)

	var slots []time.Time
	for s := range seq {
		slots = append(slots, s)
	}

	require.NotEmpty(t, slots)
	assert.Equal(t, at(8, 0), slots[0])

	duration := 30 * time.Minute
	windowEnd := at(20, 0)
	for i, s := range slots {
		assert.False(t, s.Add(duration).After(windowEnd), "slot %s estoura a janela", s)
		if i > 0 {
			assert.True(t, s.After(slots[i-1]), "sequência fora de ordem")
		}
	}

	// último candidato possível: 19:30 + 30min == 20:00
	assert.Equal(t, at(19, 30), slots[len(slots)-1])
}

func TestAvailableSlots_SkipsOccupied(t *testing.T) {
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: 1, ServiceID: 7, StartTime: at(9, 0), Status: "confirmed", EstimatedDurationMin: minutes(60)},
	}}
	eng := NewEngine(repo, testCfg())

	seq, err := eng.AvailableSlots(context.Background(), 7, at(0, 0), nil)
	require.NoError(t, err)

	free := map[string]bool{}
	for s := range seq {
		free[s.Format("15:04")] = true
	}

	// ocupado 09:00–10:00 +10min de buffer; slot de 30min + buffer do candidato
	assert.False(t, free["08:30"]) // 08:30–09:00 + buffer invade 09:00
	assert.False(t, free["09:00"])
	assert.False(t, free["09:45"])
	assert.False(t, free["10:00"]) // começa antes de 10:10
	assert.True(t, free["10:15"])
	assert.True(t, free["08:15"]) // 08:15–08:45 + buffer termina 08:55
}

func TestAvailableSlots_Restartable(t *testing.T) {
	repo := &fakeRepo{apps: []models.Appointment{
		{ID: 1, ServiceID: 7, StartTime: at(12, 0), Status: "pending"},
	}}
	eng := NewEngine(repo, testCfg())

	seq, err := eng.AvailableSlots(context.Background(), 7, at(0, 0), nil)
	require.NoError(t, err)

	firstPass := FirstN(seq, 5)
	secondPass := FirstN(seq, 5)

	assert.Equal(t, firstPass, secondPass)
	assert.Len(t, firstPass, 5)
}

func TestAvailableSlots_UsesSubServiceDuration(t *testing.T) {
	repo := &fakeRepo{}
	eng := NewEngine(repo, testCfg())

	sub := &models.SubService{DurationMin: minutes(120)}
	seq, err := eng.AvailableSlots(context.Background(), 7, at(0, 0), sub)
	require.NoError(t, err)

	var last time.Time
	for s := range seq {
		last = s
	}

	// 18:00 + 120min == 20:00 é o último que cabe
	assert.Equal(t, at(18, 0), last)
}

// ======================================================
// ValidateBookingTime
// ======================================================

func TestValidateBookingTime(t *testing.T) {
	cfg := testCfg()
	now := at(12, 0)

	// passado, mesmo por um segundo
	err := ValidateBookingTime(cfg, now, now.Add(-time.Second))
	assert.True(t, httperr.IsBusiness(err, "past_time"))

	err = ValidateBookingTime(cfg, now, now)
	assert.True(t, httperr.IsBusiness(err, "past_time"))

	// fora da janela de hora
	err = ValidateBookingTime(cfg, now, at(22, 0).AddDate(0, 0, 1))
	assert.True(t, httperr.IsBusiness(err, "outside_hours"))

	err = ValidateBookingTime(cfg, now, at(7, 59).AddDate(0, 0, 1))
	assert.True(t, httperr.IsBusiness(err, "outside_hours"))

	// dentro da janela
	assert.NoError(t, ValidateBookingTime(cfg, now, at(21, 45)))
	assert.NoError(t, ValidateBookingTime(cfg, now, at(13, 0)))
}

// ======================================================
// Domain actions
// ======================================================

func TestStatusTransitions(t *testing.T) {
	now := at(12, 0)

	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	// confirmado não confirma de novo
	assert.Error(t, Confirm(ap, now))

	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	// terminal: não cancela nem completa
	assert.Error(t, Cancel(ap, now, "staff", "x"))
	assert.Error(t, Complete(ap, now))

	ap2 := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Cancel(ap2, now, "customer", "mudei de planos"))
	assert.Equal(t, "customer", ap2.CancelledBy)
	assert.Equal(t, "mudei de planos", ap2.CancelReason)
	require.NotNil(t, ap2.CancelledAt)
}
