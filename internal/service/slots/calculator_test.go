package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

var day = time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)

func appt(id int64, hour int, t domain.AppointmentType) *domain.Appointment {
	return &domain.Appointment{ID: id, Date: day, Hour: hour, Type: t}
}

func drops(hour, n int) []*domain.Appointment {
	out := make([]*domain.Appointment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, appt(int64(100+i), hour, domain.AppointmentTypeDrop))
	}
	return out
}

func TestComputeEmptyDay(t *testing.T) {
	views := Compute(nil, nil)

	require.Len(t, views, 24)
	for h, v := range views {
		assert.Equal(t, h, v.Hour)
		assert.True(t, v.Available)
		assert.Zero(t, v.LiveCount)
		assert.Zero(t, v.DropCount)
	}
}

func TestComputeCountsTypesIndependently(t *testing.T) {
	appointments := append(drops(10, 3), appt(1, 10, domain.AppointmentTypeLive))

	views := Compute(appointments, nil)

	assert.Equal(t, 1, views[10].LiveCount)
	assert.Equal(t, 3, views[10].DropCount)
	assert.False(t, views[10].Available)
	assert.True(t, views[10].HasCapacityFor(domain.AppointmentTypeDrop))
	assert.False(t, views[10].HasCapacityFor(domain.AppointmentTypeLive))
}

func TestComputeDropCapacity(t *testing.T) {
	views := Compute(drops(9, 9), nil)
	assert.True(t, views[9].HasCapacityFor(domain.AppointmentTypeDrop))

	views = Compute(drops(9, 10), nil)
	assert.False(t, views[9].HasCapacityFor(domain.AppointmentTypeDrop))
	assert.False(t, views[9].Available)
}

func TestComputeBlockedOverridesCapacity(t *testing.T) {
	blocked := []*domain.BlockedSlot{{Date: day, Hour: 14, Reason: "Dock maintenance"}}

	views := Compute(nil, blocked)

	assert.True(t, views[14].IsBlocked)
	assert.Equal(t, "Dock maintenance", views[14].BlockedReason)
	assert.False(t, views[14].Available)
	assert.False(t, views[14].HasCapacityFor(domain.AppointmentTypeDrop))
}

func TestComputeIgnoresOutOfRangeHours(t *testing.T) {
	views := Compute(
		[]*domain.Appointment{appt(1, 24, domain.AppointmentTypeLive), appt(2, -1, domain.AppointmentTypeDrop)},
		[]*domain.BlockedSlot{{Hour: 99}},
	)

	for _, v := range views {
		assert.True(t, v.Available)
	}
}

func TestComputeIsPure(t *testing.T) {
	appointments := append(drops(8, 2), appt(1, 12, domain.AppointmentTypeLive))
	blocked := []*domain.BlockedSlot{{Hour: 3, Reason: "x"}}

	assert.Equal(t, Compute(appointments, blocked), Compute(appointments, blocked))
}

func TestFindNextAvailable(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, 10, domain.AppointmentTypeLive),
		appt(2, 11, domain.AppointmentTypeLive),
	}
	blocked := []*domain.BlockedSlot{{Hour: 12, Reason: "Inspection"}}
	views := Compute(appointments, blocked)

	hour, ok := FindNextAvailable(views, 10, domain.AppointmentTypeLive)
	require.True(t, ok)
	assert.Equal(t, 13, hour)

	hour, ok = FindNextAvailable(views, 10, domain.AppointmentTypeDrop)
	require.True(t, ok)
	assert.Equal(t, 10, hour)
}

func TestFindNextAvailableNoneLeft(t *testing.T) {
	appointments := []*domain.Appointment{
		appt(1, 22, domain.AppointmentTypeLive),
		appt(2, 23, domain.AppointmentTypeLive),
	}

	_, ok := FindNextAvailable(Compute(appointments, nil), 22, domain.AppointmentTypeLive)

	assert.False(t, ok)
}

type fakeAppointments struct {
	items []*domain.Appointment
	err   error
}

func (f *fakeAppointments) ListByDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.items, f.err
}

type fakeBlocked struct {
	items []*domain.BlockedSlot
	err   error
}

func (f *fakeBlocked) ListByDate(_ context.Context, _ time.Time) ([]*domain.BlockedSlot, error) {
	return f.items, f.err
}

func TestCalculatorForDateExcluding(t *testing.T) {
	calc := NewCalculator(
		&fakeAppointments{items: []*domain.Appointment{appt(7, 10, domain.AppointmentTypeLive)}},
		&fakeBlocked{},
	)

	views, err := calc.ForDate(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 1, views[10].LiveCount)

	views, err = calc.ForDateExcluding(context.Background(), day, 7)
	require.NoError(t, err)
	assert.Zero(t, views[10].LiveCount)
}

func TestCalculatorWrapsStoreErrors(t *testing.T) {
	calc := NewCalculator(&fakeAppointments{}, &fakeBlocked{err: errors.New("db down")})

	_, err := calc.ForDate(context.Background(), day)

	assert.ErrorIs(t, err, ErrInternal)
}
