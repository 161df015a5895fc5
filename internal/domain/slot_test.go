package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotViewHasCapacityFor(t *testing.T) {
	tests := []struct {
		name string
		view SlotView
		typ  AppointmentType
		want bool
	}{
		{"empty live", SlotView{}, AppointmentTypeLive, true},
		{"live taken", SlotView{LiveCount: 1}, AppointmentTypeLive, false},
		{"live taken, drop free", SlotView{LiveCount: 1}, AppointmentTypeDrop, true},
		{"drop at nine", SlotView{DropCount: 9}, AppointmentTypeDrop, true},
		{"drop full", SlotView{DropCount: 10}, AppointmentTypeDrop, false},
		{"drop full, live free", SlotView{DropCount: 10}, AppointmentTypeLive, true},
		{"blocked", SlotView{IsBlocked: true}, AppointmentTypeDrop, false},
		{"unknown type", SlotView{}, AppointmentType("express"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.HasCapacityFor(tt.typ))
		})
	}
}

func TestSlotStartUsesCalendarDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	date := time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)

	start := SlotStart(date, 10, ist)

	assert.Equal(t, time.Date(2025, 11, 18, 10, 0, 0, 0, ist), start)
}

func TestIsValidTrackingCode(t *testing.T) {
	assert.True(t, IsValidTrackingCode("30238322"))
	assert.False(t, IsValidTrackingCode("3023832"))
	assert.False(t, IsValidTrackingCode("3023832a"))
}

func TestTrimTurns(t *testing.T) {
	turns := make([]ConversationTurn, 12)
	for i := range turns {
		turns[i] = ConversationTurn{Role: RoleUser, Content: string(rune('a' + i))}
	}

	trimmed := TrimTurns(turns, ConversationWindow)

	assert.Len(t, trimmed, 10)
	assert.Equal(t, "c", trimmed[0].Content)
	assert.Equal(t, "l", trimmed[9].Content)
}
