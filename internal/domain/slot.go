package domain

import "time"

// BlockedSlot marks a (date, hour) as unavailable for any booking
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	Hour      int
	Reason    string
	CreatedAt time.Time
}

// SlotView derived occupancy of a single hour, never persisted
type SlotView struct {
	Hour          int
	IsBlocked     bool
	BlockedReason string
	LiveCount     int
	DropCount     int
	Available     bool
}

// HasCapacityFor returns true if another appointment of type t fits into the hour
func (s SlotView) HasCapacityFor(t AppointmentType) bool {
	if s.IsBlocked {
		return false
	}
	switch t {
	case AppointmentTypeLive:
		return s.LiveCount < LiveCapacityPerSlot
	case AppointmentTypeDrop:
		return s.DropCount < DropCapacityPerSlot
	default:
		return false
	}
}
