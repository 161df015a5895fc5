package appointments

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

func validateCreateRequest(req *CreateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !domain.IsValidHour(req.Hour) {
		return fmt.Errorf("%w: hour must be between 0 and 23", ErrInvalidInput)
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("%w: type must be live or drop", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Requester.Email) == "" {
		return fmt.Errorf("%w: vendor email is required", ErrInvalidInput)
	}
	return nil
}

func validateSlot(date time.Time, hour int) error {
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !domain.IsValidHour(hour) {
		return fmt.Errorf("%w: hour must be between 0 and 23", ErrInvalidInput)
	}
	return nil
}

func validateTrackingCode(code string) error {
	if !domain.IsValidTrackingCode(code) {
		return fmt.Errorf("%w: tracking code must be 8 digits", ErrInvalidInput)
	}
	return nil
}

// checkSlot проверяет блокировку и вместимость слота для типа t
func checkSlot(view domain.SlotView, t domain.AppointmentType) error {
	if view.IsBlocked {
		return &SlotBlockedError{Hour: view.Hour, Type: t, Reason: view.BlockedReason}
	}
	if !view.HasCapacityFor(t) {
		return &CapacityExceededError{Hour: view.Hour, Type: t}
	}
	return nil
}
