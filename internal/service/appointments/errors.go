package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrPastDate возвращается, когда начало слота не позже текущего момента
	ErrPastDate = errors.New("appointments: cannot book appointments in the past")

	// ErrSlotBlocked сопоставляется с *SlotBlockedError через errors.Is
	ErrSlotBlocked = errors.New("appointments: slot is blocked")

	// ErrCapacityExceeded сопоставляется с *CapacityExceededError через errors.Is
	ErrCapacityExceeded = errors.New("appointments: slot capacity exceeded")

	// ErrNotFound возвращается, когда запись с кодом не найдена
	ErrNotFound = errors.New("appointments: appointment not found")

	// ErrDuplicateBooking возвращается, когда у вендора уже есть запись в этом слоте
	ErrDuplicateBooking = errors.New("appointments: you already have an appointment in this slot")

	// ErrTrackingCodeExhausted возвращается, когда не удалось выдать уникальный код
	ErrTrackingCodeExhausted = errors.New("appointments: unable to allocate tracking code")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)

// SlotBlockedError слот заблокирован
type SlotBlockedError struct {
	Hour   int
	Type   domain.AppointmentType
	Reason string
}

func (e *SlotBlockedError) Error() string {
	return fmt.Sprintf("Slot %d:00 is blocked. Reason: %s", e.Hour, e.Reason)
}

func (e *SlotBlockedError) Is(target error) bool {
	return target == ErrSlotBlocked
}

// CapacityExceededError вместимость слота для типа исчерпана
type CapacityExceededError struct {
	Hour int
	Type domain.AppointmentType
}

func (e *CapacityExceededError) Error() string {
	if e.Type == domain.AppointmentTypeLive {
		return fmt.Sprintf("Slot %d:00 already has a live appointment", e.Hour)
	}
	return fmt.Sprintf("Slot %d:00 already has %d drop appointments", e.Hour, domain.DropCapacityPerSlot)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
