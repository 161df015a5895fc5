package execute_action

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
	"github.com/m04kA/SMC-AppointmentDesk/internal/service/appointments"
)

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// identity вендор берется из контекста запроса, перевозчик из намерения, если указан
func identity(in *domain.Intent, requester domain.Requester) domain.Requester {
	r := requester
	if r.Name == "" {
		r.Name = in.VendorName
	}
	if r.Email == "" {
		r.Email = in.VendorEmail
	}
	if in.CarrierName != "" {
		r.CarrierName = in.CarrierName
	}
	return r
}

func displayDate(date time.Time) string {
	return date.Format(domain.DisplayDateFormat)
}

// ruleMessage текст нарушения правила без префикса пакета
func ruleMessage(err error) string {
	var blocked *appointments.SlotBlockedError
	if errors.As(err, &blocked) {
		return blocked.Error()
	}
	var full *appointments.CapacityExceededError
	if errors.As(err, &full) {
		return full.Error()
	}
	return err.Error()
}

func invalidInputMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), appointments.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return msgNeedCreateFields
	}
	return "Please check your request: " + msg + "."
}
