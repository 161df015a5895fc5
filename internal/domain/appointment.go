package domain

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentType kind of dock appointment
type AppointmentType string

const (
	// AppointmentTypeLive carrier waits at the dock while the load is handled
	AppointmentTypeLive AppointmentType = "live"
	// AppointmentTypeDrop trailer is dropped and picked up later
	AppointmentTypeDrop AppointmentType = "drop"
)

// IsValid returns true for known appointment types
func (t AppointmentType) IsValid() bool {
	return t == AppointmentTypeLive || t == AppointmentTypeDrop
}

// Capacity returns the per-hour capacity for the type
func (t AppointmentType) Capacity() int {
	if t == AppointmentTypeLive {
		return LiveCapacityPerSlot
	}
	return DropCapacityPerSlot
}

// ParseAppointmentType parses a type name case-insensitively
func ParseAppointmentType(s string) (AppointmentType, error) {
	t := AppointmentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown appointment type %q", s)
	}
	return t, nil
}

// Requester identifies the vendor making a request
type Requester struct {
	Name        string
	Email       string
	CarrierName string
}

// Appointment represents a booked one-hour dock slot
type Appointment struct {
	ID           int64
	Date         time.Time // civil date, time part is ignored
	Hour         int       // 0-23
	Type         AppointmentType
	VendorName   string
	VendorEmail  string
	CarrierName  string
	TrackingCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Requester returns the vendor identity of the appointment
func (a *Appointment) Requester() Requester {
	return Requester{Name: a.VendorName, Email: a.VendorEmail, CarrierName: a.CarrierName}
}

// SlotStart returns the start of the appointment hour in the given location
func (a *Appointment) SlotStart(loc *time.Location) time.Time {
	return SlotStart(a.Date, a.Hour, loc)
}

// IsInSlot returns true if the appointment occupies the given date and hour
func (a *Appointment) IsInSlot(date time.Time, hour int) bool {
	return SameDate(a.Date, date) && a.Hour == hour
}

// SlotStart builds the start instant of (date, hour) in loc using only the calendar part of date
func SlotStart(date time.Time, hour int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, loc)
}

// CivilDate truncates t to midnight of its calendar day in loc
func CivilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDate compares calendar days ignoring location and time of day
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsValidHour checks that hour is within a day
func IsValidHour(hour int) bool {
	return hour >= 0 && hour < HoursPerDay
}

// IsValidTrackingCode checks the 8-digit numeral format
func IsValidTrackingCode(code string) bool {
	if len(code) != TrackingCodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
