package domain

// Slot capacity rules
const (
	HoursPerDay         = 24
	LiveCapacityPerSlot = 1
	DropCapacityPerSlot = 10
)

// Tracking code allocation
const (
	TrackingCodeMin         = 10000000
	TrackingCodeMax         = 99999999
	TrackingCodeLength      = 8
	TrackingCodeMaxAttempts = 5
)

// ConversationWindow number of most recent turns kept per requester
const ConversationWindow = 10

// DefaultTimezone civil timezone of the facility
const DefaultTimezone = "Asia/Kolkata"

// Time format constants
const (
	DateFormat        = "2006-01-02"               // YYYY-MM-DD
	DisplayDateFormat = "Monday, January 2, 2006" // Tuesday, November 18, 2025
)
