package intent

// Тексты уточняющих вопросов
const (
	msgNotUnderstood     = "I could not understand your request. Please rephrase it, for example: \"Book a live appointment tomorrow at 10 AM\"."
	msgCancelNeedsCode   = "Please share the 8-digit Appointment ID for the appointment you want to cancel."
	msgUpdateNeedsCode   = "Please include the 8-digit Appointment ID along with the new date and time."
	msgAvailabilityDate  = "Please specify the date you want to check availability for (YYYY-MM-DD)."
	msgQueryUnclear      = "I can help you check your appointments or availability. What would you like to know?"
	msgMissingFieldsFmt  = "Please specify %s for the appointment."
	msgMissingNewSlotFmt = "Please specify %s to reschedule the appointment."
)

// Названия недостающих полей в уточнениях
const (
	fieldDate = "the date (YYYY-MM-DD)"
	fieldHour = "the hour (0-23)"
	fieldType = "the appointment type (live or drop)"
)
