package execute_action

const (
	msgBooked            = "✅ Successfully booked a %s appointment on %s at %d:00 %s.\nAppointment ID: %s"
	msgRescheduled       = "✅ Successfully rescheduled appointment %s to %s at %d:00 %s.\nAppointment ID: %s"
	msgCancelled         = "✅ Successfully canceled appointment %s."
	msgSuggestion        = "❌ %s\n\n💡 The next available slot is at %d:00. Would you like me to book that instead?"
	msgNoAlternative     = "❌ %s\n\nUnfortunately, there are no more available slots for %s appointments on %s. Would you like to try a different date?"
	msgNoAppointments    = "You have no upcoming appointments."
	msgAppointmentsTitle = "Your appointments:"
	msgAppointmentLine   = "- %s at %d:00 (%s) - Appointment ID: %s"
	msgAvailableSlots    = "Available slots on %s: %s"
	msgNoAvailableSlots  = "No available slots on %s."

	msgNeedCancelCode     = "Please share the 8-digit Appointment ID so I can cancel the right appointment."
	msgNeedRescheduleCode = "Please provide the 8-digit Appointment ID so I can reschedule the correct appointment."
	msgNeedNewSlot        = "To reschedule, let me know the new date (YYYY-MM-DD) and time (hour in 0-23)."
	msgNeedCreateFields   = "To book, please tell me the date (YYYY-MM-DD), the hour (0-23) and the appointment type (live or drop)."
	msgNeedDate           = "Please provide the date in YYYY-MM-DD format."
	msgNeedIdentity       = "Please provide your vendor email so I can look up your appointments."
	msgNotFound           = "I couldn't find an appointment with ID %s. Please check the 8-digit Appointment ID."
	msgPastDate           = "Cannot book appointments in the past. Please choose a future date and time."
	msgDuplicate          = "You already have an appointment in this slot."
	msgCodeExhausted      = "I couldn't generate a unique Appointment ID right now. Please try booking again."
	msgQueryUnclear       = "I can help you check your appointments or availability. What would you like to know?"
	msgUnknownAction      = "Unknown action. Please try again."
	msgInternal           = "I encountered an error processing your request. Please try again."
)
