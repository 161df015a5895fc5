package intent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const systemPromptTemplate = `You are an assistant for a Distribution Center (DC) dock appointment booking system.

Your role:
1. Understand the vendor's natural language requests for booking, rescheduling, cancelling or looking up appointments.
2. Extract structured information and return it as JSON.
3. When the request is ambiguous or incomplete, ask one short clarifying question as {"message": "..."}.

Appointment types:
- "live": the carrier waits at the dock (max 1 per hour slot)
- "drop": the trailer is dropped off (max 10 per hour slot)

Current date/time (%s): %s %s (%s)

When the request is clear and complete, respond with JSON only:
{
  "action": "create" | "update" | "delete" | "query",
  "date": "YYYY-MM-DD",
  "hour": 0-23,
  "type": "live" | "drop",
  "tracking_code": "8-digit string (required for update/delete)",
  "query_type": "my_appointments" | "availability" (only for query),
  "vendor_name": "string",
  "vendor_email": "string",
  "carrier_name": "string"
}

Follow-up conversations:
- Appointment IDs are 8-digit numbers shown to the vendor as "Appointment ID: XXXXXXXX".
- If the vendor refers to an earlier appointment ("change that to 1pm", "reschedule the first one",
  "cancel the appointment on Tuesday"), take tracking_code from the previous assistant messages.
- When rescheduling an appointment found in the history without a new date, keep its date.
- Ask for the Appointment ID only when it is not present in the conversation.

Dates: "today" = %s, "tomorrow" = %s. Always convert relative dates to YYYY-MM-DD.
Times: "8 AM" = 8, "2 PM" = 14, "midnight" = 0, "noon" = 12.

Only return an action when you have all required fields. Otherwise ask a clarifying question.`

// systemPrompt фиксированная инструкция с текущей датой площадки
func systemPrompt(now time.Time) string {
	return fmt.Sprintf(systemPromptTemplate,
		now.Location().String(),
		now.Format(domain.DateFormat),
		now.Format("15:04"),
		now.Format("Monday"),
		now.Format(domain.DateFormat),
		now.AddDate(0, 0, 1).Format(domain.DateFormat),
	)
}

// vendorMessage оформляет запрос вендора так же, как в примерах
func vendorMessage(r domain.Requester, text string) string {
	carrier := r.CarrierName
	if carrier == "" {
		carrier = "N/A"
	}
	return fmt.Sprintf("Vendor Info: Name: %s, Email: %s, Carrier: %s\n\nUser Request: %s", r.Name, r.Email, carrier, text)
}

type fewShot struct {
	user      string
	assistant string
}

// fewShots примеры разбора, даты в них считаются от now
func fewShots(now time.Time) []fewShot {
	abc := domain.Requester{Name: "ABC Logistics", Email: "abc@example.com", CarrierName: "ABC Carrier"}
	rgh := domain.Requester{Name: "RGH", Email: "rghteam@abc.com", CarrierName: "RGH Carrier"}

	day := func(offset int) string { return now.AddDate(0, 0, offset).Format(domain.DateFormat) }
	friday := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if friday == 0 {
		friday = 7
	}

	return []fewShot{
		{
			user:      vendorMessage(abc, "Book a live appointment tomorrow at 8 AM"),
			assistant: exampleJSON(abc, domain.Intent{Action: domain.ActionCreate, Date: day(1), Hour: hourPtr(8), Type: domain.AppointmentTypeLive}),
		},
		{
			user:      vendorMessage(rgh, "Schedule a drop at 3 PM on Friday"),
			assistant: exampleJSON(rgh, domain.Intent{Action: domain.ActionCreate, Date: day(friday), Hour: hourPtr(15), Type: domain.AppointmentTypeDrop}),
		},
		{
			user:      vendorMessage(abc, "Reschedule appointment 12345678 to 5 PM the day after tomorrow"),
			assistant: exampleJSON(abc, domain.Intent{Action: domain.ActionUpdate, Date: day(2), Hour: hourPtr(17), TrackingCode: "12345678"}),
		},
		{
			user:      vendorMessage(abc, "Cancel appointment 87654321"),
			assistant: exampleJSON(abc, domain.Intent{Action: domain.ActionDelete, TrackingCode: "87654321"}),
		},
		{
			user:      vendorMessage(abc, "Show my appointments"),
			assistant: exampleJSON(abc, domain.Intent{Action: domain.ActionQuery, QueryType: domain.QueryMyAppointments}),
		},
		{
			user:      vendorMessage(abc, "Which slots are free tomorrow?"),
			assistant: exampleJSON(abc, domain.Intent{Action: domain.ActionQuery, QueryType: domain.QueryAvailability, Date: day(1)}),
		},
		{
			user:      vendorMessage(abc, "Book a live appointment tomorrow evening"),
			assistant: `{"message":"Evening is ambiguous. Please specify the hour (0-23)."}`,
		},
		{
			user: vendorMessage(abc, "Change the first one to 1pm") + "\n\nPrevious assistant message: Your appointments:\n" +
				"- Tuesday, November 18, 2025 at 10:00 (live) - Appointment ID: 30238322\n" +
				"- Friday, November 21, 2025 at 15:00 (drop) - Appointment ID: 87654321",
			assistant: exampleJSON(abc, domain.Intent{Action: domain.ActionUpdate, Date: "2025-11-18", Hour: hourPtr(13), Type: domain.AppointmentTypeLive, TrackingCode: "30238322"}),
		},
	}
}

// buildCompletion собирает запрос к модели: примеры, история и новое сообщение
func buildCompletion(req Request) domain.CompletionRequest {
	examples := fewShots(req.Now)
	messages := make([]domain.PromptMessage, 0, 2*len(examples)+len(req.History)+1)

	for _, ex := range examples {
		messages = append(messages,
			domain.PromptMessage{Role: domain.PromptRoleUser, Text: ex.user},
			domain.PromptMessage{Role: domain.PromptRoleModel, Text: ex.assistant},
		)
	}

	for _, turn := range req.History {
		role := domain.PromptRoleUser
		if turn.Role == domain.RoleAssistant {
			role = domain.PromptRoleModel
		}
		messages = append(messages, domain.PromptMessage{Role: role, Text: turn.Content})
	}

	messages = append(messages, domain.PromptMessage{
		Role: domain.PromptRoleUser,
		Text: vendorMessage(req.Requester, req.Text),
	})

	return domain.CompletionRequest{
		System:       systemPrompt(req.Now),
		Messages:     messages,
		Temperature:  0,
		JSONResponse: true,
	}
}

func exampleJSON(r domain.Requester, in domain.Intent) string {
	in.VendorName = r.Name
	in.VendorEmail = r.Email
	in.CarrierName = r.CarrierName
	b, _ := json.Marshal(in)
	return string(b)
}

func hourPtr(h int) *int {
	return &h
}
