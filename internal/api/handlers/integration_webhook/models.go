package integration_webhook

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Action нормализованное действие интеграции
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	fallbackVendorDomain = "gmail.com"
	fallbackVendorEmail  = "vendor@example.com"
)

var (
	actionAliases = map[string]Action{
		"book":       ActionCreate,
		"create":     ActionCreate,
		"schedule":   ActionCreate,
		"reschedule": ActionUpdate,
		"modify":     ActionUpdate,
		"update":     ActionUpdate,
		"move":       ActionUpdate,
		"change":     ActionUpdate,
		"cancel":     ActionDelete,
		"delete":     ActionDelete,
		"remove":     ActionDelete,
	}

	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe        = regexp.MustCompile(`(?i)^([0-9]{1,2})(?::([0-9]{2}))?\s*(am|pm)?$`)
	emailRe       = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	nonAlphaNumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// PayloadError ошибка разбора входящего запроса, текст отдается клиенту как есть
type PayloadError struct {
	Message string
}

func (e *PayloadError) Error() string {
	return e.Message
}

func payloadErrorf(format string, args ...interface{}) error {
	return &PayloadError{Message: fmt.Sprintf(format, args...)}
}

// Command нормализованный запрос интеграции
type Command struct {
	Action       Action
	VendorName   string
	VendorEmail  string
	CarrierName  string
	Type         domain.AppointmentType
	Date         *time.Time
	Hour         *int
	NewDate      *time.Time
	NewHour      *int
	TrackingCode string
	RequestID    string
	Timezone     string
	SourceEmail  interface{}
}

// Requester вендор, от имени которого создается запись
func (c *Command) Requester() domain.Requester {
	return domain.Requester{Name: c.VendorName, Email: c.VendorEmail, CarrierName: c.CarrierName}
}

// RescheduleTarget новый слот: новые поля, иначе основные
func (c *Command) RescheduleTarget() (time.Time, int, bool) {
	date, hour := c.NewDate, c.NewHour
	if date == nil {
		date = c.Date
	}
	if hour == nil {
		hour = c.Hour
	}
	if date == nil || hour == nil {
		return time.Time{}, 0, false
	}
	return *date, *hour, true
}

// ParsePayload разбирает тело запроса: объект или массив, из которого берется первый элемент.
// Даты без явного смещения трактуются в loc.
func ParsePayload(raw json.RawMessage, loc *time.Location) (*Command, error) {
	payload, err := firstObject(raw)
	if err != nil {
		return nil, err
	}

	rawAction := cast.ToString(payload["action"])
	action, ok := actionAliases[strings.ToLower(strings.TrimSpace(rawAction))]
	if !ok {
		return nil, payloadErrorf("Unsupported action %q. Expected book, reschedule, or cancel.", rawAction)
	}

	source, _ := payload["source_email"].(map[string]interface{})

	cmd := &Command{
		Action:       action,
		VendorName:   stringField(payload, "vendor_name"),
		CarrierName:  stringField(payload, "carrier_name"),
		VendorEmail:  stringField(payload, "vendor_email"),
		Type:         normalizeType(stringField(payload, "appointment_type", "type")),
		TrackingCode: stringField(payload, "tracking_code", "appointment_id", "appointment_reference", "tracking"),
		RequestID:    stringField(source, "message_id"),
		Timezone:     stringField(payload, "timezone"),
		SourceEmail:  payload["source_email"],
	}
	if cmd.RequestID == "" {
		cmd.RequestID = stringField(payload, "request_id")
	}
	if cmd.Timezone == "" {
		cmd.Timezone = loc.String()
	}
	if cmd.VendorEmail == "" {
		cmd.VendorEmail = extractEmail(stringField(source, "from"))
	}
	if cmd.VendorEmail == "" && cmd.VendorName != "" {
		cmd.VendorEmail = fallbackEmail(cmd.VendorName)
	}

	if cmd.Date, err = parseDate(stringField(payload, "requested_date", "date"), loc); err != nil {
		return nil, err
	}
	if cmd.Hour, err = parseHour(stringField(payload, "requested_time", "time")); err != nil {
		return nil, err
	}
	if cmd.NewDate, err = parseDate(stringField(payload, "new_date", "reschedule_date"), loc); err != nil {
		return nil, err
	}
	if cmd.NewHour, err = parseHour(stringField(payload, "new_time", "reschedule_time")); err != nil {
		return nil, err
	}

	if err := cmd.validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (c *Command) validate() error {
	if c.Action != ActionCreate {
		if c.TrackingCode == "" {
			return payloadErrorf("Tracking code is required for reschedule or cancel actions.")
		}
		return nil
	}

	switch {
	case c.VendorName == "":
		return payloadErrorf("Vendor name is required to create an appointment.")
	case c.VendorEmail == "":
		return payloadErrorf("Vendor email is required to create an appointment.")
	case c.CarrierName == "":
		return payloadErrorf("Carrier name is required to create an appointment.")
	case c.Type == "":
		return payloadErrorf("Appointment type (live/drop) is required to create an appointment.")
	case c.Date == nil:
		return payloadErrorf("Requested date is required to create an appointment.")
	case c.Hour == nil:
		return payloadErrorf("Requested time is required to create an appointment.")
	}
	return nil
}

func firstObject(raw json.RawMessage) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(string(raw))

	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, payloadErrorf("Request body must be a JSON object.")
		}
		if len(items) == 0 {
			return nil, payloadErrorf("Request body array must contain at least one item.")
		}
		raw = items[0]
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return nil, payloadErrorf("Request body must be a JSON object.")
	}
	return payload, nil
}

// stringField первое непустое значение из перечисленных ключей; числа приводятся к строке
func stringField(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func normalizeType(raw string) domain.AppointmentType {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "live"):
		return domain.AppointmentTypeLive
	case strings.Contains(lower, "drop"):
		return domain.AppointmentTypeDrop
	}
	return ""
}

// parseDate возвращает полночь UTC календарного дня, как и остальные обработчики
func parseDate(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	if isoDateRe.MatchString(raw) {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, payloadErrorf("Invalid date value: %s", raw)
		}
		return &date, nil
	}

	parsed, err := cast.ToTimeInDefaultLocationE(raw, loc)
	if err != nil {
		return nil, payloadErrorf("Invalid date value: %s", raw)
	}
	y, m, d := parsed.In(loc).Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date, nil
}

// parseHour разбирает "14", "14:10", "2:45pm"; от 30 минут час округляется вверх
func parseHour(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}

	match := timeRe.FindStringSubmatch(raw)
	if match == nil {
		return nil, payloadErrorf("Invalid time value: %s", raw)
	}

	hour, _ := strconv.Atoi(match[1])
	minutes := 0
	if match[2] != "" {
		minutes, _ = strconv.Atoi(match[2])
	}

	switch strings.ToLower(match[3]) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour >= domain.HoursPerDay {
		return nil, payloadErrorf("Hour must be between 0 and 23.")
	}
	if minutes >= 30 {
		hour = (hour + 1) % 24
	}
	return &hour, nil
}

func extractEmail(raw string) string {
	return strings.ToLower(emailRe.FindString(raw))
}

// fallbackEmail адрес из имени вендора, когда письмо пришло без отправителя
func fallbackEmail(vendorName string) string {
	local := strings.Trim(nonAlphaNumRe.ReplaceAllString(strings.ToLower(vendorName), "."), ".")
	if local == "" {
		return fallbackVendorEmail
	}
	return local + "@" + fallbackVendorDomain
}

// Meta сведения о входящем письме, возвращаются без изменений
type Meta struct {
	RequestID   *string     `json:"request_id"`
	Timezone    string      `json:"timezone"`
	SourceEmail interface{} `json:"source_email"`
}

// Response ответ интеграции
type Response struct {
	Status       string                        `json:"status"`
	Action       Action                        `json:"action,omitempty"`
	Message      string                        `json:"message"`
	TrackingCode *string                       `json:"tracking_code,omitempty"`
	Appointment  *handlers.AppointmentResponse `json:"appointment,omitempty"`
	Meta         *Meta                         `json:"meta,omitempty"`
}

func newMeta(cmd *Command) *Meta {
	meta := &Meta{Timezone: cmd.Timezone, SourceEmail: cmd.SourceEmail}
	if cmd.RequestID != "" {
		id := cmd.RequestID
		meta.RequestID = &id
	}
	return meta
}

func errorResponse(message string) *Response {
	return &Response{Status: statusError, Message: message}
}
