package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

var (
	trackingCodePattern = regexp.MustCompile(`\b(\d{8})\b`)
	isoDatePattern      = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	monthDayPattern     = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s*(\d{4})\b)?`)
	weekdayPattern      = regexp.MustCompile(`(?i)\b(next\s+)?(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	dayOrdinalPattern   = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)\b`)

	meridiemHourPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap])\.?m\b\.?`)
	atHourPattern       = regexp.MustCompile(`(?i)(?:\bat|@)\s*(\d{1,2})(?::(\d{2}))?\b`)
	clockHourPattern    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	bareHourPattern     = regexp.MustCompile(`\b(\d{1,2})\b`)

	dropPattern = regexp.MustCompile(`(?i)\bdrop`)
	livePattern = regexp.MustCompile(`(?i)\blive\b`)
)

// namedPeriods проверяются по порядку: "midnight" раньше "night"
var namedPeriods = []struct {
	pattern *regexp.Regexp
	hour    int
}{
	{regexp.MustCompile(`(?i)\bmidnight\b`), 0},
	{regexp.MustCompile(`(?i)\b(?:noon|midday)\b`), 12},
	{regexp.MustCompile(`(?i)\bmorning\b`), 9},
	{regexp.MustCompile(`(?i)\bafternoon\b`), 15},
	{regexp.MustCompile(`(?i)\bevening\b`), 18},
	{regexp.MustCompile(`(?i)\b(?:to)?night\b`), 20},
}

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

var weekdayByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
}

// FallbackParser разбирает запрос лексическими правилами без обращения к модели.
// Недостающие поля не угадываются: их запросит Resolver.
type FallbackParser struct{}

// NewFallbackParser создает парсер
func NewFallbackParser() *FallbackParser {
	return &FallbackParser{}
}

// Extract реализует Extractor
func (p *FallbackParser) Extract(_ context.Context, req Request) (*domain.Resolution, error) {
	action, queryType := detectAction(req.Text)
	if action == "" {
		return &domain.Resolution{Clarification: msgNotUnderstood, Backend: domain.BackendFallback}, nil
	}

	intent := &domain.Intent{Action: action, QueryType: queryType}

	switch action {
	case domain.ActionCreate, domain.ActionUpdate:
		intent.Date = parseDate(req.Text, req.Now)
		if hour, ok := parseHour(req.Text); ok {
			intent.Hour = &hour
		}
		intent.Type = parseType(req.Text)
		if action == domain.ActionUpdate {
			intent.TrackingCode = parseTrackingCode(req.Text)
		}
	case domain.ActionDelete:
		intent.TrackingCode = parseTrackingCode(req.Text)
	case domain.ActionQuery:
		if queryType == domain.QueryAvailability {
			intent.Date = parseDate(req.Text, req.Now)
		}
	}

	return &domain.Resolution{Intent: intent, Backend: domain.BackendFallback}, nil
}

// detectAction классифицирует действие по ключевым словам.
// Приоритет: отмена, перенос, свободные слоты, мои записи, бронирование.
func detectAction(text string) (domain.Action, domain.QueryType) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "cancel"):
		return domain.ActionDelete, ""
	case containsAny(lower, "resched", "move", "change", "shift"):
		return domain.ActionUpdate, ""
	case containsAny(lower, "availability", "available slot", "free slot", "open slot"):
		return domain.ActionQuery, domain.QueryAvailability
	case containsAny(lower, "my appointments", "what appointments", "upcoming appointments",
		"appointments made by me", "appointments i made"):
		return domain.ActionQuery, domain.QueryMyAppointments
	case containsAny(lower, "book", "schedule", "need an appointment", "create an appointment"):
		return domain.ActionCreate, ""
	}

	return "", ""
}

// parseDate возвращает дату YYYY-MM-DD или пустую строку.
// Приоритет: относительные слова, ISO, месяц и число, день недели.
func parseDate(text string, now time.Time) string {
	lower := strings.ToLower(text)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case strings.Contains(lower, "day after tomorrow"):
		return today.AddDate(0, 0, 2).Format(domain.DateFormat)
	case strings.Contains(lower, "tomorrow"):
		return today.AddDate(0, 0, 1).Format(domain.DateFormat)
	case strings.Contains(lower, "today"):
		return today.Format(domain.DateFormat)
	}

	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		if _, err := time.Parse(domain.DateFormat, m[1]); err == nil {
			return m[1]
		}
	}

	if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		month := monthByPrefix[strings.ToLower(m[1])[:3]]
		day, _ := strconv.Atoi(m[2])
		year := today.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		// 31 февраля и подобное time.Date нормализует в другой месяц
		if date.Month() == month && date.Day() == day {
			return date.Format(domain.DateFormat)
		}
	}

	if m := weekdayPattern.FindStringSubmatch(text); m != nil {
		target := weekdayByName[strings.ToLower(m[2])]
		diff := (int(target) - int(today.Weekday()) + 7) % 7
		if m[1] != "" {
			diff += 7
		}
		return today.AddDate(0, 0, diff).Format(domain.DateFormat)
	}

	return ""
}

// parseHour возвращает час 0-23.
// Приоритет: названия времени суток, число с am/pm, число без am/pm (1-7 считаются вечерними).
// Минуты от 30 округляют час вверх.
func parseHour(text string) (int, bool) {
	for _, period := range namedPeriods {
		if period.pattern.MatchString(text) {
			return period.hour, true
		}
	}

	cleaned := stripDateTokens(text)

	if m := meridiemHourPattern.FindStringSubmatch(cleaned); m != nil {
		return normalizeHour(m[1], m[2], strings.ToLower(m[3]))
	}

	for _, pattern := range []*regexp.Regexp{atHourPattern, clockHourPattern, bareHourPattern} {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			minutes := ""
			if len(m) > 2 {
				minutes = m[2]
			}
			return normalizeHour(m[1], minutes, "")
		}
	}

	return 0, false
}

// stripDateTokens убирает из текста числа, относящиеся к дате и коду записи
func stripDateTokens(text string) string {
	s := trackingCodePattern.ReplaceAllString(text, " ")
	s = isoDatePattern.ReplaceAllString(s, " ")
	s = monthDayPattern.ReplaceAllString(s, " ")
	return dayOrdinalPattern.ReplaceAllString(s, " ")
}

func normalizeHour(hourStr, minuteStr, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, false
	}

	minutes := 0
	if minuteStr != "" {
		if minutes, err = strconv.Atoi(minuteStr); err != nil || minutes > 59 {
			return 0, false
		}
	}

	switch {
	case meridiem == "p" && hour < 12:
		hour += 12
	case meridiem == "a" && hour == 12:
		hour = 0
	case meridiem == "" && hour >= 1 && hour <= 7:
		hour += 12
	}

	if minutes >= 30 {
		hour = (hour + 1) % domain.HoursPerDay
	}

	if !domain.IsValidHour(hour) {
		return 0, false
	}
	return hour, true
}

func parseType(text string) domain.AppointmentType {
	switch {
	case dropPattern.MatchString(text):
		return domain.AppointmentTypeDrop
	case livePattern.MatchString(text):
		return domain.AppointmentTypeLive
	}
	return ""
}

func parseTrackingCode(text string) string {
	if m := trackingCodePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
