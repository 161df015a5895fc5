package intent

import (
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

var (
	referenceCuePattern = regexp.MustCompile(`(?i)\b(that|it|this|same|one|first|second|third|fourth|fifth|last|former|latter)\b`)
	ordinalPattern      = regexp.MustCompile(`(?i)\b(first|second|third|fourth|fifth|last|former|latter)\b`)
	displayDatePattern  = regexp.MustCompile(`\b(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday), (?:January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}, \d{4}\b`)
)

var ordinalIndex = map[string]int{
	"first":  0,
	"former": 0,
	"second": 1,
	"latter": 1,
	"third":  2,
	"fourth": 3,
	"fifth":  4,
}

// codeReference код записи, найденный в истории, и дата, напечатанная рядом с ним
type codeReference struct {
	Code string
	Date string
}

// resolveReference ищет код записи, на который ссылается сообщение ("that", "the first one").
// Коды берутся из последней реплики ассистента, где они есть; порядковое слово выбирает строку.
func resolveReference(text string, history []domain.ConversationTurn) (codeReference, bool) {
	if !referenceCuePattern.MatchString(text) {
		return codeReference{}, false
	}

	refs := lastListedCodes(history)
	if len(refs) == 0 {
		return codeReference{}, false
	}

	idx := 0
	if m := ordinalPattern.FindStringSubmatch(text); m != nil {
		word := strings.ToLower(m[1])
		if word == "last" {
			idx = len(refs) - 1
		} else {
			idx = ordinalIndex[word]
		}
	}

	if idx >= len(refs) {
		return codeReference{}, false
	}
	return refs[idx], true
}

// lastListedCodes коды по строкам самой свежей реплики ассистента, содержащей коды
func lastListedCodes(history []domain.ConversationTurn) []codeReference {
	for i := len(history) - 1; i >= 0; i-- {
		turn := history[i]
		if turn.Role != domain.RoleAssistant {
			continue
		}

		var refs []codeReference
		seen := make(map[string]bool)
		date := ""
		for _, line := range strings.Split(turn.Content, "\n") {
			// Дата действует для кодов на этой и следующих строках, пока не встретится новая
			if d := lineDate(line); d != "" {
				date = d
			}
			for _, m := range trackingCodePattern.FindAllStringSubmatch(line, -1) {
				if seen[m[1]] {
					continue
				}
				seen[m[1]] = true
				refs = append(refs, codeReference{Code: m[1], Date: date})
			}
		}

		if len(refs) > 0 {
			return refs
		}
	}
	return nil
}

// lineDate дата записи, напечатанная в строке: "Tuesday, November 18, 2025" или ISO
func lineDate(line string) string {
	if m := displayDatePattern.FindString(line); m != "" {
		if t, err := time.Parse(domain.DisplayDateFormat, m); err == nil {
			return t.Format(domain.DateFormat)
		}
	}
	if m := isoDatePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}
