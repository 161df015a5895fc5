package get_slots

import "github.com/m04kA/SMC-AppointmentDesk/internal/domain"

// SlotResponse занятость одного часа
type SlotResponse struct {
	Hour          int    `json:"hour"`
	IsBlocked     bool   `json:"isBlocked"`
	BlockedReason string `json:"blockedReason,omitempty"`
	LiveCount     int    `json:"liveCount"`
	DropCount     int    `json:"dropCount"`
	Available     bool   `json:"available"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date  string          `json:"date"`
	Slots []*SlotResponse `json:"slots"`
}

// FromSlotViews конвертирует занятость дня в HTTP ответ
func FromSlotViews(date string, views []domain.SlotView) *SlotsResponse {
	resp := &SlotsResponse{
		Date:  date,
		Slots: make([]*SlotResponse, 0, len(views)),
	}
	for _, v := range views {
		resp.Slots = append(resp.Slots, &SlotResponse{
			Hour:          v.Hour,
			IsBlocked:     v.IsBlocked,
			BlockedReason: v.BlockedReason,
			LiveCount:     v.LiveCount,
			DropCount:     v.DropCount,
			Available:     v.Available,
		})
	}
	return resp
}
