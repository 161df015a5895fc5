package appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// CreateRequest запрос на создание записи
type CreateRequest struct {
	Date      time.Time // календарная дата, время игнорируется
	Hour      int
	Type      domain.AppointmentType
	Requester domain.Requester
}

// outcome метки метрик
const (
	opCreate     = "create"
	opReschedule = "reschedule"
	opCancel     = "cancel"

	outcomeSuccess = "success"
)

// codeCollisionRetries повторы создания при занятом на вставке коде
const codeCollisionRetries = 1
