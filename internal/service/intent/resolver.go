package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const (
	resultIntent        = "intent"
	resultClarification = "clarification"
	resultError         = "error"
)

// FailurePolicy решает, переходить ли к разбору по правилам после ошибки основного экстрактора
type FailurePolicy func(err error) bool

// TransientOnly переход только при временной ошибке провайдера
func TransientOnly(err error) bool {
	return errors.Is(err, ErrTransientProvider)
}

// Resolver выбирает способ разбора и доводит намерение до исполнимого вида:
// подставляет вендора, восстанавливает код записи из истории и запрашивает недостающие поля.
type Resolver struct {
	primary  Extractor
	fallback Extractor
	policy   FailurePolicy
	metrics  MetricsRecorder
	logger   Logger
}

// NewResolver создает резолвер. primary может быть nil: тогда всегда используется fallback.
func NewResolver(primary, fallback Extractor, policy FailurePolicy, metrics MetricsRecorder, logger Logger) *Resolver {
	if policy == nil {
		policy = TransientOnly
	}
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		policy:   policy,
		metrics:  metrics,
		logger:   logger,
	}
}

// Resolve возвращает намерение или уточняющий вопрос.
// Ошибка возвращается, только если основной экстрактор упал не по временной причине.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*domain.Resolution, error) {
	res, err := r.extract(ctx, req)
	if err != nil {
		r.record(domain.BackendModel, resultError)
		return nil, err
	}

	r.complete(req, res)

	if res.NeedsClarification() {
		r.record(res.Backend, resultClarification)
	} else {
		r.record(res.Backend, resultIntent)
	}

	return res, nil
}

func (r *Resolver) extract(ctx context.Context, req Request) (*domain.Resolution, error) {
	if r.primary == nil {
		return r.fallback.Extract(ctx, req)
	}

	res, err := r.primary.Extract(ctx, req)
	if err == nil {
		return res, nil
	}

	if !r.policy(err) {
		r.logger.Error("Resolve: primary extractor failed: %v", err)
		return nil, err
	}

	r.logger.Warn("Resolve: primary extractor unavailable, using fallback parser: %v", err)
	return r.fallback.Extract(ctx, req)
}

// complete дополняет намерение и при нехватке полей заменяет его уточнением
func (r *Resolver) complete(req Request, res *domain.Resolution) {
	if res.NeedsClarification() {
		return
	}
	in := res.Intent

	// Личность вендора берется из запроса, а не из ответа модели
	if req.Requester.Name != "" {
		in.VendorName = req.Requester.Name
	}
	if req.Requester.Email != "" {
		in.VendorEmail = req.Requester.Email
	}
	if in.CarrierName == "" {
		in.CarrierName = req.Requester.CarrierName
	}

	in.Type = domain.AppointmentType(strings.ToLower(strings.TrimSpace(string(in.Type))))
	in.TrackingCode = strings.TrimSpace(in.TrackingCode)

	if (in.Action == domain.ActionUpdate || in.Action == domain.ActionDelete) && in.TrackingCode == "" {
		if ref, ok := resolveReference(req.Text, req.History); ok {
			in.TrackingCode = ref.Code
			if in.Action == domain.ActionUpdate && in.Date == "" {
				in.Date = ref.Date
			}
			r.logger.Info("Resolve: tracking code %s taken from conversation history", ref.Code)
		}
	}

	res.Clarification = missingFields(in)
}

// missingFields текст уточнения для недостающих полей или пустая строка
func missingFields(in *domain.Intent) string {
	switch in.Action {
	case domain.ActionCreate:
		var pieces []string
		if in.Date == "" {
			pieces = append(pieces, fieldDate)
		}
		if in.Hour == nil {
			pieces = append(pieces, fieldHour)
		}
		if !in.Type.IsValid() {
			pieces = append(pieces, fieldType)
		}
		if len(pieces) > 0 {
			return fmt.Sprintf(msgMissingFieldsFmt, joinPieces(pieces))
		}

	case domain.ActionUpdate:
		if in.TrackingCode == "" {
			return msgUpdateNeedsCode
		}
		var pieces []string
		if in.Date == "" {
			pieces = append(pieces, fieldDate)
		}
		if in.Hour == nil {
			pieces = append(pieces, fieldHour)
		}
		if len(pieces) > 0 {
			return fmt.Sprintf(msgMissingNewSlotFmt, joinPieces(pieces))
		}

	case domain.ActionDelete:
		if in.TrackingCode == "" {
			return msgCancelNeedsCode
		}

	case domain.ActionQuery:
		switch in.QueryType {
		case domain.QueryMyAppointments:
		case domain.QueryAvailability:
			if in.Date == "" {
				return msgAvailabilityDate
			}
		default:
			return msgQueryUnclear
		}
	}

	return ""
}

func joinPieces(pieces []string) string {
	switch len(pieces) {
	case 0:
		return ""
	case 1:
		return pieces[0]
	}
	return strings.Join(pieces[:len(pieces)-1], ", ") + " and " + pieces[len(pieces)-1]
}

func (r *Resolver) record(backend domain.IntentBackend, result string) {
	if r.metrics != nil {
		r.metrics.RecordIntentResolution(string(backend), result)
	}
}
