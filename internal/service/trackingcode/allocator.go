package trackingcode

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Allocator выдает уникальные 8-значные коды записей
type Allocator struct {
	store       Store
	intn        func(n int) int
	maxAttempts int
	logger      Logger
}

// NewAllocator создает аллокатор с равномерным генератором из math/rand/v2
func NewAllocator(store Store, logger Logger) *Allocator {
	return &Allocator{
		store:       store,
		intn:        rand.IntN,
		maxAttempts: domain.TrackingCodeMaxAttempts,
		logger:      logger,
	}
}

// WithRandom подменяет источник случайности (intn возвращает значение из [0, n))
func (a *Allocator) WithRandom(intn func(n int) int) *Allocator {
	a.intn = intn
	return a
}

// Allocate генерирует код и проверяет его уникальность, не более maxAttempts попыток без задержек
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	span := domain.TrackingCodeMax - domain.TrackingCodeMin + 1

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		code := fmt.Sprintf("%08d", domain.TrackingCodeMin+a.intn(span))

		exists, err := a.store.TrackingCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: Allocate - check code: %w", ErrInternal, err)
		}
		if !exists {
			return code, nil
		}

		a.logger.Warn("Allocate: tracking code collision on attempt %d/%d", attempt, a.maxAttempts)
	}

	a.logger.Error("Allocate: no unique tracking code after %d attempts", a.maxAttempts)
	return "", ErrExhausted
}
