package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrRateLimited возвращается при исчерпании квоты провайдера или локального лимита
	ErrRateLimited = errors.New("gemini: rate limited")

	// ErrUnavailable возвращается, когда провайдер временно недоступен
	ErrUnavailable = errors.New("gemini: provider unavailable")

	// ErrEmptyResponse возвращается, если модель не вернула текста
	ErrEmptyResponse = errors.New("gemini: empty response")

	// ErrInternal возвращается при прочих ошибках провайдера
	ErrInternal = errors.New("gemini: internal error")
)

// IsTransient сообщает, что ошибка временная и запрос можно обслужить без модели
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable)
}

// classify переводит ошибку транспорта (REST или gRPC) в ошибку пакета
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted:
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}
