package middleware

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-AppointmentDesk/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

// Заголовки с данными вендора, их проставляет фронтенд после входа
const (
	HeaderVendorEmail = "X-Vendor-Email"
	HeaderVendorName  = "X-Vendor-Name"
	HeaderCarrierName = "X-Carrier-Name"
)

const msgVendorRequired = "a valid X-Vendor-Email header is required"

type requesterKey struct{}

// Vendor требует X-Vendor-Email и кладет данные вендора в контекст
func Vendor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderVendorEmail))
		if _, err := mail.ParseAddress(email); err != nil {
			handlers.RespondUnauthorized(w, msgVendorRequired)
			return
		}

		requester := domain.Requester{
			Name:        strings.TrimSpace(r.Header.Get(HeaderVendorName)),
			Email:       strings.ToLower(email),
			CarrierName: strings.TrimSpace(r.Header.Get(HeaderCarrierName)),
		}

		ctx := context.WithValue(r.Context(), requesterKey{}, requester)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequester возвращает вендора из контекста
func GetRequester(ctx context.Context) (domain.Requester, bool) {
	requester, ok := ctx.Value(requesterKey{}).(domain.Requester)
	return requester, ok
}

// WithRequester кладет вендора в контекст (для тестов хендлеров)
func WithRequester(ctx context.Context, requester domain.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, requester)
}
