package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/adstack-mw/billboard-service/internal/api/handlers"
)

type tenantContextKey struct{}

const tenantHeader = "X-Tenant-ID"

// Tenant извлекает ID тенанта из заголовка X-Tenant-ID и кладет его в контекст
// Запрос без валидного тенанта отклоняется - ни один обработчик не работает
// с неявным тенантом
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(tenantHeader)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-Tenant-ID")
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Tenant-ID")
			return
		}

		ctx := context.WithValue(r.Context(), tenantContextKey{}, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantFromContext возвращает ID тенанта, положенный middleware
func TenantFromContext(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantContextKey{}).(int64)
	return tenantID, ok
}
