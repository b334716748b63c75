package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cyberalexander/messengerio/internal/response"
)

// Recoverer turns a panicking handler into a 500 response instead of
// taking the connection down with it.
func Recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.Named("recover")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("handler panicked",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Stack("stack"),
				)
				response.RespondError(w, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
