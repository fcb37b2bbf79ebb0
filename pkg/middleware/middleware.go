package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/immodash/immodash/pkg/composables"
	"github.com/immodash/immodash/pkg/configuration"
	"github.com/immodash/immodash/pkg/constants"
)

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if id := r.Header.Get(conf.RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithPool makes the database pool available to every request context.
func WithPool(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}

// WithLogger attaches a request-scoped fields logger, assigns a request id
// and recovers panics into a 500 response.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := getRequestID(r, conf)

			fieldsLogger := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"path":       r.RequestURI,
				"method":     r.Method,
			})

			w.Header().Set("X-Request-Id", requestID)
			ctx := context.WithValue(r.Context(), constants.LoggerKey, fieldsLogger)
			ctx = context.WithValue(ctx, constants.RequestIDKey, requestID)

			ww := &statusWriter{ResponseWriter: w}
			defer func() {
				if recovered := recover(); recovered != nil {
					fieldsLogger.WithFields(logrus.Fields{
						"panic": recovered,
						"stack": string(debug.Stack()),
					}).Error("panic recovered in request handler")
					if !ww.written {
						http.Error(ww, "Internal Server Error", http.StatusInternalServerError)
					}
					return
				}
				fieldsLogger.WithFields(logrus.Fields{
					"duration":    time.Since(start),
					"status-code": ww.Status(),
				}).Info("request completed")
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}

// UseLogger returns the request-scoped logger, falling back to a default
// logger outside request contexts.
func UseLogger(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(constants.LoggerKey).(logrus.FieldLogger); ok {
		return l
	}
	return logrus.StandardLogger()
}
