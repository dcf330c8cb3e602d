package middleware

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StatusRecoder struct {
	http.ResponseWriter
	status int
}

func (w *StatusRecoder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// 沒有呼叫 WriteHeader 時為 200
func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// 記錄request 請求
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = &log.Logger
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recoder := &StatusRecoder{
				ResponseWriter: w,
			}
			next.ServeHTTP(recoder, r)

			subjectID, role := "unknown", "anonymous"
			if payload := util.GetTokenPayloadFromContext(r.Context()); payload != nil {
				subjectID, role = payload.SubjectID, string(payload.Role)
			}

			status := recoder.Status()
			evt := logger.Info()
			if status >= http.StatusInternalServerError {
				evt = logger.Error()
			}
			evt.Str("request_id", util.GetRequestIDFromContext(r.Context())).
				Str("subject_id", subjectID).
				Str("role", role).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Msg("request completed")
		})
	}
}
