package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
	"github.com/rs/zerolog/log"
)

var errPanic = errors.New("panic recovered")

func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Str("request_id", util.GetRequestIDFromContext(r.Context())).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				response.ErrorJSON(w, errPanic)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
