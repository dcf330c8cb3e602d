package response

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Data interface{} `json:"data"`
}

type ResponseError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var kindStatus = map[apperr.Kind]int{
	apperr.Unauthenticated:    http.StatusUnauthorized,
	apperr.Forbidden:          http.StatusForbidden,
	apperr.NotFound:           http.StatusNotFound,
	apperr.Conflict:           http.StatusConflict,
	apperr.EmptyCart:          http.StatusUnprocessableEntity,
	apperr.InvalidTransition:  http.StatusConflict,
	apperr.InvalidInput:       http.StatusBadRequest,
	apperr.PersistenceFailure: http.StatusInternalServerError,
	apperr.Internal:           http.StatusInternalServerError,
}

// StatusOf 錯誤類型對應的 http status
func StatusOf(kind apperr.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func SuccessJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Data: data})
}

// ErrorJSON 依 apperr.Kind 決定 status，非 apperr 的錯誤一律 500 且不外漏內容
func ErrorJSON(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := StatusOf(kind)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("kind", kind.String()).Msg("request failed")
	}
	writeJSON(w, status, ResponseError{
		Error:   kind.String(),
		Message: apperr.Message(err),
	})
}

func BadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ResponseError{
		Error:   apperr.InvalidInput.String(),
		Message: msg,
	})
}

func TooManyRequests(w http.ResponseWriter) {
	writeJSON(w, http.StatusTooManyRequests, ResponseError{
		Error:   "rate_limited",
		Message: "too many requests",
	})
}
