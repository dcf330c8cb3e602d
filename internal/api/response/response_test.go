package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/stretchr/testify/require"
)

func TestErrorJSON(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{"unauthenticated", apperr.New(apperr.Unauthenticated, "op", "missing token"), http.StatusUnauthorized, "unauthenticated", "missing token"},
		{"forbidden", apperr.New(apperr.Forbidden, "op", "owner only"), http.StatusForbidden, "forbidden", "owner only"},
		{"not found", apperr.New(apperr.NotFound, "op", "order not found"), http.StatusNotFound, "not_found", "order not found"},
		{"conflict", apperr.New(apperr.Conflict, "op", "dup"), http.StatusConflict, "conflict", "dup"},
		{"empty cart", apperr.New(apperr.EmptyCart, "op", "cart is empty"), http.StatusUnprocessableEntity, "empty_cart", "cart is empty"},
		{"invalid transition", apperr.New(apperr.InvalidTransition, "op", "no"), http.StatusConflict, "invalid_transition", "no"},
		{"invalid input", apperr.New(apperr.InvalidInput, "op", "bad"), http.StatusBadRequest, "invalid_input", "bad"},
		{"persistence", apperr.Wrap(apperr.PersistenceFailure, "op", "failed", errors.New("db down")), http.StatusInternalServerError, "persistence_failure", "failed"},
		{"wrapped", fmt.Errorf("handler: %w", apperr.New(apperr.NotFound, "op", "gone")), http.StatusNotFound, "not_found", "gone"},
		{"plain", errors.New("secret detail"), http.StatusInternalServerError, "internal", "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ErrorJSON(rec, tc.err)

			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ResponseError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.wantKind, body.Error)
			require.Equal(t, tc.wantMsg, body.Message)
		})
	}
}

func TestSuccessJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessJSON(rec, http.StatusCreated, map[string]string{"id": "1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"data":{"id":"1"}}`, rec.Body.String())
}
