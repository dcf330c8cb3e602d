package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/constants"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchenhub/internal/service"
	"github.com/rs/zerolog/log"
)

type CheckoutHandler struct {
	checkoutService service.ICheckoutService
	idempotency     redis_repo.IIdempotencyRepository
}

// idempotency 可為 nil，沒有 redis 時不檢查 Idempotency-Key
func NewCheckoutHandler(checkoutService service.ICheckoutService, idempotency redis_repo.IIdempotencyRepository) *CheckoutHandler {
	if checkoutService == nil {
		panic("checkoutService cannot be nil")
	}
	return &CheckoutHandler{
		checkoutService: checkoutService,
		idempotency:     idempotency,
	}
}

// Checkout 同一 Idempotency-Key 24 小時內只執行一次
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	var req dto.CheckoutDTO
	if !decodeJSON(w, r, &req) {
		response.BadRequest(w, "invalid request body")
		return
	}

	address := req.Address.ToModel()
	if missing := address.MissingFields(); len(missing) > 0 {
		response.BadRequest(w, fmt.Sprintf("missing address fields: %s", strings.Join(missing, ", ")))
		return
	}

	ctx := r.Context()
	idemKey := h.idempotencyKey(identity.ID, r)
	if idemKey != "" {
		acquired, err := h.idempotency.Acquire(ctx, idemKey, redis_repo.DefaultIdempotencyTTL)
		if err != nil {
			log.Warn().Err(err).Str("customer_id", identity.ID).Msg("idempotency check unavailable, continue checkout")
			idemKey = ""
		} else if !acquired {
			response.ErrorJSON(w, apperr.New(apperr.Conflict, "Checkout", "duplicate checkout request"))
			return
		}
	}

	confirmation, err := h.checkoutService.Checkout(ctx, service.CheckoutRequest{
		CustomerID:  identity.ID,
		Address:     address,
		PaymentMode: model.PaymentMode(strings.ToUpper(strings.TrimSpace(req.PaymentMode))),
	})
	if err != nil {
		// 失敗的結帳允許用同一把 key 重試
		if idemKey != "" {
			if relErr := h.idempotency.Release(context.WithoutCancel(ctx), idemKey); relErr != nil {
				log.Warn().Err(relErr).Str("customer_id", identity.ID).Msg("release idempotency key failed")
			}
		}
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusCreated, confirmation)
}

func (h *CheckoutHandler) idempotencyKey(customerID string, r *http.Request) string {
	if h.idempotency == nil {
		return ""
	}
	key := strings.TrimSpace(r.Header.Get(constants.IdempotencyKeyHeader))
	if key == "" {
		return ""
	}
	return fmt.Sprintf("checkout:%s:%s", customerID, key)
}
