package handler

import (
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) ListCart(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	lines, err := h.cartService.ListCart(r.Context(), identity.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	var req dto.AddToCartDTO
	if !decodeJSON(w, r, &req) || strings.TrimSpace(req.ProductID) == "" {
		response.BadRequest(w, "product_id is required")
		return
	}

	line, err := h.cartService.AddToCart(r.Context(), identity.ID, req.ProductID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusCreated, line)
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	if err := h.cartService.RemoveFromCart(r.Context(), identity.ID, chi.URLParam(r, "productID")); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	var req dto.AdjustQuantityDTO
	if !decodeJSON(w, r, &req) {
		response.BadRequest(w, "invalid request body")
		return
	}

	line, err := h.cartService.AdjustQuantity(r.Context(), identity.ID, chi.URLParam(r, "productID"), service.QuantityDirection(strings.ToLower(req.Direction)))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, line)
}
