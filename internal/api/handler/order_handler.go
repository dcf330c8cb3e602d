package handler

import (
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	orders, err := h.orderService.GetCustomerOrders(r.Context(), identity.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOwnerOrders(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	orders, err := h.orderService.GetOwnerOrders(r.Context(), identity.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, orders)
}

// UpdateStatus 只能沿狀態圖前進，非法轉換回 409
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	var req dto.UpdateOrderStatusDTO
	if !decodeJSON(w, r, &req) || strings.TrimSpace(req.OrderID) == "" {
		response.BadRequest(w, "order_id and status are required")
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), identity.ID, req.OrderID, model.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status))))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetStatusHistory(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	histories, err := h.orderService.GetOrderStatusHistory(r.Context(), identity.ID, chi.URLParam(r, "orderID"))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusOK, histories)
}
