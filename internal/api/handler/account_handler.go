package handler

import (
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/service"
)

type AccountHandler struct {
	accountService service.IAccountService
}

func NewAccountHandler(accountService service.IAccountService) *AccountHandler {
	if accountService == nil {
		panic("accountService cannot be nil")
	}
	return &AccountHandler{
		accountService: accountService,
	}
}

func (h *AccountHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterCustomerDTO
	if !decodeJSON(w, r, &req) {
		response.BadRequest(w, "invalid request body")
		return
	}

	identity, err := h.accountService.RegisterCustomer(r.Context(), service.RegisterCustomerParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusCreated, identity)
}

func (h *AccountHandler) RegisterOwner(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterOwnerDTO
	if !decodeJSON(w, r, &req) {
		response.BadRequest(w, "invalid request body")
		return
	}

	identity, err := h.accountService.RegisterOwner(r.Context(), service.RegisterOwnerParams{
		Name:            req.Name,
		KitchenName:     req.KitchenName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusCreated, identity)
}

func (h *AccountHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterAdminDTO
	if !decodeJSON(w, r, &req) {
		response.BadRequest(w, "invalid request body")
		return
	}

	identity, err := h.accountService.RegisterAdmin(r.Context(), service.RegisterAdminParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusCreated, identity)
}

func (h *AccountHandler) Login(role model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.LoginDTO
		if !decodeJSON(w, r, &req) {
			response.BadRequest(w, "invalid request body")
			return
		}

		result, err := h.accountService.Login(r.Context(), role, req.Email, req.Password)
		if err != nil {
			response.ErrorJSON(w, err)
			return
		}

		response.SuccessJSON(w, http.StatusOK, dto.LoginResponse{
			AccessToken: dto.TokenInfo{
				Value:     result.AccessToken,
				ExpiresIn: int(time.Until(result.ExpiresAt).Seconds()),
			},
			Identity: result.Identity,
		})
	}
}
