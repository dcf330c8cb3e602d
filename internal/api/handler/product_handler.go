package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/dto"
	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{
		catalogService: catalogService,
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	response.SuccessJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ListOwnerProducts(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	products, err := h.catalogService.ListOwnerProducts(r.Context(), identity.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	if products == nil {
		products = []model.OwnerProduct{}
	}
	response.SuccessJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	var req dto.AddProductDTO
	if !decodeJSON(w, r, &req) {
		response.BadRequest(w, "invalid request body")
		return
	}

	product, err := h.catalogService.AddProduct(r.Context(), service.AddProductParams{
		OwnerID:     identity.ID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageRef:    req.ImageRef,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity, err := mustIdentity(r)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), identity.ID, chi.URLParam(r, "productID")); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
