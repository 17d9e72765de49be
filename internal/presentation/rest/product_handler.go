package rest

import (
	"net/http"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/usecase"
)

// ProductHandler serves the loan product catalog.
type ProductHandler struct {
	list *usecase.ListProductsUseCase
}

// NewProductHandler creates a product HTTP handler.
func NewProductHandler(list *usecase.ListProductsUseCase) *ProductHandler {
	return &ProductHandler{list: list}
}

// RegisterRoutes attaches product routes to the given mux.
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/products", h.listProducts)
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
