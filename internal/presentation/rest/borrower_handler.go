package rest

import (
	"net/http"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/usecase"
)

// BorrowerHandler serves borrower registration, KYC, and lookup endpoints.
type BorrowerHandler struct {
	register *usecase.RegisterBorrowerUseCase
	review   *usecase.ReviewKYCUseCase
	get      *usecase.GetBorrowerUseCase
	loans    *usecase.ListBorrowerLoansUseCase
}

// NewBorrowerHandler creates a borrower HTTP handler.
func NewBorrowerHandler(
	register *usecase.RegisterBorrowerUseCase,
	review *usecase.ReviewKYCUseCase,
	get *usecase.GetBorrowerUseCase,
	loans *usecase.ListBorrowerLoansUseCase,
) *BorrowerHandler {
	return &BorrowerHandler{
		register: register,
		review:   review,
		get:      get,
		loans:    loans,
	}
}

// RegisterRoutes attaches borrower routes to the given mux.
func (h *BorrowerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/borrowers", h.registerBorrower)
	mux.HandleFunc("GET /api/v1/borrowers/{id}", h.getBorrower)
	mux.Handle("POST /api/v1/borrowers/{id}/kyc/approve",
		RequireRole("admin", "loan_officer")(http.HandlerFunc(h.approveKYC)))
	mux.Handle("POST /api/v1/borrowers/{id}/kyc/reject",
		RequireRole("admin", "loan_officer")(http.HandlerFunc(h.rejectKYC)))
	mux.HandleFunc("GET /api/v1/borrowers/{id}/loans", h.listLoans)
}

func (h *BorrowerHandler) registerBorrower(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterBorrowerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BorrowerHandler) getBorrower(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BorrowerHandler) approveKYC(w http.ResponseWriter, r *http.Request) {
	resp, err := h.review.Execute(r.Context(), dto.ReviewKYCRequest{
		BorrowerID: r.PathValue("id"),
		Approved:   true,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BorrowerHandler) rejectKYC(w http.ResponseWriter, r *http.Request) {
	var req dto.ReviewKYCRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.BorrowerID = r.PathValue("id")
	req.Approved = false

	resp, err := h.review.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BorrowerHandler) listLoans(w http.ResponseWriter, r *http.Request) {
	resp, err := h.loans.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
