package rest

import (
	"net/http"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/usecase"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/auth"
)

// LoanHandler serves the loan lifecycle endpoints.
type LoanHandler struct {
	apply        *usecase.ApplyForLoanUseCase
	approve      *usecase.ApproveLoanUseCase
	reject       *usecase.RejectLoanUseCase
	cancel       *usecase.CancelLoanUseCase
	disburse     *usecase.DisburseLoanUseCase
	repay        *usecase.ProcessRepaymentUseCase
	get          *usecase.GetLoanUseCase
	schedule     *usecase.GetRepaymentScheduleUseCase
	transactions *usecase.ListTransactionsUseCase
	markDefault  *usecase.MarkLoanDefaultedUseCase
	writeOff     *usecase.WriteOffLoanUseCase
}

// NewLoanHandler creates a loan HTTP handler.
func NewLoanHandler(
	apply *usecase.ApplyForLoanUseCase,
	approve *usecase.ApproveLoanUseCase,
	reject *usecase.RejectLoanUseCase,
	cancel *usecase.CancelLoanUseCase,
	disburse *usecase.DisburseLoanUseCase,
	repay *usecase.ProcessRepaymentUseCase,
	get *usecase.GetLoanUseCase,
	schedule *usecase.GetRepaymentScheduleUseCase,
	transactions *usecase.ListTransactionsUseCase,
	markDefault *usecase.MarkLoanDefaultedUseCase,
	writeOff *usecase.WriteOffLoanUseCase,
) *LoanHandler {
	return &LoanHandler{
		apply:        apply,
		approve:      approve,
		reject:       reject,
		cancel:       cancel,
		disburse:     disburse,
		repay:        repay,
		get:          get,
		schedule:     schedule,
		transactions: transactions,
		markDefault:  markDefault,
		writeOff:     writeOff,
	}
}

// RegisterRoutes attaches loan routes to the given mux. Decisions and money
// movement are restricted to back-office roles.
func (h *LoanHandler) RegisterRoutes(mux *http.ServeMux) {
	staff := RequireRole(auth.RoleAdmin, auth.RoleLoanOfficer)

	mux.HandleFunc("POST /api/v1/loans", h.applyForLoan)
	mux.HandleFunc("GET /api/v1/loans/{id}", h.getLoan)
	mux.HandleFunc("GET /api/v1/loans/{id}/schedule", h.getSchedule)
	mux.HandleFunc("GET /api/v1/loans/{id}/transactions", h.listTransactions)
	mux.HandleFunc("POST /api/v1/loans/{id}/repayments", h.processRepayment)
	mux.HandleFunc("POST /api/v1/loans/{id}/cancel", h.cancelLoan)

	mux.Handle("POST /api/v1/loans/{id}/approve", staff(http.HandlerFunc(h.approveLoan)))
	mux.Handle("POST /api/v1/loans/{id}/reject", staff(http.HandlerFunc(h.rejectLoan)))
	mux.Handle("POST /api/v1/loans/{id}/disburse", staff(http.HandlerFunc(h.disburseLoan)))
	mux.Handle("POST /api/v1/loans/{id}/default", staff(http.HandlerFunc(h.markDefaulted)))
	mux.Handle("POST /api/v1/loans/{id}/write-off", staff(http.HandlerFunc(h.writeOffLoan)))
}

func (h *LoanHandler) applyForLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyForLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.apply.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) getLoan(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getSchedule(w http.ResponseWriter, r *http.Request) {
	resp, err := h.schedule.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) listTransactions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.transactions.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) approveLoan(w http.ResponseWriter, r *http.Request) {
	req := dto.ApproveLoanRequest{LoanID: r.PathValue("id")}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		req.ApproverID = claims.UserID.String()
	}

	resp, err := h.approve.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) rejectLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.LoanID = r.PathValue("id")
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		req.ApproverID = claims.UserID.String()
	}

	resp, err := h.reject.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) cancelLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.LoanID = r.PathValue("id")

	resp, err := h.cancel.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) disburseLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.DisburseLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.LoanID = r.PathValue("id")

	resp, err := h.disburse.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) processRepayment(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessRepaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.LoanID = r.PathValue("id")

	resp, err := h.repay.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) markDefaulted(w http.ResponseWriter, r *http.Request) {
	resp, err := h.markDefault.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) writeOffLoan(w http.ResponseWriter, r *http.Request) {
	resp, err := h.writeOff.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
