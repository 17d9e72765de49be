package usecase

import (
	"github.com/google/uuid"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
)

// parseID validates an external identifier. Malformed IDs are a caller
// mistake, not a lookup miss, so they map to a validation error.
func parseID(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerr.Validation("%s %q is not a valid UUID", label, raw)
	}
	return id, nil
}

func toBorrowerResponse(b model.Borrower) dto.BorrowerResponse {
	return dto.BorrowerResponse{
		ID:              b.ID().String(),
		FirstName:       b.FirstName(),
		LastName:        b.LastName(),
		Email:           b.Email(),
		Phone:           b.Phone(),
		NationalID:      b.NationalID(),
		DateOfBirth:     b.DateOfBirth(),
		AnnualIncome:    b.AnnualIncome(),
		EmploymentYears: b.EmploymentYears(),
		PaymentHistory:  b.PaymentHistory(),
		KYCStatus:       b.KYCStatus().String(),
		KYCNote:         b.KYCNote(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func toProductResponse(p *model.LoanProduct) dto.LoanProductResponse {
	return dto.LoanProductResponse{
		ID:                p.ID().String(),
		Name:              p.Name(),
		Description:       p.Description(),
		MinAmount:         p.MinAmount(),
		MaxAmount:         p.MaxAmount(),
		MinTermMonths:     p.MinTermMonths(),
		MaxTermMonths:     p.MaxTermMonths(),
		InterestRate:      p.InterestRate(),
		ProcessingFeeRate: p.ProcessingFeeRate(),
		LateFeeBase:       p.LateFeeBase(),
	}
}

func toScheduleResponse(schedule []model.ScheduleEntry) []dto.ScheduleEntryResponse {
	if len(schedule) == 0 {
		return nil
	}
	out := make([]dto.ScheduleEntryResponse, len(schedule))
	for i, entry := range schedule {
		out[i] = dto.ScheduleEntryResponse{
			PaymentNumber:    entry.PaymentNumber,
			DueDate:          entry.DueDate,
			AmountDue:        entry.AmountDue,
			Principal:        entry.Principal,
			Interest:         entry.Interest,
			RemainingBalance: entry.RemainingBalance,
			AmountPaid:       entry.AmountPaid,
			LateFee:          entry.LateFee,
			DaysOverdue:      entry.DaysOverdue,
			Status:           entry.Status.String(),
		}
	}
	return out
}

func toLoanResponse(loan model.Loan, includeSchedule bool) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:                 loan.ID().String(),
		LoanNumber:         loan.LoanNumber(),
		BorrowerID:         loan.BorrowerID().String(),
		ProductID:          loan.ProductID().String(),
		Principal:          loan.Principal(),
		InterestRate:       loan.InterestRate(),
		TermMonths:         loan.TermMonths(),
		ProcessingFee:      loan.ProcessingFee(),
		MonthlyPayment:     loan.MonthlyPayment(),
		TotalAmount:        loan.TotalAmount(),
		OutstandingBalance: loan.OutstandingBalance(),
		Status:             loan.Status().String(),
		CreditScore:        loan.CreditScore(),
		RiskRating:         loan.RiskRating().String(),
		Purpose:            loan.Purpose(),
		RejectionReason:    loan.RejectionReason(),
		ApproverID:         loan.ApproverID(),
		ApprovedAt:         loan.ApprovedAt(),
		DisbursedAt:        loan.DisbursedAt(),
		FirstPaymentDue:    loan.FirstPaymentDue(),
		FinalPaymentDue:    loan.FinalPaymentDue(),
		CreatedAt:          loan.CreatedAt(),
		UpdatedAt:          loan.UpdatedAt(),
	}
	if includeSchedule {
		resp.Schedule = toScheduleResponse(loan.Schedule())
	}
	return resp
}

func toTransactionResponse(tx model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID().String(),
		LoanID:      tx.LoanID().String(),
		Type:        string(tx.Type()),
		Amount:      tx.Amount(),
		Reference:   tx.Reference(),
		Description: tx.Description(),
		CreatedAt:   tx.CreatedAt(),
	}
}
