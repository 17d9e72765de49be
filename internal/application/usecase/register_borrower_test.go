package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/dto"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/application/usecase"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/model"
)

func TestRegisterBorrower_Execute(t *testing.T) {
	validRequest := func() dto.RegisterBorrowerRequest {
		return dto.RegisterBorrowerRequest{
			FirstName:       "Amina",
			LastName:        "Odhiambo",
			Email:           "amina@example.com",
			Phone:           "+254700000001",
			NationalID:      "ID-29481734",
			DateOfBirth:     time.Date(1990, 6, 12, 0, 0, 0, 0, time.UTC),
			AnnualIncome:    decimal.NewFromInt(600_000),
			EmploymentYears: 6,
			PaymentHistory:  "good",
		}
	}

	t.Run("registers with KYC pending", func(t *testing.T) {
		borrowerRepo := &mockBorrowerRepository{}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRegisterBorrowerUseCase(borrowerRepo, publisher)

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, "PENDING", resp.KYCStatus)
		assert.Equal(t, "amina@example.com", resp.Email)
		require.Len(t, borrowerRepo.saved, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		existing := verifiedBorrower(t)
		borrowerRepo := &mockBorrowerRepository{
			findByEmailFunc: func(_ context.Context, _ string) (model.Borrower, error) {
				return existing, nil
			},
		}

		uc := usecase.NewRegisterBorrowerUseCase(borrowerRepo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))
	})

	t.Run("invalid profile", func(t *testing.T) {
		uc := usecase.NewRegisterBorrowerUseCase(&mockBorrowerRepository{}, &mockEventPublisher{})

		req := validRequest()
		req.Email = "not-an-email"
		_, err := uc.Execute(context.Background(), req)
		assert.True(t, domainerr.IsKind(err, domainerr.KindValidation))
	})
}

func TestReviewKYC_Execute(t *testing.T) {
	pendingBorrower := func(t *testing.T) model.Borrower {
		t.Helper()
		b, err := model.NewBorrower(
			"Brian", "Mutua", "brian@example.com", "+254700000002", "ID-11223344",
			time.Date(1995, 2, 1, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(400_000), 3, "",
		)
		require.NoError(t, err)
		return b.ClearEvents()
	}

	t.Run("approve", func(t *testing.T) {
		borrower := pendingBorrower(t)
		borrowerRepo := &mockBorrowerRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Borrower, error) {
				return borrower, nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewReviewKYCUseCase(borrowerRepo, publisher)

		resp, err := uc.Execute(context.Background(), dto.ReviewKYCRequest{
			BorrowerID: borrower.ID().String(),
			Approved:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.KYCStatus)
		require.Len(t, borrowerRepo.saved, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		borrower := pendingBorrower(t)
		borrowerRepo := &mockBorrowerRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Borrower, error) {
				return borrower, nil
			},
		}

		uc := usecase.NewReviewKYCUseCase(borrowerRepo, &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.ReviewKYCRequest{
			BorrowerID: borrower.ID().String(),
			Approved:   false,
			Reason:     "document mismatch",
		})
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.KYCStatus)
		assert.Equal(t, "document mismatch", resp.KYCNote)
	})

	t.Run("second decision conflicts", func(t *testing.T) {
		borrower := verifiedBorrower(t)
		borrowerRepo := &mockBorrowerRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (model.Borrower, error) {
				return borrower, nil
			},
		}

		uc := usecase.NewReviewKYCUseCase(borrowerRepo, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ReviewKYCRequest{
			BorrowerID: borrower.ID().String(),
			Approved:   true,
		})
		assert.True(t, domainerr.IsKind(err, domainerr.KindConflict))
	})

	t.Run("unknown borrower", func(t *testing.T) {
		uc := usecase.NewReviewKYCUseCase(&mockBorrowerRepository{}, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.ReviewKYCRequest{
			BorrowerID: uuid.NewString(),
			Approved:   true,
		})
		assert.True(t, domainerr.IsKind(err, domainerr.KindNotFound))
	})
}
