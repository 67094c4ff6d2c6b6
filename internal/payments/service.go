package payments

import (
	"context"

	"github.com/smartlaundry/backend/pkg/db/models"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

// Service exposes the read-only payment surface. Records are created by the
// orders flow; gateway callbacks are out of scope until a provider is wired.
type Service interface {
	List(ctx context.Context, userID int64, isAdmin bool) ([]models.Payment, error)
	Get(ctx context.Context, userID, paymentID int64, isAdmin bool) (*models.Payment, error)
}

type service struct {
	repo Repository
}

// NewService wires payments dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID int64, isAdmin bool) ([]models.Payment, error) {
	if isAdmin {
		payments, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
		}
		return payments, nil
	}

	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}

func (s *service) Get(ctx context.Context, userID, paymentID int64, isAdmin bool) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get payment")
	}
	if payment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}
	if !isAdmin && payment.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}
	return payment, nil
}
