package cart

import (
	"context"

	"github.com/smartlaundry/backend/internal/pricing"
	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db"
	"github.com/smartlaundry/backend/pkg/db/models"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

// Service defines cart operations, all scoped to the owning user.
type Service interface {
	List(ctx context.Context, userID int64) ([]models.CartItem, error)
	Add(ctx context.Context, params AddParams) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*UpdateResult, error)
	Clear(ctx context.Context, userID int64) (int64, error)
	Summary(ctx context.Context, userID int64) (*Summary, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

// AddParams captures a new cart line.
type AddParams struct {
	UserID    int64
	ServiceID int64
	OptionID  *int64
	Quantity  int
}

// UpdateResult reports what an update-quantity call did. Item is nil when
// the line was removed.
type UpdateResult struct {
	Item    *models.CartItem `json:"item,omitempty"`
	Removed bool             `json:"removed"`
}

// Summary is the priced view of the cart.
type Summary struct {
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	pricing.Breakdown
}

type service struct {
	repo    Repository
	catalog CatalogReader
	cfg     *config.Config
}

// NewService wires cart dependencies.
func NewService(repo Repository, catalog CatalogReader, cfg *config.Config) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart repository required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog reader required")
	}
	if cfg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "config required")
	}
	return &service{repo: repo, catalog: catalog, cfg: cfg}, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]models.CartItem, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, params AddParams) (*models.CartItem, error) {
	if params.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if params.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	svc, err := s.catalog.GetService(ctx, params.ServiceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get service")
	}
	if svc == nil || !svc.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}

	if params.OptionID != nil {
		option, err := s.catalog.GetOption(ctx, *params.OptionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get option")
		}
		if option == nil || !option.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service option not found")
		}
		if option.ServiceID != params.ServiceID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "option does not belong to service")
		}
	}

	existing, err := s.repo.FindLine(ctx, params.UserID, params.ServiceID, params.OptionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing line")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item already in cart")
	}

	item := &models.CartItem{
		UserID:    params.UserID,
		ServiceID: params.ServiceID,
		OptionID:  params.OptionID,
		Quantity:  params.Quantity,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "item already in cart")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart line")
	}

	created, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart line")
	}
	if created == nil {
		return item, nil
	}
	return created, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) (*UpdateResult, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	// Zero or negative quantity removes the line rather than erroring.
	if quantity <= 0 {
		if err := s.repo.Delete(ctx, item.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
		}
		return &UpdateResult{Removed: true}, nil
	}

	if err := s.repo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quantity")
	}
	item.Quantity = quantity
	return &UpdateResult{Item: item}, nil
}

func (s *service) Clear(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	removed, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return removed, nil
}

func (s *service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, 0, len(items))
	count := 0
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice(), Quantity: item.Quantity})
		count += item.Quantity
	}

	breakdown := pricing.Compute(lines, s.cfg.Pricing.TaxRateDecimal(), s.cfg.Pricing.DeliveryChargeDecimal())
	return &Summary{
		Items:     items,
		ItemCount: count,
		Breakdown: breakdown,
	}, nil
}

func (s *service) Count(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart")
	}
	return count, nil
}

func (s *service) ownedItem(ctx context.Context, userID, itemID int64) (*models.CartItem, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get cart line")
	}
	if item == nil || item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return item, nil
}
