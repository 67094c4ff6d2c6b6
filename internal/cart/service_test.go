package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db/models"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

func d(value string) decimal.Decimal { return decimal.RequireFromString(value) }

type fakeCatalog struct {
	services map[int64]*models.Service
	options  map[int64]*models.ServiceOption
}

func (f *fakeCatalog) GetService(ctx context.Context, id int64) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeCatalog) GetOption(ctx context.Context, id int64) (*models.ServiceOption, error) {
	if o, ok := f.options[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, nil
}

type fakeRepo struct {
	items  map[int64]*models.CartItem
	cat    *fakeCatalog
	nextID int64
}

func newFakeRepo(cat *fakeCatalog) *fakeRepo {
	return &fakeRepo{items: map[int64]*models.CartItem{}, cat: cat, nextID: 1}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) hydrate(item models.CartItem) models.CartItem {
	if s, ok := f.cat.services[item.ServiceID]; ok {
		copied := *s
		item.Service = &copied
	}
	if item.OptionID != nil {
		if o, ok := f.cat.options[*item.OptionID]; ok {
			copied := *o
			item.Option = &copied
		}
	}
	return item
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, f.hydrate(*item))
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*models.CartItem, error) {
	if item, ok := f.items[id]; ok {
		hydrated := f.hydrate(*item)
		return &hydrated, nil
	}
	return nil, nil
}

func (f *fakeRepo) FindLine(ctx context.Context, userID, serviceID int64, optionID *int64) (*models.CartItem, error) {
	for _, item := range f.items {
		if item.UserID != userID || item.ServiceID != serviceID {
			continue
		}
		if (item.OptionID == nil) != (optionID == nil) {
			continue
		}
		if optionID != nil && *item.OptionID != *optionID {
			continue
		}
		copied := *item
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) Create(ctx context.Context, item *models.CartItem) error {
	item.ID = f.nextID
	f.nextID++
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	if item, ok := f.items[id]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	var removed int64
	for id, item := range f.items {
		if item.UserID == userID {
			delete(f.items, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, item := range f.items {
		if item.UserID == userID {
			count++
		}
	}
	return count, nil
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeCatalog) {
	t.Helper()
	cat := &fakeCatalog{
		services: map[int64]*models.Service{
			1: {ID: 1, Name: "Regular Wash", Price: d("10.00"), IsActive: true},
			2: {ID: 2, Name: "Steam Press", Price: d("15.00"), IsActive: true},
			3: {ID: 3, Name: "Retired", Price: d("5.00"), IsActive: false},
		},
		options: map[int64]*models.ServiceOption{
			11: {ID: 11, ServiceID: 2, Name: "Shirt", Price: d("12.00"), IsActive: true},
			12: {ID: 12, ServiceID: 2, Name: "Saree", Price: d("20.00"), IsActive: false},
		},
	}
	repo := newFakeRepo(cat)
	cfg := &config.Config{
		Pricing: config.PricingConfig{TaxRate: "0.18", DeliveryCharge: "50.00"},
	}
	if err := cfg.Pricing.Validate(); err != nil {
		t.Fatalf("pricing config: %v", err)
	}
	svc, err := NewService(repo, cat, cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, cat
}

func TestAddValidatesCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 99, Quantity: 1}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown service, got %v", err)
	}
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 3, Quantity: 1}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive service, got %v", err)
	}

	wrongOption := int64(11)
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 1, OptionID: &wrongOption, Quantity: 1}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for foreign option, got %v", err)
	}

	inactiveOption := int64(12)
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 2, OptionID: &inactiveOption, Quantity: 1}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive option, got %v", err)
	}

	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 1, Quantity: 0}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestAddRejectsDuplicateLine(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	option := int64(11)
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 2, OptionID: &option, Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 2, OptionID: &option, Quantity: 1}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate line, got %v", err)
	}

	// Same service without an option is a distinct line.
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 2, Quantity: 1}); err != nil {
		t.Fatalf("optionless add: %v", err)
	}
	// Another user may add the same combination.
	if _, err := svc.Add(ctx, AddParams{UserID: 2, ServiceID: 2, OptionID: &option, Quantity: 1}); err != nil {
		t.Fatalf("other user add: %v", err)
	}
}

func TestUpdateQuantityDeletesOnZero(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	result, err := svc.UpdateQuantity(ctx, 1, item.ID, 5)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if result.Removed || result.Item.Quantity != 5 {
		t.Fatalf("unexpected update result %+v", result)
	}

	result, err = svc.UpdateQuantity(ctx, 1, item.ID, 0)
	if err != nil {
		t.Fatalf("zero-quantity update must succeed, got %v", err)
	}
	if !result.Removed {
		t.Fatal("expected line removed")
	}
	if _, ok := repo.items[item.ID]; ok {
		t.Fatal("line still present after removal")
	}
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := svc.UpdateQuantity(ctx, 2, item.ID, 3); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign item, got %v", err)
	}
}

func TestSummaryUsesOptionPriceAndSharedPricing(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	option := int64(11)
	// 2 x 12.00 (option price, not the 15.00 base) + 1 x 10.00 = 34.00
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 2, OptionID: &option, Quantity: 2}); err != nil {
		t.Fatalf("add option line: %v", err)
	}
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 1, Quantity: 1}); err != nil {
		t.Fatalf("add base line: %v", err)
	}

	summary, err := svc.Summary(ctx, 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.ItemCount != 3 {
		t.Fatalf("item count = %d, want 3", summary.ItemCount)
	}
	if !summary.Subtotal.Equal(d("34.00")) {
		t.Fatalf("subtotal = %s, want 34.00", summary.Subtotal)
	}
	if !summary.TaxAmount.Equal(d("6.12")) {
		t.Fatalf("tax = %s, want 6.12", summary.TaxAmount)
	}
	if !summary.DeliveryCharge.Equal(d("50.00")) {
		t.Fatalf("delivery = %s, want 50.00", summary.DeliveryCharge)
	}
	if !summary.TotalAmount.Equal(d("90.12")) {
		t.Fatalf("total = %s, want 90.12", summary.TotalAmount)
	}
}

func TestSummaryEmptyCart(t *testing.T) {
	svc, _, _ := newTestService(t)

	summary, err := svc.Summary(context.Background(), 1)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.ItemCount != 0 {
		t.Fatalf("item count = %d, want 0", summary.ItemCount)
	}
	// The flat delivery charge applies even before anything is in the cart.
	if !summary.Subtotal.IsZero() || !summary.TaxAmount.IsZero() {
		t.Fatalf("empty cart subtotal/tax must be zero, got %+v", summary.Breakdown)
	}
	if !summary.DeliveryCharge.Equal(d("50.00")) || !summary.TotalAmount.Equal(d("50.00")) {
		t.Fatalf("empty cart delivery/total = %s/%s, want 50.00/50.00", summary.DeliveryCharge, summary.TotalAmount)
	}
}

func TestClear(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 1, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, AddParams{UserID: 1, ServiceID: 2, Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, AddParams{UserID: 2, ServiceID: 1, Quantity: 1}); err != nil {
		t.Fatalf("add other user: %v", err)
	}

	removed, err := svc.Clear(ctx, 1)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}

	count, err := svc.Count(ctx, 2)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatal("other user's cart must be untouched")
	}
}
