package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

type fakeRepo struct {
	categories map[int64]*models.ServiceCategory
	services   map[int64]*models.Service
	options    map[int64]*models.ServiceOption
	reviews    []*models.ServiceReview
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[int64]*models.ServiceCategory{},
		services:   map[int64]*models.Service{},
		options:    map[int64]*models.ServiceOption{},
		nextID:     1,
	}
}

func (f *fakeRepo) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeRepo) addCategory(name string, active bool) *models.ServiceCategory {
	c := &models.ServiceCategory{ID: f.id(), Name: name, IsActive: active}
	f.categories[c.ID] = c
	return c
}

func (f *fakeRepo) addService(categoryID int64, name string, price string, active bool) *models.Service {
	s := &models.Service{
		ID:         f.id(),
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		IsActive:   active,
	}
	f.services[s.ID] = s
	return s
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) ListCategories(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	var out []models.ServiceCategory
	for _, c := range f.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error) {
	if c, ok := f.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if filter.CategoryID > 0 && s.CategoryID != filter.CategoryID {
			continue
		}
		if filter.ActiveOnly && !s.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) GetService(ctx context.Context, id int64) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetServiceWithDetails(ctx context.Context, id int64) (*models.Service, error) {
	s, _ := f.GetService(ctx, id)
	if s == nil {
		return nil, nil
	}
	for _, o := range f.options {
		if o.ServiceID == id && o.IsActive {
			s.Options = append(s.Options, *o)
		}
	}
	return s, nil
}

func (f *fakeRepo) ListOptions(ctx context.Context, serviceID int64) ([]models.ServiceOption, error) {
	var out []models.ServiceOption
	for _, o := range f.options {
		if serviceID > 0 && o.ServiceID != serviceID {
			continue
		}
		if o.IsActive {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOption(ctx context.Context, id int64) (*models.ServiceOption, error) {
	if o, ok := f.options[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) CreateReview(ctx context.Context, review *models.ServiceReview) error {
	review.ID = f.id()
	copied := *review
	f.reviews = append(f.reviews, &copied)
	return nil
}

func (f *fakeRepo) ListApprovedReviews(ctx context.Context, serviceID int64) ([]models.ServiceReview, error) {
	var out []models.ServiceReview
	for _, r := range f.reviews {
		if r.ServiceID == serviceID && r.IsApproved {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasUserReview(ctx context.Context, serviceID, userID int64) (bool, error) {
	for _, r := range f.reviews {
		if r.ServiceID == serviceID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestListCategoriesFiltersInactive(t *testing.T) {
	svc, repo := newTestService(t)
	repo.addCategory("Dry Cleaning", true)
	repo.addCategory("Retired", false)

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 || categories[0].Name != "Dry Cleaning" {
		t.Fatalf("unexpected categories %+v", categories)
	}
}

func TestGetCategoryNotFoundForInactive(t *testing.T) {
	svc, repo := newTestService(t)
	hidden := repo.addCategory("Hidden", false)

	_, err := svc.GetCategory(context.Background(), hidden.ID)
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetServiceDetailEmbedsOptionsAndReviews(t *testing.T) {
	svc, repo := newTestService(t)
	cat := repo.addCategory("Ironing", true)
	s := repo.addService(cat.ID, "Steam Press", "15.00", true)
	repo.options[99] = &models.ServiceOption{ID: 99, ServiceID: s.ID, Name: "Shirt", Price: decimal.RequireFromString("10.00"), IsActive: true}
	repo.reviews = append(repo.reviews,
		&models.ServiceReview{ID: 201, ServiceID: s.ID, UserID: 1, Rating: 5, IsApproved: true},
		&models.ServiceReview{ID: 202, ServiceID: s.ID, UserID: 2, Rating: 1, IsApproved: false},
	)

	detail, err := svc.GetServiceDetail(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if len(detail.Options) != 1 || detail.Options[0].Name != "Shirt" {
		t.Fatalf("unexpected options %+v", detail.Options)
	}
	if len(detail.Reviews) != 1 || detail.Reviews[0].ID != 201 {
		t.Fatalf("only approved reviews should be embedded, got %+v", detail.Reviews)
	}
}

func TestCreateReviewRules(t *testing.T) {
	svc, repo := newTestService(t)
	cat := repo.addCategory("Wash & Fold", true)
	s := repo.addService(cat.ID, "Regular Wash", "8.00", true)

	if _, err := svc.CreateReview(context.Background(), CreateReviewParams{ServiceID: s.ID, UserID: 5, Rating: 0}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for rating 0, got %v", err)
	}
	if _, err := svc.CreateReview(context.Background(), CreateReviewParams{ServiceID: s.ID, UserID: 5, Rating: 6}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for rating 6, got %v", err)
	}

	review, err := svc.CreateReview(context.Background(), CreateReviewParams{ServiceID: s.ID, UserID: 5, Rating: 4, Comment: " nice "})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if review.Comment != "nice" {
		t.Fatalf("expected trimmed comment, got %q", review.Comment)
	}
	if review.IsApproved {
		t.Fatal("new reviews must await approval")
	}

	if _, err := svc.CreateReview(context.Background(), CreateReviewParams{ServiceID: s.ID, UserID: 5, Rating: 3}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for second review, got %v", err)
	}

	if _, err := svc.CreateReview(context.Background(), CreateReviewParams{ServiceID: 999, UserID: 6, Rating: 3}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown service, got %v", err)
	}
}

func TestListServicesSearch(t *testing.T) {
	svc, repo := newTestService(t)
	cat := repo.addCategory("Dry Cleaning", true)
	repo.addService(cat.ID, "Suit Dry Clean", "40.00", true)
	repo.addService(cat.ID, "Curtain Wash", "25.00", true)
	repo.addService(cat.ID, "Old Suit Service", "30.00", false)

	services, err := svc.ListServices(context.Background(), "suit")
	if err != nil {
		t.Fatalf("list services: %v", err)
	}
	if len(services) != 1 || services[0].Name != "Suit Dry Clean" {
		t.Fatalf("unexpected search result %+v", services)
	}
}
