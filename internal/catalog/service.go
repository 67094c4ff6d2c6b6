package catalog

import (
	"context"
	"strings"

	"github.com/smartlaundry/backend/pkg/db"
	"github.com/smartlaundry/backend/pkg/db/models"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

// Service exposes the public catalog surface.
type Service interface {
	ListCategories(ctx context.Context) ([]models.ServiceCategory, error)
	GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error)
	ListCategoryServices(ctx context.Context, categoryID int64) ([]models.Service, error)

	ListServices(ctx context.Context, search string) ([]models.Service, error)
	GetServiceDetail(ctx context.Context, id int64) (*ServiceDetail, error)
	ListOptions(ctx context.Context, serviceID int64) ([]models.ServiceOption, error)

	ListReviews(ctx context.Context, serviceID int64) ([]models.ServiceReview, error)
	CreateReview(ctx context.Context, params CreateReviewParams) (*models.ServiceReview, error)
}

// ServiceDetail embeds the service row with its options and approved reviews.
type ServiceDetail struct {
	models.Service
	Reviews []models.ServiceReview `json:"reviews"`
}

// CreateReviewParams captures a review submission.
type CreateReviewParams struct {
	ServiceID int64
	UserID    int64
	Rating    int
	Comment   string
}

type service struct {
	repo Repository
}

// NewService wires catalog dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	categories, err := s.repo.ListCategories(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get category")
	}
	if category == nil || !category.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return category, nil
}

func (s *service) ListCategoryServices(ctx context.Context, categoryID int64) ([]models.Service, error) {
	if _, err := s.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	services, err := s.repo.ListServices(ctx, ServiceFilter{CategoryID: categoryID, ActiveOnly: true})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list category services")
	}
	return services, nil
}

func (s *service) ListServices(ctx context.Context, search string) ([]models.Service, error) {
	services, err := s.repo.ListServices(ctx, ServiceFilter{ActiveOnly: true, Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return services, nil
}

func (s *service) GetServiceDetail(ctx context.Context, id int64) (*ServiceDetail, error) {
	svc, err := s.repo.GetServiceWithDetails(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get service")
	}
	if svc == nil || !svc.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}

	reviews, err := s.repo.ListApprovedReviews(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return &ServiceDetail{Service: *svc, Reviews: reviews}, nil
}

func (s *service) ListOptions(ctx context.Context, serviceID int64) ([]models.ServiceOption, error) {
	options, err := s.repo.ListOptions(ctx, serviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list options")
	}
	return options, nil
}

func (s *service) ListReviews(ctx context.Context, serviceID int64) ([]models.ServiceReview, error) {
	svc, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get service")
	}
	if svc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	reviews, err := s.repo.ListApprovedReviews(ctx, serviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}

func (s *service) CreateReview(ctx context.Context, params CreateReviewParams) (*models.ServiceReview, error) {
	if params.Rating < 1 || params.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if params.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	svc, err := s.repo.GetService(ctx, params.ServiceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get service")
	}
	if svc == nil || !svc.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}

	exists, err := s.repo.HasUserReview(ctx, params.ServiceID, params.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing review")
	}
	if exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this service")
	}

	review := &models.ServiceReview{
		ServiceID: params.ServiceID,
		UserID:    params.UserID,
		Rating:    params.Rating,
		Comment:   strings.TrimSpace(params.Comment),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this service")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return review, nil
}
