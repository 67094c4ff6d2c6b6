// Package content serves the static site surface: FAQs, banners, public
// site configuration and the contact form.
package content

import (
	"context"
	"strings"
	"time"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

// ContactParams is the public contact-form payload.
type ContactParams struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// Service exposes the read-mostly content surface plus contact intake.
type Service interface {
	ListFAQs(ctx context.Context, category string) ([]models.FAQ, error)
	ListFAQCategories(ctx context.Context) ([]string, error)
	ListConfigurations(ctx context.Context) ([]models.SiteConfiguration, error)
	GetConfiguration(ctx context.Context, key string) (*models.SiteConfiguration, error)
	ListLiveBanners(ctx context.Context) ([]models.Banner, error)

	SubmitContact(ctx context.Context, params ContactParams) (*models.ContactMessage, error)
	ListContactMessages(ctx context.Context, status string) ([]models.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id int64, status string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires content dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "content repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListFAQs(ctx context.Context, category string) ([]models.FAQ, error) {
	faqs, err := s.repo.ListFAQs(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faqs")
	}
	return faqs, nil
}

func (s *service) ListFAQCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListFAQCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list faq categories")
	}
	return categories, nil
}

func (s *service) ListConfigurations(ctx context.Context) ([]models.SiteConfiguration, error) {
	configs, err := s.repo.ListConfigurations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list configurations")
	}
	return configs, nil
}

func (s *service) GetConfiguration(ctx context.Context, key string) (*models.SiteConfiguration, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "configuration key required")
	}
	config, err := s.repo.GetConfiguration(ctx, key)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get configuration")
	}
	if config == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "configuration not found")
	}
	return config, nil
}

// ListLiveBanners filters the active rows down to those inside their
// display window right now.
func (s *service) ListLiveBanners(ctx context.Context) ([]models.Banner, error) {
	banners, err := s.repo.ListBanners(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	now := s.now()
	live := make([]models.Banner, 0, len(banners))
	for _, banner := range banners {
		if banner.IsLive(now) {
			live = append(live, banner)
		}
	}
	return live, nil
}

func (s *service) SubmitContact(ctx context.Context, params ContactParams) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(params.Name),
		Email:   strings.TrimSpace(params.Email),
		Phone:   strings.TrimSpace(params.Phone),
		Subject: strings.TrimSpace(params.Subject),
		Message: strings.TrimSpace(params.Message),
		Status:  enums.ContactStatusNew,
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email, subject and message are required")
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact message")
	}
	return msg, nil
}

func (s *service) ListContactMessages(ctx context.Context, status string) ([]models.ContactMessage, error) {
	var filter enums.ContactStatus
	if status != "" {
		parsed, err := enums.ParseContactStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status filter")
		}
		filter = parsed
	}
	messages, err := s.repo.ListContactMessages(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact messages")
	}
	return messages, nil
}

func (s *service) UpdateContactStatus(ctx context.Context, id int64, status string) error {
	parsed, err := enums.ParseContactStatus(status)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "contact status")
	}
	updated, err := s.repo.UpdateContactStatus(ctx, id, parsed)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact status")
	}
	if updated == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact message not found")
	}
	return nil
}
