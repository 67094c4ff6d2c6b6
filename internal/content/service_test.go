package content

import (
	"context"
	"sort"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

type fakeRepo struct {
	faqs     []models.FAQ
	configs  map[string]*models.SiteConfiguration
	banners  []models.Banner
	messages map[int64]*models.ContactMessage
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		configs:  map[string]*models.SiteConfiguration{},
		messages: map[int64]*models.ContactMessage{},
		nextID:   1,
	}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) ListFAQs(ctx context.Context, category string) ([]models.FAQ, error) {
	var out []models.FAQ
	for _, faq := range f.faqs {
		if !faq.IsActive {
			continue
		}
		if category != "" && faq.Category != category {
			continue
		}
		out = append(out, faq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *fakeRepo) ListFAQCategories(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, faq := range f.faqs {
		if faq.IsActive && faq.Category != "" && !seen[faq.Category] {
			seen[faq.Category] = true
			out = append(out, faq.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRepo) ListConfigurations(ctx context.Context) ([]models.SiteConfiguration, error) {
	var out []models.SiteConfiguration
	for _, config := range f.configs {
		if config.IsActive {
			out = append(out, *config)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetConfiguration(ctx context.Context, key string) (*models.SiteConfiguration, error) {
	if config, ok := f.configs[key]; ok && config.IsActive {
		copied := *config
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) ListBanners(ctx context.Context) ([]models.Banner, error) {
	var out []models.Banner
	for _, banner := range f.banners {
		if banner.IsActive {
			out = append(out, banner)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = f.nextID
	f.nextID++
	copied := *msg
	f.messages[msg.ID] = &copied
	return nil
}

func (f *fakeRepo) ListContactMessages(ctx context.Context, status enums.ContactStatus) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	for _, msg := range f.messages {
		if status != "" && msg.Status != status {
			continue
		}
		out = append(out, *msg)
	}
	return out, nil
}

func (f *fakeRepo) UpdateContactStatus(ctx context.Context, id int64, status enums.ContactStatus) (int64, error) {
	if msg, ok := f.messages[id]; ok {
		msg.Status = status
		return 1, nil
	}
	return 0, nil
}

func newTestService(t *testing.T, repo *fakeRepo) *service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func TestListFAQsFiltersAndOrders(t *testing.T) {
	repo := newFakeRepo()
	repo.faqs = []models.FAQ{
		{ID: 1, Question: "How fast?", Category: "delivery", DisplayOrder: 2, IsActive: true},
		{ID: 2, Question: "How much?", Category: "pricing", DisplayOrder: 1, IsActive: true},
		{ID: 3, Question: "Old question", Category: "pricing", DisplayOrder: 0, IsActive: false},
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	faqs, err := svc.ListFAQs(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(faqs) != 2 || faqs[0].ID != 2 {
		t.Fatalf("unexpected faqs %+v", faqs)
	}

	pricing, err := svc.ListFAQs(ctx, "pricing")
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(pricing) != 1 || pricing[0].ID != 2 {
		t.Fatalf("unexpected filtered faqs %+v", pricing)
	}

	categories, err := svc.ListFAQCategories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "delivery" || categories[1] != "pricing" {
		t.Fatalf("unexpected categories %v", categories)
	}
}

func TestGetConfiguration(t *testing.T) {
	repo := newFakeRepo()
	repo.configs["support_phone"] = &models.SiteConfiguration{ID: 1, Key: "support_phone", Value: "+91-9876543210", IsActive: true}
	repo.configs["legacy_flag"] = &models.SiteConfiguration{ID: 2, Key: "legacy_flag", Value: "off", IsActive: false}
	svc := newTestService(t, repo)
	ctx := context.Background()

	config, err := svc.GetConfiguration(ctx, "support_phone")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if config.Value != "+91-9876543210" {
		t.Fatalf("unexpected value %q", config.Value)
	}

	if _, err := svc.GetConfiguration(ctx, "legacy_flag"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive key, got %v", err)
	}
	if _, err := svc.GetConfiguration(ctx, "  "); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for blank key, got %v", err)
	}
}

func TestListLiveBannersRespectsWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	repo := newFakeRepo()
	repo.banners = []models.Banner{
		{ID: 1, Title: "Always on", IsActive: true},
		{ID: 2, Title: "Running", IsActive: true, StartsAt: &past, EndsAt: &future},
		{ID: 3, Title: "Not yet", IsActive: true, StartsAt: &future},
		{ID: 4, Title: "Expired", IsActive: true, EndsAt: &past},
		{ID: 5, Title: "Disabled", IsActive: false},
	}
	svc := newTestService(t, repo)
	svc.now = func() time.Time { return now }

	banners, err := svc.ListLiveBanners(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(banners) != 2 || banners[0].ID != 1 || banners[1].ID != 2 {
		t.Fatalf("unexpected banners %+v", banners)
	}
}

func TestSubmitContact(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	msg, err := svc.SubmitContact(ctx, ContactParams{
		Name:    "  Asha  ",
		Email:   "asha@example.com",
		Subject: "Pickup delay",
		Message: "My pickup is late.",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg.Name != "Asha" || msg.Status != enums.ContactStatusNew {
		t.Fatalf("unexpected message %+v", msg)
	}

	if _, err := svc.SubmitContact(ctx, ContactParams{Name: "Asha"}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for incomplete form, got %v", err)
	}
}

func TestContactTriage(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	msg, err := svc.SubmitContact(ctx, ContactParams{Name: "Asha", Email: "a@example.com", Subject: "Hi", Message: "Hello"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.UpdateContactStatus(ctx, msg.ID, "read"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.messages[msg.ID].Status != enums.ContactStatusRead {
		t.Fatalf("status = %s, want read", repo.messages[msg.ID].Status)
	}

	if err := svc.UpdateContactStatus(ctx, msg.ID, "bogus"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}
	if err := svc.UpdateContactStatus(ctx, 999, "closed"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown message, got %v", err)
	}

	read, err := svc.ListContactMessages(ctx, "read")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(read) != 1 {
		t.Fatalf("read messages = %d, want 1", len(read))
	}
}
