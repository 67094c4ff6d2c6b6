package notifications

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/pagination"
)

type fakeRepo struct {
	rows   []*models.Notification
	nextID int64
}

func newFakeRepo() *fakeRepo { return &fakeRepo{nextID: 1} }

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = f.nextID
	f.nextID++
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	copied := *notification
	f.rows = append(f.rows, &copied)
	return nil
}

func (f *fakeRepo) visible(userID int64, row *models.Notification) bool {
	if !row.IsActive {
		return false
	}
	return row.UserID == nil || *row.UserID == userID
}

func (f *fakeRepo) List(ctx context.Context, params listParams) ([]models.Notification, *pagination.Cursor, error) {
	var out []models.Notification
	for i := len(f.rows) - 1; i >= 0; i-- {
		row := f.rows[i]
		if !f.visible(params.UserID, row) {
			continue
		}
		if params.UnreadOnly && row.IsRead {
			continue
		}
		out = append(out, *row)
	}
	return out, nil, nil
}

func (f *fakeRepo) MarkRead(ctx context.Context, userID, notificationID int64) (markResult, error) {
	for _, row := range f.rows {
		if row.ID != notificationID || row.UserID == nil || *row.UserID != userID {
			continue
		}
		if row.IsRead {
			return markResult{Found: true}, nil
		}
		row.IsRead = true
		return markResult{Found: true, Updated: true}, nil
	}
	return markResult{}, nil
}

func (f *fakeRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	var updated int64
	for _, row := range f.rows {
		if row.UserID != nil && *row.UserID == userID && !row.IsRead {
			row.IsRead = true
			updated++
		}
	}
	return updated, nil
}

func (f *fakeRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.UserID != nil && *row.UserID == userID && !row.IsRead && row.IsActive {
			count++
		}
	}
	return count, nil
}

func ptr(v int64) *int64 { return &v }

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestListIncludesBroadcasts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Notify(ctx, NotifyParams{UserID: ptr(1), Title: "Order update", Message: "Your order shipped", Type: enums.NotificationTypeOrder}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := svc.Notify(ctx, NotifyParams{Title: "Holiday hours", Message: "Closed on Sunday", Type: enums.NotificationTypeSystem}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if err := svc.Notify(ctx, NotifyParams{UserID: ptr(2), Title: "Other", Message: "Not yours"}); err != nil {
		t.Fatalf("notify other: %v", err)
	}

	result, err := svc.List(ctx, ListParams{UserID: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected own + broadcast, got %d items", len(result.Items))
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	if err := svc.Notify(ctx, NotifyParams{UserID: ptr(1), Title: "t", Message: "m"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	id := repo.rows[0].ID

	if err := svc.MarkRead(ctx, 2, id); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign notification, got %v", err)
	}
	if err := svc.MarkRead(ctx, 1, id); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !repo.rows[0].IsRead {
		t.Fatal("row not marked read")
	}
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Notify(ctx, NotifyParams{UserID: ptr(1), Title: "t", Message: "m"}); err != nil {
			t.Fatalf("notify: %v", err)
		}
	}

	count, err := svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 3 {
		t.Fatalf("unread = %d, want 3", count)
	}

	updated, err := svc.MarkAllRead(ctx, 1)
	if err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if updated != 3 {
		t.Fatalf("updated = %d, want 3", updated)
	}

	count, err = svc.UnreadCount(ctx, 1)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Fatalf("unread = %d, want 0", count)
	}
}

func TestNotifyValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.Notify(ctx, NotifyParams{Title: "", Message: "m"}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Notify(ctx, NotifyParams{Title: "t", Message: "m", Type: enums.NotificationType("bogus")}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}
}
