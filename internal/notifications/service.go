package notifications

import (
	"context"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/pagination"
)

// Service defines notification list/read operations.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	Notify(ctx context.Context, params NotifyParams) error
}

// ListParams configures pagination for notifications.
type ListParams struct {
	UserID     int64
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []models.Notification `json:"items"`
	Cursor string                `json:"cursor"`
}

// NotifyParams creates a notification. A nil UserID broadcasts.
type NotifyParams struct {
	UserID  *int64
	Type    enums.NotificationType
	Title   string
	Message string
	OrderID *int64
}

type service struct {
	repo Repository
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	query := listParams{
		UserID:     params.UserID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID int64) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	count, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

func (s *service) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread")
	}
	return count, nil
}

func (s *service) Notify(ctx context.Context, params NotifyParams) error {
	if params.Title == "" || params.Message == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title and message are required")
	}
	kind := params.Type
	if kind == "" {
		kind = enums.NotificationTypeGeneral
	}
	if !kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}

	notification := &models.Notification{
		UserID:   params.UserID,
		Type:     kind,
		Title:    params.Title,
		Message:  params.Message,
		OrderID:  params.OrderID,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return nil
}
