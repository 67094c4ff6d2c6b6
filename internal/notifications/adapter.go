package notifications

import (
	"context"

	"github.com/smartlaundry/backend/pkg/enums"
)

// OrderNotifier adapts the notifications service to the order lifecycle's
// notifier dependency.
type OrderNotifier struct {
	Service Service
}

func (n OrderNotifier) NotifyOrder(ctx context.Context, userID, orderID int64, title, message string, kind enums.NotificationType) error {
	return n.Service.Notify(ctx, NotifyParams{
		UserID:  &userID,
		Type:    kind,
		Title:   title,
		Message: message,
		OrderID: &orderID,
	})
}
