package payments

import (
	"context"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

// OrderPaymentRecorder adapts the payments repository to the order
// placement flow. Cash-on-delivery orders get a pending record at placement;
// online and wallet rows are created by the gateway attempt itself.
type OrderPaymentRecorder struct {
	Repo Repository
}

func (a OrderPaymentRecorder) RecordOrderPayment(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if order.PaymentMethod != enums.PaymentMethodCOD {
		return nil
	}
	return a.Repo.WithTx(tx).Create(ctx, &models.Payment{
		OrderID: order.ID,
		UserID:  order.UserID,
		Amount:  order.TotalAmount,
		Gateway: enums.PaymentGatewayCOD,
		Status:  enums.PaymentRecordStatusPending,
	})
}
