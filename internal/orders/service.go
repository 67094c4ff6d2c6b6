package orders

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartlaundry/backend/internal/pricing"
	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/pagination"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order placement, listing and lifecycle operations.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Order, error)
	Get(ctx context.Context, userID, orderID int64, isAdmin bool) (*models.Order, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Tracking(ctx context.Context, userID, orderID int64, isAdmin bool) ([]models.OrderTracking, error)
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID int64) (*models.Order, error)
	Dashboard(ctx context.Context, userID int64) (*Dashboard, error)
}

type service struct {
	repo     Repository
	catalog  CatalogReader
	cart     CartCounter
	notifier Notifier
	payments PaymentRecorder
	tx       TxRunner
	cfg      *config.Config
	logg     *logger.Logger
}

// NewService wires order dependencies. The notifier, payment recorder and
// logger may be nil.
func NewService(repo Repository, catalog CatalogReader, cart CartCounter, notifier Notifier, payments PaymentRecorder, tx TxRunner, cfg *config.Config, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog reader required")
	}
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart counter required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tx runner required")
	}
	if cfg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "config required")
	}
	return &service{repo: repo, catalog: catalog, cart: cart, notifier: notifier, payments: payments, tx: tx, cfg: cfg, logg: logg}, nil
}

// newOrderNumber produces an "ORD-" number with 8 uppercase hex characters.
func newOrderNumber() string {
	id := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

func (s *service) Create(ctx context.Context, params CreateParams) (*models.Order, error) {
	if params.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if len(params.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if !params.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if strings.TrimSpace(params.PickupAddress) == "" || strings.TrimSpace(params.DeliveryAddress) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup and delivery addresses are required")
	}

	// Resolve every line against the catalog up front so a single bad id
	// fails the whole request before anything is written.
	items := make([]models.OrderItem, 0, len(params.Items))
	lines := make([]pricing.Line, 0, len(params.Items))
	for _, item := range params.Items {
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}

		svc, err := s.catalog.GetService(ctx, item.ServiceID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get service")
		}
		if svc == nil || !svc.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("service %d not found", item.ServiceID))
		}

		unitPrice := svc.Price
		optionName := ""
		if item.OptionID != nil {
			option, err := s.catalog.GetOption(ctx, *item.OptionID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get option")
			}
			if option == nil || !option.IsActive {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("service option %d not found", *item.OptionID))
			}
			if option.ServiceID != item.ServiceID {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "option does not belong to service")
			}
			unitPrice = option.Price
			optionName = option.Name
		}

		line := pricing.Line{UnitPrice: unitPrice, Quantity: item.Quantity}
		lines = append(lines, line)
		items = append(items, models.OrderItem{
			ServiceID:   item.ServiceID,
			OptionID:    item.OptionID,
			ServiceName: svc.Name,
			OptionName:  optionName,
			UnitPrice:   unitPrice,
			Quantity:    item.Quantity,
			LineTotal:   line.Total(),
		})
	}

	breakdown := pricing.Compute(lines, s.cfg.Pricing.TaxRateDecimal(), s.cfg.Pricing.DeliveryChargeDecimal())

	order := &models.Order{
		OrderNumber:         newOrderNumber(),
		UserID:              params.UserID,
		Status:              enums.OrderStatusPending,
		Subtotal:            breakdown.Subtotal,
		TaxAmount:           breakdown.TaxAmount,
		DeliveryCharge:      breakdown.DeliveryCharge,
		Discount:            breakdown.Discount,
		TotalAmount:         breakdown.TotalAmount,
		PaymentStatus:       enums.PaymentStatusPending,
		PaymentMethod:       params.PaymentMethod,
		PickupAddress:       strings.TrimSpace(params.PickupAddress),
		DeliveryAddress:     strings.TrimSpace(params.DeliveryAddress),
		PickupDate:          params.PickupDate,
		PickupTimeSlot:      params.PickupTimeSlot,
		DeliveryDate:        params.DeliveryDate,
		DeliveryTimeSlot:    params.DeliveryTimeSlot,
		SpecialInstructions: strings.TrimSpace(params.SpecialInstructions),
		Notes:               strings.TrimSpace(params.Notes),
		Items:               items,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := repo.AddTracking(ctx, &models.OrderTracking{
			OrderID:     order.ID,
			Status:      enums.OrderStatusPending,
			Description: "Order placed successfully",
		}); err != nil {
			return err
		}
		if s.payments != nil {
			if err := s.payments.RecordOrderPayment(ctx, tx, order); err != nil {
				return fmt.Errorf("record payment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order placed")
	}
	s.notify(ctx, order, "Order Placed", fmt.Sprintf("Order %s has been placed successfully.", order.OrderNumber))

	return s.Get(ctx, params.UserID, order.ID, false)
}

func (s *service) Get(ctx context.Context, userID, orderID int64, isAdmin bool) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get order")
	}
	if order == nil || (!isAdmin && order.UserID != userID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if !params.IsAdmin && params.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if params.Status != "" && !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	query := listOrdersParams{
		Status: params.Status,
		Limit:  params.Limit,
	}
	if !params.IsAdmin {
		query.UserID = params.UserID
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Tracking(ctx context.Context, userID, orderID int64, isAdmin bool) ([]models.OrderTracking, error) {
	if _, err := s.Get(ctx, userID, orderID, isAdmin); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListTracking(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tracking")
	}
	return entries, nil
}

func (s *service) UpdateStatus(ctx context.Context, params UpdateStatusParams) (*models.Order, error) {
	if !params.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	order, err := s.repo.GetByID(ctx, params.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get order")
	}
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order is already %s", order.Status))
	}

	description := strings.TrimSpace(params.Description)
	if description == "" {
		description = fmt.Sprintf("Status updated to %s", params.Status)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateStatus(ctx, order.ID, params.Status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return repo.AddTracking(ctx, &models.OrderTracking{
			OrderID:     order.ID,
			Status:      params.Status,
			Description: description,
			Location:    strings.TrimSpace(params.Location),
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	s.notify(ctx, order, "Order Update", fmt.Sprintf("Order %s is now %s.", order.OrderNumber, params.Status))

	return s.Get(ctx, order.UserID, order.ID, true)
}

func (s *service) Cancel(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	order, err := s.Get(ctx, userID, orderID, false)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanCancel() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return repo.AddTracking(ctx, &models.OrderTracking{
			OrderID:     order.ID,
			Status:      enums.OrderStatusCancelled,
			Description: "Order cancelled by customer",
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}

	s.notify(ctx, order, "Order Cancelled", fmt.Sprintf("Order %s has been cancelled.", order.OrderNumber))

	return s.Get(ctx, userID, order.ID, false)
}

func (s *service) Dashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	recent, err := s.repo.RecentByUser(ctx, userID, 5)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recent orders")
	}
	cartCount, err := s.cart.CountByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart count")
	}
	totalSpent, err := s.repo.TotalSpentByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "total spent")
	}

	dashboard := &Dashboard{
		RecentOrders:   make([]DashboardOrder, 0, len(recent)),
		CartItemsCount: cartCount,
		TotalSpent:     totalSpent,
	}
	for _, order := range recent {
		dashboard.RecentOrders = append(dashboard.RecentOrders, DashboardOrder{
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		})
	}
	return dashboard, nil
}

// notify is best effort; order flow never fails because a notification did.
func (s *service) notify(ctx context.Context, order *models.Order, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyOrder(ctx, order.UserID, order.ID, title, message, enums.NotificationTypeOrder); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order notification failed")
	}
}
