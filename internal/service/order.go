package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
)

// OrderService runs checkout and owns order retrieval rules.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an OrderService backed by db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CheckoutItem is one requested line of a checkout: a product and a quantity
type CheckoutItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Checkout validates stock line by line, freezes the unit price from the
// product's current discount price, decrements stock and persists the order
// with its items. Everything runs inside one transaction: a failure on any
// line rolls back every decrement made for earlier lines.
//
// The stock decrement is a conditional UPDATE guarded by the remaining
// count, so two concurrent checkouts racing for the last unit cannot both
// pass the check against a stale read; the loser fails with a StockError.
func (s *OrderService) Checkout(ctx context.Context, user *model.User, items []CheckoutItem, shippingAddress string) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var orderID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := 0.0
		lines := make([]model.OrderItem, 0, len(items))

		for _, item := range items {
			var product model.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", item.ProductID, ErrNotFound)
				}
				return storagef("product lookup", err)
			}

			if product.Stock < item.Quantity {
				return &StockError{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: item.Quantity,
					Available: product.Stock,
				}
			}

			// Guarded decrement: a concurrent checkout may have consumed
			// the stock between the read above and this update.
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", product.ID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return storagef("stock decrement", result.Error)
			}
			if result.RowsAffected == 0 {
				return &StockError{
					ProductID: product.ID,
					Name:      product.Name,
					Requested: item.Quantity,
					Available: product.Stock,
				}
			}

			total += product.DiscountPrice * float64(item.Quantity)
			lines = append(lines, model.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.DiscountPrice,
			})
		}

		order := model.Order{
			UserID:          user.ID,
			TotalAmount:     total,
			Status:          model.StatusPending,
			ShippingAddress: shippingAddress,
			Items:           lines,
		}
		if err := tx.Create(&order).Error; err != nil {
			return storagef("order create", err)
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.load(ctx, orderID)
}

// ListMine returns the caller's orders in insertion order
func (s *OrderService) ListMine(ctx context.Context, user *model.User, skip, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", user.ID).
		Order("id").Offset(skip).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, storagef("order list", err)
	}
	return orders, nil
}

// ListAll returns a page of all orders for admin review
func (s *OrderService) ListAll(ctx context.Context, skip, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Order("id").Offset(skip).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, storagef("order list", err)
	}
	return orders, nil
}

// Get fetches an order. Only the owner or an admin may view it.
func (s *OrderService) Get(ctx context.Context, user *model.User, orderID uint) (*model.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID && !user.IsAdmin {
		return nil, ErrForbidden
	}
	return order, nil
}

// AdminView fetches an order on behalf of an admin. A Pending order moves
// to Processing on first view; the transition is one-way and repeat views
// leave the status alone.
func (s *OrderService) AdminView(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == model.StatusPending {
		result := s.db.WithContext(ctx).Model(&model.Order{}).
			Where("id = ? AND status = ?", order.ID, model.StatusPending).
			Update("status", model.StatusProcessing)
		if result.Error != nil {
			return nil, storagef("order status update", result.Error)
		}
		order.Status = model.StatusProcessing
	}
	return order, nil
}

// load fetches an order with its items and product snapshots
func (s *OrderService) load(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	result := s.db.WithContext(ctx).Preload("Items.Product").First(&order, orderID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storagef("order lookup", result.Error)
	}
	return &order, nil
}
