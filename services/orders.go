package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/utils"
)

const DefaultPaymentMethod = "cash"

type CartLine struct {
	MenuItemID string `json:"menuItemId" binding:"required"`
	Quantity   int    `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

type CheckoutRequest struct {
	Items         []CartLine `json:"items"`
	TableID       string     `json:"tableId,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
	OrderType     string     `json:"orderType,omitempty"`
}

type SubmitResult struct {
	Order  models.Order `json:"order"`
	Queued bool         `json:"queued"`
}

// OrderService is the commit path: it decides between the ledger and the
// offline queue, and applies a commit's side effects.
type OrderService struct {
	ledger       *LedgerStore
	queue        *OfflineQueue
	inventory    *InventoryLedger
	tables       *TableRegistry
	menu         *MenuService
	connectivity *Connectivity
	bus          *kds.Bus

	commitLatency time.Duration
	taxRate       float64
}

// Checkout prices the cart from the menu and submits the resulting order.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (SubmitResult, error) {
	order, err := s.BuildOrder(ctx, req)
	if err != nil {
		return SubmitResult{}, err
	}
	return s.Submit(ctx, order)
}

// BuildOrder snapshots each cart line from the menu, overrides included.
// The total is computed here once and never recomputed.
func (s *OrderService) BuildOrder(ctx context.Context, req CheckoutRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	items := make([]models.LineItem, 0, len(req.Items))
	subtotal := 0.0
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return models.Order{}, fmt.Errorf("menu item %q: %w", line.MenuItemID, ErrInvalidQuantity)
		}
		item, err := s.menu.Lookup(ctx, line.MenuItemID)
		if err != nil {
			return models.Order{}, err
		}
		if !item.Available {
			return models.Order{}, fmt.Errorf("menu item %q: %w", item.Name, ErrItemUnavailable)
		}
		li := models.LineItem{
			CartID:      uuid.NewString(),
			ID:          item.ID,
			Category:    item.Category,
			Name:        item.Name,
			Price:       item.Price,
			Description: item.Description,
			Image:       item.Image,
			Available:   item.Available,
			Recipe:      item.Recipe,
			Quantity:    line.Quantity,
			Notes:       strings.TrimSpace(line.Notes),
		}
		subtotal += li.Subtotal()
		items = append(items, li)
	}

	order := models.Order{
		Items:         items,
		Total:         utils.RoundCents(subtotal * (1 + s.taxRate)),
		PaymentMethod: req.PaymentMethod,
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		OrderType:     req.OrderType,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = DefaultPaymentMethod
	}
	if order.OrderType == "" && order.SeatsAtTable() {
		order.OrderType = models.OrderTypeDineIn
	}
	return order, nil
}

// Submit commits the order when online and queues it otherwise. Missing id,
// created_at and status are filled in. Once called it runs to completion even
// if ctx is cancelled.
func (s *OrderService) Submit(ctx context.Context, order models.Order) (SubmitResult, error) {
	ctx = context.WithoutCancel(ctx)

	if len(order.Items) == 0 {
		return SubmitResult{}, ErrEmptyOrder
	}
	for _, li := range order.Items {
		if li.Quantity < 1 {
			return SubmitResult{}, fmt.Errorf("line %q: %w", li.Name, ErrInvalidQuantity)
		}
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if !models.ValidOrderStatus(order.Status) {
		return SubmitResult{}, fmt.Errorf("order status %q: %w", order.Status, ErrInvalidStatus)
	}
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}

	if !s.connectivity.Online() {
		if err := s.queue.Enqueue(ctx, order); err != nil {
			return SubmitResult{}, fmt.Errorf("queue order %s: %w", order.ID, err)
		}
		return SubmitResult{Order: order, Queued: true}, nil
	}

	pause(s.commitLatency)

	topics, err := s.commit(ctx, order)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"error":    err,
		}).Error("Order commit failed")
		return SubmitResult{}, err
	}
	s.bus.Publish(ctx, topics...)

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total,
		"table_id": order.TableID,
	}).Info("Order committed")
	return SubmitResult{Order: order}, nil
}

// commit writes the ledger entry and then its side effects, in that order,
// without notifying. The order counts as committed once the ledger write
// lands; later failures leave partial state behind and are only logged.
// It returns the topics whose collections changed.
func (s *OrderService) commit(ctx context.Context, order models.Order) ([]string, error) {
	if err := s.ledger.append(ctx, order); err != nil {
		return nil, err
	}
	topics := []string{kds.TopicLedgerChanged}

	changed, err := s.inventory.deduct(ctx, order)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"error":    err,
		}).Error("Inventory deduction failed after commit")
	} else if changed {
		topics = append(topics, kds.TopicInventoryChanged)
	}

	if order.SeatsAtTable() {
		occupied, err := s.tables.occupy(ctx, order.TableID, order.ID)
		if err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"table_id": order.TableID,
				"error":    err,
			}).Error("Table update failed after commit")
		} else if occupied {
			topics = append(topics, kds.TopicLayoutChanged)
		}
	}
	return topics, nil
}
