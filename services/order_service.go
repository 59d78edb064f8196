package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"astrokart/models"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GST rate applied to the order subtotal. Fixed, not configurable.
const gstRate = 0.18

// CatalogStore is the product collection as the order workflow sees it:
// batch lookup plus atomic stock adjustment. DecrementStock is
// conditional on sufficient stock and reports false when the predicate
// fails, so two concurrent checkouts cannot drive stock negative.
type CatalogStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

// OrderStore persists the order ledger. FindByIDAndUser returns
// (nil, nil) when no order matches both the id and the owner.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, at time.Time) error
}

// Identity is the decoded bearer credential. The service trusts it as
// delivered by the auth middleware.
type Identity struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

type PlaceOrderRequest struct {
	Items           map[string]any
	ShippingAddress string
	PaymentMethod   string
}

type PlaceOrderResult struct {
	OrderID     primitive.ObjectID
	OrderNumber string
}

type OrderService struct {
	catalog CatalogStore
	orders  OrderStore
	strict  bool
	logger  zerolog.Logger
	now     func() time.Time
}

// NewOrderService wires the order workflow. strict controls how unknown
// product ids in a submitted cart are treated: rejected (strict) or
// silently dropped (lenient, the historical behavior).
func NewOrderService(catalog CatalogStore, orders OrderStore, strict bool, logger zerolog.Logger) *OrderService {
	return &OrderService{
		catalog: catalog,
		orders:  orders,
		strict:  strict,
		logger:  logger,
		now:     time.Now,
	}
}

// PlaceOrder validates the submitted cart against the catalog, computes
// totals, decrements stock and persists the order. Stock is adjusted
// before the insert so an oversold cart fails without leaving an order
// behind; decrements already applied are compensated on any failure.
func (s *OrderService) PlaceOrder(ctx context.Context, identity Identity, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if req.ShippingAddress == "" || req.PaymentMethod == "" {
		return nil, validationError("Missing required fields")
	}

	lines, err := parseCart(req.Items)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(lines))
	byID := make(map[primitive.ObjectID]cartLine, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
		byID[line.ProductID] = line
	}

	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	if s.strict && len(products) != len(lines) {
		resolved := make(map[primitive.ObjectID]bool, len(products))
		for _, p := range products {
			resolved[p.ID] = true
		}
		for _, line := range lines {
			if !resolved[line.ProductID] {
				return nil, validationError("Unknown product: %s", line.ProductID.Hex())
			}
		}
	}
	if len(products) == 0 {
		return nil, validationError("No valid products in cart")
	}

	var (
		items         []models.OrderItem
		orderTotal    float64
		totalDiscount float64
	)
	for _, product := range products {
		line := byID[product.ID]
		itemTotal := product.Price * float64(line.Quantity)
		var discount float64
		if product.OriginalPrice > product.Price {
			discount = (product.OriginalPrice - product.Price) * float64(line.Quantity)
		}

		items = append(items, models.OrderItem{
			ProductID:     product.ID,
			Name:          product.Name,
			Price:         product.Price,
			OriginalPrice: product.OriginalPrice,
			Quantity:      line.Quantity,
			ItemTotal:     itemTotal,
			Discount:      discount,
			Image:         product.FirstImage(),
			Size:          line.Size,
		})
		orderTotal += itemTotal
		totalDiscount += discount
	}

	gstAmount := orderTotal * gstRate
	finalTotal := orderTotal + gstAmount

	// Adjust stock first; a cart that cannot be covered must not leave
	// an order behind.
	var decremented []models.OrderItem
	for _, item := range items {
		ok, err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.restoreStock(ctx, decremented)
			return nil, fmt.Errorf("decrement stock for %s: %w", item.ProductID.Hex(), err)
		}
		if !ok {
			s.restoreStock(ctx, decremented)
			return nil, outOfStockError("Insufficient stock for %s", item.Name)
		}
		decremented = append(decremented, item)
	}

	now := s.now()
	order := &models.Order{
		UserID:          identity.ID,
		UserEmail:       identity.Email,
		Items:           items,
		OrderTotal:      orderTotal,
		Discount:        totalDiscount,
		GSTAmount:       gstAmount,
		FinalTotal:      finalTotal,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
		OrderNumber:     newOrderNumber(now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	orderID, err := s.orders.Insert(ctx, order)
	if err != nil {
		s.restoreStock(ctx, decremented)
		return nil, fmt.Errorf("insert order: %w", err)
	}

	s.logger.Info().
		Str("orderId", orderID.Hex()).
		Str("orderNumber", order.OrderNumber).
		Float64("finalTotal", finalTotal).
		Msg("order placed")

	return &PlaceOrderResult{OrderID: orderID, OrderNumber: order.OrderNumber}, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, identity Identity) ([]models.Order, error) {
	orders, err := s.orders.FindByUser(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns an order only when it exists and the caller owns it.
// An ownership mismatch reports the same not-found as a missing order.
func (s *OrderService) GetOrder(ctx context.Context, identity Identity, orderID primitive.ObjectID) (*models.Order, error) {
	order, err := s.orders.FindByIDAndUser(ctx, orderID, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, notFoundError("Order not found")
	}
	return order, nil
}

// CancelOrder cancels a pending or confirmed order and restores the
// stock each line item consumed.
func (s *OrderService) CancelOrder(ctx context.Context, identity Identity, orderID primitive.ObjectID) error {
	order, err := s.orders.FindByIDAndUser(ctx, orderID, identity.ID)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	if order == nil {
		return notFoundError("Order not found")
	}
	if !order.Status.CanBeCancelled() {
		return invalidStateError("Order cannot be cancelled at this stage")
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, models.StatusCancelled, s.now()); err != nil {
		return fmt.Errorf("cancel order %s: %w", order.ID.Hex(), err)
	}
	s.restoreStock(ctx, order.Items)

	s.logger.Info().
		Str("orderId", order.ID.Hex()).
		Str("orderNumber", order.OrderNumber).
		Msg("order cancelled")
	return nil
}

func (s *OrderService) restoreStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		if err := s.catalog.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().Err(err).
				Str("productId", item.ProductID.Hex()).
				Int("quantity", item.Quantity).
				Msg("failed to restore stock")
		}
	}
}

// newOrderNumber builds the human-facing order number: "AK" plus the
// last 8 digits of the unix millisecond timestamp. Two orders in the
// same millisecond collide; accepted, the ledger key is the _id.
func newOrderNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "AK" + ms
}
