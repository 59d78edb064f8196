package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"astrokart/middleware"
	"astrokart/models"
	"astrokart/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memCatalog struct {
	products map[primitive.ObjectID]*models.Product
}

func (m *memCatalog) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memCatalog) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	p, ok := m.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (m *memCatalog) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	if p, ok := m.products[id]; ok {
		p.Stock += qty
	}
	return nil
}

type memOrders struct {
	orders map[primitive.ObjectID]*models.Order
}

func (m *memOrders) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	order.ID = primitive.NewObjectID()
	m.orders[order.ID] = order
	return order.ID, nil
}

func (m *memOrders) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	// The store contract returns newest first.
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memOrders) FindByIDAndUser(_ context.Context, id, userID primitive.ObjectID) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, at time.Time) error {
	m.orders[id].Status = status
	m.orders[id].UpdatedAt = at
	return nil
}

type orderTestEnv struct {
	router  *gin.Engine
	catalog *memCatalog
	orders  *memOrders
	user    primitive.ObjectID
}

// asUser fakes the auth middleware, handlers read the same context keys.
func asUser(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID.Hex())
		c.Set(middleware.CtxUserEmail, "buyer@example.com")
		c.Set(middleware.CtxUserRole, models.RoleUser)
	}
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &memCatalog{products: map[primitive.ObjectID]*models.Product{}}
	orders := &memOrders{orders: map[primitive.ObjectID]*models.Order{}}
	svc := services.NewOrderService(catalog, orders, false, zerolog.Nop())
	ctl := NewOrderController(svc, zerolog.Nop())

	user := primitive.NewObjectID()
	r := gin.New()
	r.POST("/api/orders", asUser(user), ctl.Create)
	r.GET("/api/orders", asUser(user), ctl.List)
	r.GET("/api/orders/:id", asUser(user), ctl.Get)
	r.PUT("/api/orders/:id/cancel", asUser(user), ctl.Cancel)

	return &orderTestEnv{router: r, catalog: catalog, orders: orders, user: user}
}

func (env *orderTestEnv) seedProduct(price, originalPrice float64, stock int) primitive.ObjectID {
	id := primitive.NewObjectID()
	env.catalog.products[id] = &models.Product{
		ID:            id,
		Name:          "Oversized Tee",
		Price:         price,
		OriginalPrice: originalPrice,
		Stock:         stock,
	}
	return id
}

func (env *orderTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	env := newOrderTestEnv(t)
	p1 := env.seedProduct(100, 150, 10)

	w := env.do(t, http.MethodPost, "/api/orders", gin.H{
		"items":           gin.H{p1.Hex(): 2},
		"shippingAddress": "42 Test Lane",
		"paymentMethod":   "cod",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success     bool   `json:"success"`
		OrderID     string `json:"orderId"`
		OrderNumber string `json:"orderNumber"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Regexp(t, `^AK\d{8}$`, resp.OrderNumber)
	require.NotEmpty(t, resp.OrderID)
	require.Equal(t, 8, env.catalog.products[p1].Stock)
}

func TestCreateOrderEndpointEmptyCart(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/orders", gin.H{
		"items":           gin.H{},
		"shippingAddress": "42 Test Lane",
		"paymentMethod":   "cod",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"success":false`)
	require.Empty(t, env.orders.orders)
}

func TestCreateOrderEndpointMissingFields(t *testing.T) {
	env := newOrderTestEnv(t)
	p1 := env.seedProduct(100, 0, 10)

	w := env.do(t, http.MethodPost, "/api/orders", gin.H{
		"items": gin.H{p1.Hex(): 1},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, 10, env.catalog.products[p1].Stock)
}

func TestCreateOrderEndpointOutOfStock(t *testing.T) {
	env := newOrderTestEnv(t)
	p1 := env.seedProduct(100, 0, 1)

	w := env.do(t, http.MethodPost, "/api/orders", gin.H{
		"items":           gin.H{p1.Hex(): 5},
		"shippingAddress": "42 Test Lane",
		"paymentMethod":   "cod",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, 1, env.catalog.products[p1].Stock)
	require.Empty(t, env.orders.orders)
}

func TestGetOrderEndpoint(t *testing.T) {
	env := newOrderTestEnv(t)
	orderID := primitive.NewObjectID()
	env.orders.orders[orderID] = &models.Order{
		ID:          orderID,
		UserID:      env.user,
		Status:      models.StatusPending,
		OrderNumber: "AK12345678",
	}

	w := env.do(t, http.MethodGet, "/api/orders/"+orderID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "AK12345678")
}

func TestGetOrderEndpointNotOwned(t *testing.T) {
	env := newOrderTestEnv(t)
	orderID := primitive.NewObjectID()
	env.orders.orders[orderID] = &models.Order{
		ID:     orderID,
		UserID: primitive.NewObjectID(),
		Status: models.StatusPending,
	}

	// Not owned reads as not found, not forbidden.
	w := env.do(t, http.MethodGet, "/api/orders/"+orderID.Hex(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderEndpointMalformedID(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/orders/not-hex", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOrderEndpoint(t *testing.T) {
	env := newOrderTestEnv(t)
	p1 := env.seedProduct(100, 0, 8)
	orderID := primitive.NewObjectID()
	env.orders.orders[orderID] = &models.Order{
		ID:     orderID,
		UserID: env.user,
		Status: models.StatusPending,
		Items:  []models.OrderItem{{ProductID: p1, Quantity: 2}},
	}

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%s/cancel", orderID.Hex()), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.StatusCancelled, env.orders.orders[orderID].Status)
	require.Equal(t, 10, env.catalog.products[p1].Stock)
}

func TestCancelOrderEndpointWrongStatus(t *testing.T) {
	env := newOrderTestEnv(t)
	orderID := primitive.NewObjectID()
	env.orders.orders[orderID] = &models.Order{
		ID:     orderID,
		UserID: env.user,
		Status: models.StatusDelivered,
	}

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/orders/%s/cancel", orderID.Hex()), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, models.StatusDelivered, env.orders.orders[orderID].Status)
}

func TestListOrdersEndpoint(t *testing.T) {
	env := newOrderTestEnv(t)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		id := primitive.NewObjectID()
		env.orders.orders[id] = &models.Order{
			ID:        id,
			UserID:    env.user,
			Status:    models.StatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}

	w := env.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Orders  []models.Order `json:"orders"`
		Total   int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 2, resp.Total)
	require.Len(t, resp.Orders, 2)
	require.True(t, resp.Orders[0].CreatedAt.After(resp.Orders[1].CreatedAt))
}
