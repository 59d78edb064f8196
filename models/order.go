package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var validTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s OrderStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return validTransitions[s][next]
}

// CanBeCancelled reports whether a customer may still cancel the order.
func (s OrderStatus) CanBeCancelled() bool {
	return s == StatusPending || s == StatusConfirmed
}

type OrderItem struct {
	ProductID     primitive.ObjectID `bson:"productId" json:"productId"`
	Name          string             `bson:"name" json:"name"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	ItemTotal     float64            `bson:"itemTotal" json:"itemTotal"`
	Discount      float64            `bson:"discount" json:"discount"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Size          string             `bson:"size" json:"size"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	Items           []OrderItem        `bson:"items" json:"items"`
	OrderTotal      float64            `bson:"orderTotal" json:"orderTotal"`
	Discount        float64            `bson:"discount" json:"discount"`
	GSTAmount       float64            `bson:"gstAmount" json:"gstAmount"`
	FinalTotal      float64            `bson:"finalTotal" json:"finalTotal"`
	ShippingAddress string             `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Status          OrderStatus        `bson:"status" json:"status"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
