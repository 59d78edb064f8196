package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                string             `bson:"name" json:"name"`
	Category            string             `bson:"category" json:"category"`
	Price               float64            `bson:"price" json:"price"`
	OriginalPrice       float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Stock               int                `bson:"stock" json:"stock"`
	Images              []string           `bson:"images" json:"images"`
	Description         string             `bson:"description" json:"description"`
	DetailedDescription string             `bson:"detailedDescription,omitempty" json:"detailedDescription,omitempty"`
	Details             []string           `bson:"details,omitempty" json:"details,omitempty"`
	CareInstructions    []string           `bson:"careInstructions,omitempty" json:"careInstructions,omitempty"`
	Color               string             `bson:"color,omitempty" json:"color,omitempty"`
	Fabric              string             `bson:"fabric,omitempty" json:"fabric,omitempty"`
	PrintType           string             `bson:"printType,omitempty" json:"printType,omitempty"`
	DeliveryTime        string             `bson:"deliveryTime,omitempty" json:"deliveryTime,omitempty"`
	Featured            bool               `bson:"featured" json:"featured"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FirstImage returns the image shown on an order line item, empty when
// the product has none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
