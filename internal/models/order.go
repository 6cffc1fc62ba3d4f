package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentMethodCash = "cash"
	CurrencyEGP       = "EGP"

	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return true
	}
	return false
}

type Address struct {
	Street      string `json:"street" bson:"street"`
	Apartment   string `json:"apartment,omitempty" bson:"apartment,omitempty"`
	City        string `json:"city" bson:"city"`
	Governorate string `json:"governorate" bson:"governorate"`
	PostalCode  string `json:"postalCode" bson:"postalCode"`
	Country     string `json:"country" bson:"country"`
}

type CustomerInfo struct {
	Name    string  `json:"name" bson:"name"`
	Email   string  `json:"email" bson:"email"`
	Phone   string  `json:"phone" bson:"phone"`
	Address Address `json:"address" bson:"address"`
}

// OrderItem snapshots the unit price at placement time; it is never
// recomputed from the referenced product.
type OrderItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int64              `json:"quantity" bson:"quantity"`
	Price    float64            `json:"price" bson:"price"`
	Size     string             `json:"size,omitempty" bson:"size,omitempty"`
	Color    string             `json:"color,omitempty" bson:"color,omitempty"`
}

type Order struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	OrderNumber   string             `json:"orderNumber" bson:"orderNumber"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	CustomerInfo  CustomerInfo       `json:"customerInfo" bson:"customerInfo"`
	Products      []OrderItem        `json:"products" bson:"products"`
	TotalAmount   float64            `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod string             `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus string             `json:"paymentStatus" bson:"paymentStatus"`
	Currency      string             `json:"currency" bson:"currency"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
