package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type CartItem struct {
	Product  primitive.ObjectID `json:"product" bson:"product"`
	Quantity int64              `json:"quantity" bson:"quantity"`
	Size     string             `json:"size,omitempty" bson:"size,omitempty"`
	Color    string             `json:"color,omitempty" bson:"color,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      string             `json:"role" bson:"role"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   *Address           `json:"address,omitempty" bson:"address,omitempty"`
	CartItems []CartItem         `json:"cartItems" bson:"cartItems"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
