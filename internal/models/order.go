package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusPending is the only status assigned by order placement. Later
// transitions are driven outside this service.
const StatusPending = "Pending"

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string `bson:"product_id" json:"productId"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Order is an immutable purchase record owned by a user.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"userId"`
	Items         []OrderItem        `bson:"items" json:"items"`
	PaymentMethod string             `bson:"payment_method" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
