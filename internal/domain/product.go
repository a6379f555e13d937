package domain

import "time"

// Product is a catalog record as stored in the products collection.
// The cart only ever holds snapshots of it; catalog writes never reach
// into carts that already carry a copy.
type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Price       float64   `bson:"price" json:"price"`
	Stock       int       `bson:"stock" json:"stock"`
	Category    string    `bson:"category" json:"category"`
	ImageURL    string    `bson:"image_url" json:"imageUrl"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
