package stock

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StockStatus string

const (
	StatusAvailable  StockStatus = "available"
	StatusLow        StockStatus = "low"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// StockItem is one inventory line. Status is derived, never set directly:
// every write recomputes it from quantity and minQuantity.
type StockItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	MinQuantity int                `bson:"min_quantity" json:"minQuantity"`
	Unit        string             `bson:"unit" json:"unit"`
	Category    string             `bson:"category" json:"category"`
	Status      StockStatus        `bson:"status" json:"status"`
	LastUpdated time.Time          `bson:"last_updated" json:"lastUpdated"`
}

// DeriveStatus is the single status rule, evaluated in order.
func DeriveStatus(quantity, minQuantity int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity <= minQuantity:
		return StatusLow
	default:
		return StatusAvailable
	}
}

type AddStockItemInput struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	Unit        string `json:"unit"`
	Category    string `json:"category"`
}

// UpdateStockItemInput carries partial updates; nil fields are untouched.
type UpdateStockItemInput struct {
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity"`
	MinQuantity *int    `json:"minQuantity"`
	Unit        *string `json:"unit"`
	Category    *string `json:"category"`
}

type AdjustStockInput struct {
	Delta int `json:"delta"`
}
