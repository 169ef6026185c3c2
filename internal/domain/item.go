package domain

import (
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Item is a catalog product. ItemID doubles as the document key in the remote store.
type Item struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int    `json:"price"`
	Description   string `json:"description"`
	StockQuantity int    `json:"stockQuantity"`
	ImageURL      string `json:"imageURL"`
	Color         string `json:"color"`
	IsAvailable   bool   `json:"isAvailable"`
}

var priceprinter = message.NewPrinter(language.English)

// NewItemID returns a fresh client-side item identifier.
func NewItemID() string {
	return uuid.NewString()
}

// FormattedPrice renders Price with thousands grouping, e.g. 1234567 -> "1,234,567".
func (i Item) FormattedPrice() string {
	return priceprinter.Sprintf("%d", i.Price)
}

// ApplyFrom copies every mutable field of src onto i. ItemID is left alone.
func (i *Item) ApplyFrom(src Item) {
	i.Name = src.Name
	i.Category = src.Category
	i.Color = src.Color
	i.Description = src.Description
	i.ImageURL = src.ImageURL
	i.Price = src.Price
	i.StockQuantity = src.StockQuantity
	i.IsAvailable = src.IsAvailable
}
