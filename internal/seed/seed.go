package seed

import (
	"context"
	"fmt"

	"applestore-clone/internal/catalog"
	"applestore-clone/internal/docstore"
	"applestore-clone/internal/domain"
)

// DemoItems are written by Apply. Ids are fixed so reseeding overwrites instead of duplicating.
var DemoItems = []domain.Item{
	{
		ItemID:        "demo-iphone-15",
		Name:          "iPhone 15",
		Category:      "iPhone",
		Price:         1250000,
		Description:   "Dynamic Island, 48MP main camera, USB-C",
		StockQuantity: 30,
		ImageURL:      "https://example.com/images/iphone-15.png",
		Color:         "black",
		IsAvailable:   true,
	},
	{
		ItemID:        "demo-ipad-air",
		Name:          "iPad Air",
		Category:      "iPad",
		Price:         929000,
		Description:   "M2 chip, 11-inch Liquid Retina display",
		StockQuantity: 12,
		ImageURL:      "https://example.com/images/ipad-air.png",
		Color:         "blue",
		IsAvailable:   true,
	},
	{
		ItemID:        "demo-macbook-air",
		Name:          "MacBook Air",
		Category:      "Mac",
		Price:         1590000,
		Description:   "M3 chip, 13-inch, 18 hours of battery",
		StockQuantity: 0,
		ImageURL:      "https://example.com/images/macbook-air.png",
		Color:         "midnight",
		IsAvailable:   false,
	},
	{
		ItemID:        "demo-airpods-pro",
		Name:          "AirPods Pro",
		Category:      "AirPods",
		Price:         359000,
		Description:   "Active noise cancellation, USB-C case",
		StockQuantity: 50,
		ImageURL:      "https://example.com/images/airpods-pro.png",
		Color:         "white",
		IsAvailable:   true,
	},
}

// Apply writes the demo items to the Item collection. It is idempotent.
func Apply(ctx context.Context, docs docstore.Store) error {
	for _, item := range DemoItems {
		if err := docs.Set(ctx, catalog.ItemCollection, item.ItemID, catalog.ItemFields(item)); err != nil {
			return fmt.Errorf("write item %s: %w", item.ItemID, err)
		}
	}
	return nil
}
