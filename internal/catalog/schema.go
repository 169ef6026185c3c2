package catalog

import (
	"encoding/json"
	"math"

	"applestore-clone/internal/docstore"
	"applestore-clone/internal/domain"
)

// Field names of an Item document. The item id is the document key and never a field.
const (
	fieldName          = "name"
	fieldCategory      = "category"
	fieldColor         = "color"
	fieldDescription   = "description"
	fieldImageURL      = "imageURL"
	fieldPrice         = "price"
	fieldStockQuantity = "stockQuantity"
	fieldIsAvailable   = "isAvailable"
)

// Values used when a document lacks a field or holds it with the wrong type.
const (
	defaultString      = ""
	defaultPrice       = 0
	defaultStock       = 0
	defaultIsAvailable = true
)

// ItemFields is the full field set written on add and update.
func ItemFields(item domain.Item) map[string]interface{} {
	return map[string]interface{}{
		fieldName:          item.Name,
		fieldCategory:      item.Category,
		fieldColor:         item.Color,
		fieldDescription:   item.Description,
		fieldImageURL:      item.ImageURL,
		fieldPrice:         item.Price,
		fieldStockQuantity: item.StockQuantity,
		fieldIsAvailable:   item.IsAvailable,
	}
}

// itemFromDocument maps a document onto an Item field by field. It never fails.
func itemFromDocument(doc docstore.Document) domain.Item {
	f := doc.Fields
	return domain.Item{
		ItemID:        doc.ID,
		Name:          stringField(f, fieldName),
		Category:      stringField(f, fieldCategory),
		Color:         stringField(f, fieldColor),
		Description:   stringField(f, fieldDescription),
		ImageURL:      stringField(f, fieldImageURL),
		Price:         intField(f, fieldPrice, defaultPrice),
		StockQuantity: intField(f, fieldStockQuantity, defaultStock),
		IsAvailable:   boolField(f, fieldIsAvailable, defaultIsAvailable),
	}
}

func stringField(f map[string]interface{}, key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return defaultString
}

// intField accepts the integer encodings backends hand back: Go ints, bson int32/int64,
// and JSON numbers that carry no fractional part.
func intField(f map[string]interface{}, key string, def int) int {
	switch v := f[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		if v >= math.MinInt && v <= math.MaxInt {
			return int(v)
		}
	case float64:
		// -MinInt is exactly representable; MaxInt is not.
		if v == math.Trunc(v) && v >= float64(math.MinInt) && v < -float64(math.MinInt) {
			return int(v)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
	}
	return def
}

func boolField(f map[string]interface{}, key string, def bool) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return def
}
