package catalog

import (
	"encoding/json"
	"math"
	"testing"

	"applestore-clone/internal/docstore"
	"applestore-clone/internal/domain"
)

func TestItemFromDocument_Defaults(t *testing.T) {
	got := itemFromDocument(docstore.Document{ID: "x", Fields: map[string]interface{}{}})
	want := domain.Item{ItemID: "x", IsAvailable: true}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestItemFromDocument_MistypedFieldsFallBack(t *testing.T) {
	got := itemFromDocument(docstore.Document{ID: "x", Fields: map[string]interface{}{
		"name":          42,
		"price":         "1000",
		"stockQuantity": 2.5,
		"isAvailable":   "no",
	}})
	if got.Name != "" || got.Price != 0 || got.StockQuantity != 0 || !got.IsAvailable {
		t.Fatalf("unexpected item %+v", got)
	}
}

func TestIntField_BackendEncodings(t *testing.T) {
	cases := []struct {
		name string
		v    interface{}
		want int
	}{
		{"int", 7, 7},
		{"int32", int32(7), 7},
		{"int64", int64(1234567), 1234567},
		{"json float", float64(1250000), 1250000},
		{"json number", json.Number("99"), 99},
		{"fraction", 1.5, 0},
		{"float too large", 1e300, 0},
		{"float too small", -1e300, 0},
		{"infinity", math.Inf(1), 0},
		{"missing", nil, 0},
	}
	for _, tc := range cases {
		f := map[string]interface{}{}
		if tc.v != nil {
			f["price"] = tc.v
		}
		if got := intField(f, "price", 0); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestItemFieldsRoundTrip(t *testing.T) {
	in := domain.Item{ItemID: "k", Name: "n", Category: "c", Price: 3, Description: "d", StockQuantity: 4, ImageURL: "u", Color: "r"}
	out := itemFromDocument(docstore.Document{ID: "k", Fields: ItemFields(in)})
	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}
