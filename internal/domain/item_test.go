package domain

import "testing"

func TestItemFormattedPrice(t *testing.T) {
	cases := []struct {
		price int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1550000, "1,550,000"},
	}
	for _, tc := range cases {
		got := Item{Price: tc.price}.FormattedPrice()
		if got != tc.want {
			t.Fatalf("price %d: expected %q, got %q", tc.price, tc.want, got)
		}
	}
}

func TestItemApplyFromKeepsID(t *testing.T) {
	dst := Item{ItemID: "keep", Name: "old", IsAvailable: true}
	dst.ApplyFrom(Item{ItemID: "other", Name: "new", Price: 10, StockQuantity: 3, IsAvailable: false})
	if dst.ItemID != "keep" {
		t.Fatalf("expected id to stay, got %s", dst.ItemID)
	}
	if dst.Name != "new" || dst.Price != 10 || dst.StockQuantity != 3 || dst.IsAvailable {
		t.Fatalf("unexpected item %+v", dst)
	}
}

func TestNewItemIDUnique(t *testing.T) {
	a, b := NewItemID(), NewItemID()
	if a == "" || a == b {
		t.Fatalf("expected distinct ids, got %q and %q", a, b)
	}
}
