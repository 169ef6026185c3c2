package domain

import (
	"testing"
	"time"
)

func TestOrderTotalPrice(t *testing.T) {
	cases := []struct {
		name string
		o    Order
		want int
	}{
		{"no care plus", Order{Quantity: 25, UnitPrice: 1000}, 25000},
		{"care plus", Order{Quantity: 25, UnitPrice: 1000, HasAppleCarePlus: true}, 25050},
		{"care plus under ten", Order{Quantity: 9, UnitPrice: 1000, HasAppleCarePlus: true}, 9000},
		{"care plus ten", Order{Quantity: 10, UnitPrice: 500, HasAppleCarePlus: true}, 5010},
		{"free item", Order{Quantity: 3, UnitPrice: 0}, 0},
	}
	for _, tc := range cases {
		if got := tc.o.TotalPrice(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestOrderFormattedOrder(t *testing.T) {
	o := Order{OrderDate: time.Date(2024, time.March, 5, 17, 8, 0, 0, time.UTC)}
	if got := o.FormattedOrder(); got != "03월 05일 17시 08분" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestNewOrderFromItemSnapshots(t *testing.T) {
	item := Item{ItemID: "i1", Name: "iPhone", Price: 1250000, Color: "black", ImageURL: "https://img"}
	o := NewOrderFromItem(item, 2, time.Now())
	item.Price = 1
	if o.UnitPrice != 1250000 || o.ItemID != "i1" || o.ProductName != "iPhone" || o.Quantity != 2 {
		t.Fatalf("unexpected order %+v", o)
	}
	if o.TotalPrice() != 2500000 {
		t.Fatalf("unexpected total %d", o.TotalPrice())
	}
}

func TestProfileFormattedRegistration(t *testing.T) {
	p := ProfileInfo{RegistrationDate: time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)}
	if got := p.FormattedRegistration(); got != "12월 31일 00시 00분" {
		t.Fatalf("unexpected format %q", got)
	}
	up := NewUserProfile(p, nil)
	if up.ID.String() == "" || up.Profile.RegistrationDate != p.RegistrationDate {
		t.Fatalf("unexpected profile %+v", up)
	}
}
