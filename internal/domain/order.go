package domain

import "time"

// displayLayout renders dates as "MM월 dd일 HH시 mm분".
const displayLayout = "01월 02일 15시 04분"

// Order is a purchase record. Product fields are a snapshot of the item at order time.
type Order struct {
	TrackingNumber  string    `json:"trackingNumber"`
	OrderDate       time.Time `json:"orderDate"`
	Nickname        string    `json:"nickname"`
	ShippingAddress string    `json:"shippingAddress"`
	PhoneNumber     string    `json:"phoneNumber"`
	ProductName     string    `json:"productName"`
	ImageURL        string    `json:"imageURL"`
	Color           string    `json:"color"`
	ItemID          string    `json:"itemId"`

	HasAppleCarePlus bool `json:"hasAppleCarePlus"`
	Quantity         int  `json:"quantity"`
	UnitPrice        int  `json:"unitPrice"`

	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
}

// NewOrderFromItem snapshots item into an order line priced at the item's current price.
func NewOrderFromItem(item Item, quantity int, orderDate time.Time) Order {
	return Order{
		OrderDate:   orderDate,
		ProductName: item.Name,
		ImageURL:    item.ImageURL,
		Color:       item.Color,
		ItemID:      item.ItemID,
		Quantity:    quantity,
		UnitPrice:   item.Price,
	}
}

// TotalPrice is quantity*unitPrice, plus (quantity/10)*quantity when care plus is attached.
// The surcharge term does not scale with UnitPrice.
func (o Order) TotalPrice() int {
	base := o.Quantity * o.UnitPrice
	if !o.HasAppleCarePlus {
		return base
	}
	return base + (o.Quantity/10)*o.Quantity
}

// FormattedOrder renders OrderDate for display.
func (o Order) FormattedOrder() string {
	return o.OrderDate.Format(displayLayout)
}
