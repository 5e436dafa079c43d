package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusPacked     Status = "packed"
	StatusCollected  Status = "collected"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCashOnCollection PaymentMethod = "Cash on Collection"
	PaymentEFT              PaymentMethod = "EFT before Collection"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// Item is a denormalized copy of the product at order time, not a foreign
// key. The price is frozen when the order is created; catalog changes must
// never alter it afterwards.
type Item struct {
	ProductID string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Region    string  `json:"region,omitempty"`
	Unit      string  `json:"unit,omitempty"`
}

func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is created once at submission and afterwards mutated only through
// status transitions and the staff line-item edit path. Branch is the
// kitchen that fulfills the order; Region is the customer's declared
// delivery area. They are independent dimensions.
type Order struct {
	ID            uint          `json:"id"`
	OrderNumber   string        `json:"order_number"`
	CustomerName  string        `json:"customer_name"`
	PhoneNumber   string        `json:"phone_number,omitempty"`
	CellNumber    string        `json:"cell_number,omitempty"`
	Email         string        `json:"email,omitempty"`
	Branch        string        `json:"branch"`
	Region        string        `json:"region"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Items         []Item        `json:"items"`
	Total         float64       `json:"total"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SumItems recomputes the total from line subtotals.
func SumItems(items []Item) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
