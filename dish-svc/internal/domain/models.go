package domain

import (
	"math"
	"strings"
	"time"
)

const (
	MinDishPrice = 0.01
	MaxDishPrice = 1000.0
	MinRating    = 1
	MaxRating    = 5
)

type Dish struct {
	ID          int      `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Description string   `json:"description,omitempty" db:"description"`
	Price       float64  `json:"price" db:"price"`
	ImagePath   string   `json:"image_path,omitempty" db:"image_path"`
	Reviews     []Review `json:"reviews" db:"-"`
}

// Validate checks the invariants that must hold before a dish is written.
func (d *Dish) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if math.IsNaN(d.Price) || d.Price < MinDishPrice || d.Price > MaxDishPrice {
		return &ValidationError{Field: "price", Reason: "must be between 0.01 and 1000"}
	}
	if !WholeCents(d.Price) {
		return &ValidationError{Field: "price", Reason: "must not have more than two decimals"}
	}
	return nil
}

type User struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Addresses []Address `json:"addresses" db:"-"`
	Orders    []Order   `json:"orders,omitempty" db:"-"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

type Address struct {
	ID         int    `json:"id" db:"id"`
	UserID     int    `json:"user_id" db:"user_id"`
	Street     string `json:"street" db:"street"`
	City       string `json:"city" db:"city"`
	PostalCode string `json:"postal_code" db:"postal_code"`
}

func (a *Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return &ValidationError{Field: "street", Reason: "must not be empty"}
	}
	if strings.TrimSpace(a.City) == "" {
		return &ValidationError{Field: "city", Reason: "must not be empty"}
	}
	return nil
}

type Review struct {
	ID         int       `json:"id" db:"id"`
	DishID     int       `json:"dish_id" db:"dish_id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment,omitempty" db:"comment"`
	ReviewDate time.Time `json:"review_date" db:"review_date"`
}

func (r *Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}

type Order struct {
	ID                int         `json:"id" db:"id"`
	UserID            int         `json:"user_id" db:"user_id"`
	OrderDate         time.Time   `json:"order_date" db:"order_date"`
	Status            OrderStatus `json:"status" db:"status"`
	IsDelivery        bool        `json:"is_delivery" db:"is_delivery"`
	DeliveryAddressID *int        `json:"delivery_address_id,omitempty" db:"delivery_address_id"`
	DeliveryFee       float64     `json:"delivery_fee" db:"delivery_fee"`
	TotalPrice        float64     `json:"total_price" db:"total_price"`
	Items             []OrderItem `json:"items" db:"-"`
}

// CalculateTotal fills every item's LineTotal and the order's TotalPrice.
// The delivery fee only counts towards the total for delivery orders.
func (o *Order) CalculateTotal() {
	total := 0.0
	for i := range o.Items {
		o.Items[i].CalculateLineTotal()
		total += o.Items[i].LineTotal
	}
	if o.IsDelivery {
		total += o.DeliveryFee
	}
	o.TotalPrice = RoundCents(total)
}

type OrderItem struct {
	ID        int     `json:"id" db:"id"`
	OrderID   int     `json:"order_id" db:"order_id"`
	DishID    int     `json:"dish_id" db:"dish_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
	LineTotal float64 `json:"line_total" db:"line_total"`
}

func (i *OrderItem) CalculateLineTotal() {
	i.LineTotal = RoundCents(float64(i.Quantity) * i.UnitPrice)
}

// WholeCents reports whether v is an amount of whole cents, which is all
// the money columns can store.
func WholeCents(v float64) bool {
	return math.Abs(v*100-math.Round(v*100)) < 1e-6
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
