package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Build is a curated PC build from the shop catalog.
type Build struct {
	ID          int       `bson:"_id" gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string    `bson:"name" gorm:"size:255" json:"name"`
	CPU         string    `bson:"cpu" gorm:"column:cpu;size:255" json:"cpu"`
	GPU         string    `bson:"gpu" gorm:"column:gpu;size:255" json:"gpu"`
	RAM         string    `bson:"ram" gorm:"column:ram;size:255" json:"ram"`
	Storage     string    `bson:"storage" gorm:"size:255" json:"storage"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	Description string    `bson:"description" gorm:"type:text" json:"description"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (Build) TableName() string { return "builds" }

func (b *Build) EntityType() string { return "build" }
func (b *Build) Identity() string   { return strconv.Itoa(b.ID) }

// NaturalKey for builds is the identity itself; builds have no separate
// business key, so the collision branch of reconciliation never fires.
func (b *Build) NaturalKey() string { return strconv.Itoa(b.ID) }

func (b *Build) Validate() error {
	if b.ID <= 0 {
		return errors.New("missing build id")
	}
	if b.Name == "" {
		return errors.New("missing build name")
	}
	return nil
}

// UserProfile is a shop customer account.
type UserProfile struct {
	ID          string    `bson:"_id" gorm:"primaryKey;size:64" json:"id"`
	Email       string    `bson:"email" gorm:"size:255" json:"email"`
	DisplayName string    `bson:"display_name" gorm:"size:255" json:"display_name"`
	// Placeholder marks profiles synthesized during order reconciliation for
	// user ids the primary store no longer knows about.
	Placeholder bool      `bson:"placeholder,omitempty" json:"placeholder"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }

func (u *UserProfile) EntityType() string { return "user_profile" }
func (u *UserProfile) Identity() string   { return u.ID }
func (u *UserProfile) NaturalKey() string { return u.ID }

func (u *UserProfile) Validate() error {
	if u.ID == "" {
		return errors.New("missing user id")
	}
	return nil
}

// Order is a placed order. The replica enforces a structural reference from
// orders to user profiles that the primary store does not.
type Order struct {
	ID            int       `bson:"_id" gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderNumber   string    `bson:"order_number" gorm:"size:64;index" json:"order_number"`
	UserID        string    `bson:"user_id" gorm:"size:64;index" json:"user_id"`
	CustomerName  string    `bson:"customer_name" gorm:"size:255" json:"customer_name"`
	CustomerEmail string    `bson:"customer_email" gorm:"size:255" json:"customer_email"`
	TotalCents    int64     `bson:"total_cents" json:"total_cents"`
	Status        string    `bson:"status" gorm:"size:32" json:"status"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) EntityType() string { return "order" }
func (o *Order) Identity() string   { return strconv.Itoa(o.ID) }

// NaturalKey is the human-readable order number (e.g. "FF100").
func (o *Order) NaturalKey() string { return o.OrderNumber }

func (o *Order) Validate() error {
	if o.ID <= 0 {
		return errors.New("missing order id")
	}
	if o.OrderNumber == "" {
		return errors.New("missing order number")
	}
	if o.UserID == "" {
		return errors.New("missing user id")
	}
	return nil
}

// Inquiry is a custom-build sales inquiry submitted through the storefront.
type Inquiry struct {
	ID        int       `bson:"_id" gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `bson:"name" gorm:"size:255" json:"name"`
	Email     string    `bson:"email" gorm:"size:255" json:"email"`
	Budget    string    `bson:"budget" gorm:"size:64" json:"budget"`
	UseCase   string    `bson:"use_case" gorm:"size:255" json:"use_case"`
	Message   string    `bson:"message" gorm:"type:text" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func (Inquiry) TableName() string { return "inquiries" }

func (q *Inquiry) EntityType() string { return "inquiry" }
func (q *Inquiry) Identity() string   { return strconv.Itoa(q.ID) }

// NaturalKey is the exact, case-sensitive (name, email, budget, use-case)
// tuple. No fuzzy matching.
func (q *Inquiry) NaturalKey() string {
	return strings.Join([]string{q.Name, q.Email, q.Budget, q.UseCase}, "|")
}

func (q *Inquiry) Validate() error {
	if q.ID <= 0 {
		return errors.New("missing inquiry id")
	}
	if q.Name == "" {
		return errors.New("missing inquiry name")
	}
	if q.Email == "" {
		return errors.New("missing inquiry email")
	}
	return nil
}

// PlaceholderProfile synthesizes a minimal user profile for an order whose
// user id is unknown to both stores. Email and display name fall back to
// deterministic defaults derived from the order.
func PlaceholderProfile(o *Order) UserProfile {
	email := o.CustomerEmail
	if email == "" {
		email = o.UserID + "@placeholder.invalid"
	}
	name := o.CustomerName
	if name == "" {
		name = "Unknown User"
	}
	return UserProfile{
		ID:          o.UserID,
		Email:       email,
		DisplayName: name,
		Placeholder: true,
	}
}

// Counts holds per-entity record counts for one store.
type Counts struct {
	Builds    int64 `json:"builds"`
	Orders    int64 `json:"orders"`
	Users     int64 `json:"users"`
	Inquiries int64 `json:"inquiries"`
}

// Equal reports whether every corresponding pair of counts matches exactly.
func (c Counts) Equal(other Counts) bool {
	return c == other
}
