package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingScheduled, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

type Booking struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	CustomerName       string        `json:"customerName" db:"customer_name"`
	CustomerEmail      string        `json:"customerEmail" db:"customer_email"`
	CustomerPhone      string        `json:"customerPhone" db:"customer_phone"`
	CustomerAddress    string        `json:"customerAddress" db:"customer_address"`
	Notes              string        `json:"notes" db:"notes"`
	ServiceName        string        `json:"serviceName" db:"service_name"`
	ServicePrice       float64       `json:"servicePrice" db:"service_price"`
	ServiceDescription string        `json:"serviceDescription" db:"service_description"`
	ServiceCategory    string        `json:"serviceCategory" db:"service_category"`
	Status             BookingStatus `json:"status" db:"status"`
	PaymentStatus      PaymentStatus `json:"paymentStatus" db:"payment_status"`
	StripeSessionID    *string       `json:"stripeSessionId" db:"stripe_session_id"`
	CreatedAt          time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time     `json:"updatedAt" db:"updated_at"`
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	Status *BookingStatus
	Limit  int
	Offset int
}

type BookingUpdate struct {
	Status        *BookingStatus `json:"status"`
	PaymentStatus *PaymentStatus `json:"paymentStatus"`
	Notes         *string        `json:"notes"`
}

// PendingBooking is the payload stashed between the booking modal and the
// payment return page.
type PendingBooking struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	Address            string  `json:"address"`
	Notes              string  `json:"notes"`
	ServiceName        string  `json:"serviceName"`
	ServicePrice       float64 `json:"servicePrice"`
	ServiceDescription string  `json:"serviceDescription"`
	ServiceCategory    string  `json:"serviceCategory"`
}

func (p *PendingBooking) Empty() bool {
	return p == nil || (p.Name == "" && p.Email == "" && p.ServiceName == "")
}
