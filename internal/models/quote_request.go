package models

import (
	"time"

	"github.com/google/uuid"
)

type QuoteStatus string

const (
	QuoteNew       QuoteStatus = "new"
	QuoteContacted QuoteStatus = "contacted"
	QuoteClosed    QuoteStatus = "closed"
)

func (s QuoteStatus) Valid() bool {
	return s == QuoteNew || s == QuoteContacted || s == QuoteClosed
}

type QuoteRequest struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Email        string      `json:"email" db:"email"`
	Phone        string      `json:"phone" db:"phone"`
	Address      string      `json:"address" db:"address"`
	ServiceType  string      `json:"serviceType" db:"service_type"`
	PropertyType string      `json:"propertyType" db:"property_type"`
	Message      string      `json:"message" db:"message"`
	Status       QuoteStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}
