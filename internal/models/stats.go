package models

import "time"

// DashboardStats feeds the admin overview.
type DashboardStats struct {
	BookingsByStatus    map[string]int `json:"bookingsByStatus"`
	PaidRevenue         float64        `json:"paidRevenue"`
	PendingApplications int            `json:"pendingApplications"`
	OpenQuotes          int            `json:"openQuotes"`
	PublishedPosts      int            `json:"publishedPosts"`
	TeamMembers         int            `json:"teamMembers"`
	GeneratedAt         time.Time      `json:"generatedAt"`
}
