package models

// Service is one bookable offering shown on the public site.
type Service struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	DisplayPrice string `json:"displayPrice"`
	Description  string `json:"description"`
	Category     string `json:"category"`
}

// Catalog is the list of services the booking modal can sell.
var Catalog = []Service{
	{Slug: "furnace-tune-up", Name: "Furnace Tune-Up", DisplayPrice: "$149", Description: "21-point furnace inspection, cleaning and safety check.", Category: "maintenance"},
	{Slug: "ac-tune-up", Name: "AC Tune-Up", DisplayPrice: "$149", Description: "Seasonal air conditioner inspection, coil cleaning and refrigerant check.", Category: "maintenance"},
	{Slug: "emergency-service-call", Name: "Emergency Service Call", DisplayPrice: "$199", Description: "After-hours diagnostic visit for no-heat or no-cool emergencies.", Category: "repair"},
	{Slug: "duct-cleaning", Name: "Duct Cleaning", DisplayPrice: "Starting at $399", Description: "Whole-home duct and vent cleaning.", Category: "maintenance"},
	{Slug: "furnace-installation", Name: "High-Efficiency Furnace Installation", DisplayPrice: "Starting at $6,499", Description: "Supply and install of a high-efficiency gas furnace with permit.", Category: "installation"},
	{Slug: "heat-pump-installation", Name: "Heat Pump Installation", DisplayPrice: "Starting at $8,999", Description: "Cold-climate heat pump supply and install.", Category: "installation"},
	{Slug: "maintenance-plan", Name: "Annual Maintenance Plan", DisplayPrice: "Call for pricing", Description: "Two visits a year with priority scheduling.", Category: "plan"},
}

func FindService(slug string) (Service, bool) {
	for _, s := range Catalog {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}
