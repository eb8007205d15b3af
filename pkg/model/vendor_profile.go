package model

import "time"

type Category string

const (
	CategoryCatering    Category = "Catering"
	CategoryPhotography Category = "Photography"
	CategoryDecoration  Category = "Decoration"
	CategoryMusic       Category = "Music"
	CategoryMakeup      Category = "Makeup"
	CategoryVenue       Category = "Venue"
	CategoryOther       Category = "Other"
)

func Categories() []Category {
	return []Category{
		CategoryCatering,
		CategoryPhotography,
		CategoryDecoration,
		CategoryMusic,
		CategoryMakeup,
		CategoryVenue,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryCatering, CategoryPhotography, CategoryDecoration,
		CategoryMusic, CategoryMakeup, CategoryVenue, CategoryOther:
		return true
	}
	return false
}

type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotBooked      SlotStatus = "booked"
	SlotUnavailable SlotStatus = "unavailable"
)

func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotBooked, SlotUnavailable:
		return true
	}
	return false
}

// VendorProfile is the root document for a vendor: one per vendor account,
// keyed by VendorID.
type VendorProfile struct {
	ID           string         `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VendorID     string         `json:"vendor_id" bson:"vendor_id" validate:"required"`
	BusinessName string         `json:"business_name" bson:"business_name" validate:"required,min=1,max=100"`
	Description  string         `json:"description" bson:"description" validate:"required,min=1,max=2000"`
	Categories   []Category     `json:"categories" bson:"categories" validate:"required,min=1,dive,vendor_category"`
	Portfolio    Portfolio      `json:"portfolio" bson:"portfolio"`
	Availability Availability   `json:"availability" bson:"availability"`
	Services     []Service      `json:"services" bson:"services" validate:"omitempty,dive"`
	Performance  Performance    `json:"performance" bson:"performance"`
	Location     Location       `json:"location,omitempty" bson:"location,omitempty"`
	Contact      Contact        `json:"contact,omitempty" bson:"contact,omitempty"`
	Documents    []Document     `json:"documents,omitempty" bson:"documents,omitempty"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// VendorProfileUpdate carries a full replace-or-create profile edit.
type VendorProfileUpdate struct {
	BusinessName string        `json:"business_name" validate:"required,min=1,max=100"`
	Description  string        `json:"description" validate:"required,min=1,max=2000"`
	Categories   []Category    `json:"categories" validate:"required,min=1,dive,vendor_category"`
	Portfolio    *Portfolio    `json:"portfolio,omitempty" validate:"omitempty"`
	Availability *Availability `json:"availability,omitempty" validate:"omitempty"`
	Services     *[]Service    `json:"services,omitempty" validate:"omitempty,dive"`
	Location     *Location     `json:"location,omitempty" validate:"omitempty"`
	Contact      *Contact      `json:"contact,omitempty" validate:"omitempty"`
}

// Service is a single offering on a vendor's price list.
type Service struct {
	Name        string   `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Description string   `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Price       float64  `json:"price" bson:"price" validate:"min=0"`
	Duration    string   `json:"duration,omitempty" bson:"duration,omitempty" validate:"omitempty,max=50"`
	Category    Category `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,vendor_category"`
}

// Performance holds the metrics the matching engine scores on. It is written
// by the event-completion and review pipelines and read-only everywhere else.
type Performance struct {
	TotalEvents    int     `json:"total_events" bson:"total_events" validate:"min=0"`
	AverageRating  float64 `json:"average_rating" bson:"average_rating" validate:"min=0,max=5"`
	ResponseTime   float64 `json:"response_time" bson:"response_time" validate:"min=0"` // minutes
	CompletionRate float64 `json:"completion_rate" bson:"completion_rate" validate:"min=0,max=100"`
	Revenue        float64 `json:"revenue" bson:"revenue" validate:"min=0"`
}

type Portfolio struct {
	Images       []PortfolioItem `json:"images" bson:"images"`
	Videos       []PortfolioItem `json:"videos" bson:"videos"`
	Testimonials []Testimonial   `json:"testimonials" bson:"testimonials"`
}

type PortfolioItem struct {
	URL      string `json:"url" bson:"url" validate:"required,max=500"`
	Caption  string `json:"caption,omitempty" bson:"caption,omitempty" validate:"omitempty,max=200"`
	Category string `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,max=50"`
}

type Testimonial struct {
	ClientName string    `json:"client_name" bson:"client_name"`
	EventType  string    `json:"event_type,omitempty" bson:"event_type,omitempty"`
	Rating     int       `json:"rating" bson:"rating" validate:"omitempty,min=1,max=5"`
	Review     string    `json:"review,omitempty" bson:"review,omitempty"`
	Date       time.Time `json:"date,omitempty" bson:"date,omitempty"`
}

type Location struct {
	Address     string       `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=200"`
	City        string       `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,max=50"`
	State       string       `json:"state,omitempty" bson:"state,omitempty" validate:"omitempty,max=50"`
	Country     string       `json:"country,omitempty" bson:"country,omitempty" validate:"omitempty,max=50"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" bson:"longitude" validate:"min=-180,max=180"`
}

type Contact struct {
	Email       string      `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone       string      `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=20"`
	Website     string      `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,max=200"`
	SocialMedia SocialMedia `json:"social_media,omitempty" bson:"social_media,omitempty"`
}

type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
}

type Document struct {
	Type     string `json:"type" bson:"type"`
	Name     string `json:"name" bson:"name"`
	Verified bool   `json:"verified" bson:"verified"`
}
