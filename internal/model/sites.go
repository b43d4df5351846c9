package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Counter is a company-operated sales point
type Counter struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Location  string     `gorm:"type:varchar(255)" json:"location"`
	Status    UserStatus `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Franchise is an externally owned outlet selling under the brand
type Franchise struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	OwnerName   string          `gorm:"type:varchar(255);not null" json:"ownerName"`
	Phone       string          `gorm:"type:varchar(20)" json:"phone"`
	Location    string          `gorm:"type:varchar(255)" json:"location"`
	RoyaltyRate decimal.Decimal `gorm:"type:decimal(10,4);default:0" json:"royaltyRate"` // fraction, e.g. 0.05
	Status      UserStatus      `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Hotel is a lodging property managed through the hotel module
type Hotel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Address   string     `gorm:"type:varchar(255)" json:"address"`
	RoomCount int        `gorm:"default:0" json:"roomCount"`
	Status    UserStatus `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Booking status constants
const (
	BookingReserved  = "RESERVED"
	BookingCheckedIn = "CHECKED_IN"
	BookingClosed    = "CLOSED"
	BookingCancelled = "CANCELLED"
)

// HotelBooking is a room reservation in a hotel
type HotelBooking struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	HotelID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"hotelId"`
	GuestName string          `gorm:"type:varchar(255);not null" json:"guestName"`
	RoomNo    string          `gorm:"type:varchar(20);not null" json:"roomNo"`
	CheckIn   time.Time       `gorm:"not null" json:"checkIn"`
	CheckOut  *time.Time      `json:"checkOut,omitempty"`
	Rate      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"rate"` // per night
	Status    string          `gorm:"type:varchar(20);default:'RESERVED';index" json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Hostel is a long-stay dormitory property
type Hostel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Address      string          `gorm:"type:varchar(255)" json:"address"`
	TotalBeds    int             `gorm:"default:0" json:"totalBeds"`
	OccupiedBeds int             `gorm:"default:0" json:"occupiedBeds"`
	MonthlyRent  decimal.Decimal `gorm:"type:decimal(18,4);default:0" json:"monthlyRent"`
	Status       UserStatus      `gorm:"type:varchar(20);default:'ACTIVE';index" json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Setting is a single key-value configuration entry
type Setting struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
