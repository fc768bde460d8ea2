package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SitterProfile represents sitter-specific profile data
type SitterProfile struct {
	UserID      uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	PhoneNumber string          `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	Biography   string          `gorm:"type:text" json:"biography,omitempty"`
	ServiceArea string          `gorm:"type:varchar(255)" json:"service_area,omitempty"`
	HourlyRate  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:SitterID" json:"bookings,omitempty"`
}

func (SitterProfile) TableName() string {
	return "sitter_profiles"
}
