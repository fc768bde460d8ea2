package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClientProfile represents client-specific profile data
type ClientProfile struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PhoneNumber      string    `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	Address          string    `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact string    `gorm:"type:varchar(255)" json:"emergency_contact,omitempty"`
	Pets             PetNames  `gorm:"type:jsonb" json:"pets,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ClientID" json:"bookings,omitempty"`
}

func (ClientProfile) TableName() string {
	return "client_profiles"
}
