package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusPromoted  WaitlistStatus = "promoted"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
)

// PetNames is a JSONB string array of pet names on a request
type PetNames []string

// Value implements driver.Valuer for JSONB storage
func (p PetNames) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner
func (p *PetNames) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var names []string
	if err := json.Unmarshal(bytes, &names); err != nil {
		return err
	}
	*p = PetNames(names)
	return nil
}

// WaitlistEntry is a client's standing request for a slot that was
// unavailable at request time. Higher priority is served first; entries of
// equal priority are served in creation order.
type WaitlistEntry struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClientID            uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName          string         `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientEmail         string         `gorm:"type:varchar(255);not null" json:"client_email"`
	ClientPhone         string         `gorm:"type:varchar(20)" json:"client_phone,omitempty"`
	ServiceType         string         `gorm:"type:varchar(100);not null;index" json:"service_type"`
	RequestedDate       string         `gorm:"type:date;not null;index" json:"requested_date"`
	RequestedTime       string         `gorm:"type:time;not null" json:"requested_time"`
	DurationMinutes     int            `gorm:"not null" json:"duration_minutes"`
	Pets                PetNames       `gorm:"type:jsonb" json:"pets,omitempty"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions,omitempty"`
	Priority            int            `gorm:"not null;default:0;index" json:"priority"`
	EstimatedWaitHours  int            `gorm:"default:0" json:"estimated_wait_hours"`
	Status              WaitlistStatus `gorm:"type:waitlist_status;not null;default:'waiting';index" json:"status"`
	CreatedAt           time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}

// IsWaiting checks if the entry is still eligible for promotion
func (e *WaitlistEntry) IsWaiting() bool {
	return e.Status == WaitlistStatusWaiting
}

// IsTerminal reports whether the entry has left the waitlist.
// Promoted and cancelled are both terminal; reactivation creates a new entry.
func (e *WaitlistEntry) IsTerminal() bool {
	return e.Status == WaitlistStatusPromoted || e.Status == WaitlistStatusCancelled
}
