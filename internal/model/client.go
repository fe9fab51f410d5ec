package model

import "time"

// ClientStatus represents the relationship stage of a client.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "Active"
	ClientStatusLead     ClientStatus = "Lead"
	ClientStatusInactive ClientStatus = "Inactive"
)

// Client represents a contact or organization owned by exactly one user.
// UserID is stamped from the acting session at creation and never updated.
type Client struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    uint         `json:"user_id" gorm:"not null;index"`
	Name      string       `json:"name" gorm:"size:255;not null"`
	Company   string       `json:"company" gorm:"size:255"`
	Email     string       `json:"email" gorm:"size:255"`
	Phone     string       `json:"phone" gorm:"size:64"`
	Status    ClientStatus `json:"status" gorm:"type:varchar(20)"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	Projects []Project `json:"projects,omitempty" gorm:"foreignKey:ClientID"`
}
