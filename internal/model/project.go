package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectImportance represents the priority of a project. Anything outside
// the three known levels sorts after Low.
type ProjectImportance string

const (
	ImportanceHigh   ProjectImportance = "High"
	ImportanceMedium ProjectImportance = "Medium"
	ImportanceLow    ProjectImportance = "Low"
)

// Project represents a work item attached to a client. Value defaults to 0
// and Deadline is nullable; a NULL deadline sorts after every real one.
type Project struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	ClientID    uint              `json:"client_id" gorm:"not null;index"`
	Name        string            `json:"name" gorm:"size:255;not null"`
	Description string            `json:"description" gorm:"type:text"`
	Value       decimal.Decimal   `json:"value" gorm:"type:decimal(20,2);not null;default:0"`
	Status      string            `json:"status" gorm:"size:64"`
	Importance  ProjectImportance `json:"importance" gorm:"type:varchar(20)"`
	Deadline    *time.Time        `json:"deadline" gorm:"type:date"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	Client Client `json:"-" gorm:"foreignKey:ClientID"`
}

// ProjectSummary is a project row joined with the owning client's name,
// used by the dashboard listing.
type ProjectSummary struct {
	Project
	ClientName string `json:"client_name" gorm:"column:client_name"`
}
