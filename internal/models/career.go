package models

import "github.com/lib/pq"

// Career is an open position. SortOrder is maintained by hand from the back office.
type Career struct {
	Base
	Title          string         `gorm:"size:255;not null" json:"title"`
	Requirements   pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Description    string         `gorm:"type:text" json:"description"`
	Department     string         `gorm:"size:128" json:"department"`
	Location       string         `gorm:"size:128" json:"location"`
	EmploymentType string         `gorm:"size:64" json:"employment_type"`
	IsActive       bool           `gorm:"not null;default:true;index" json:"is_active"`
	SortOrder      int            `gorm:"not null;default:0;index" json:"sort_order"`
}
