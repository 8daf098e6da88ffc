package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PageView is one page-view event for a visitor session.
type PageView struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    string    `gorm:"size:64;not null;index" json:"session_id"`
	PagePath     string    `gorm:"size:512;not null;index" json:"page_path"`
	PageTitle    string    `gorm:"size:255" json:"page_title"`
	Referrer     string    `gorm:"size:1024" json:"referrer"`
	UserAgent    string    `gorm:"size:512" json:"user_agent"`
	DeviceType   string    `gorm:"size:16" json:"device_type"`
	Browser      string    `gorm:"size:32" json:"browser"`
	OS           string    `gorm:"size:32" json:"os"`
	Language     string    `gorm:"size:32" json:"language"`
	ScreenWidth  int       `json:"screen_width"`
	ScreenHeight int       `json:"screen_height"`
	TimeOnPage   int       `json:"time_on_page"` // seconds
	ScrollDepth  int       `json:"scroll_depth"` // percent
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// UserInteraction is a click, form submit or similar element-level event.
type UserInteraction struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID       string            `gorm:"size:64;not null;index" json:"session_id"`
	InteractionType string            `gorm:"size:64;not null;index" json:"interaction_type"`
	PagePath        string            `gorm:"size:512" json:"page_path"`
	ElementTag      string            `gorm:"size:64" json:"element_tag"`
	ElementID       string            `gorm:"size:255" json:"element_id"`
	ElementClass    string            `gorm:"size:512" json:"element_class"`
	ElementText     string            `gorm:"size:255" json:"element_text"`
	TargetURL       string            `gorm:"size:1024" json:"target_url"`
	Metadata        datatypes.JSONMap `json:"metadata"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`
}

// UserSession aggregates one visitor session. It is upserted on every page view.
type UserSession struct {
	SessionID    string    `gorm:"size:64;primaryKey" json:"session_id"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `gorm:"index" json:"last_activity"`
	PageViews    int       `gorm:"not null;default:0" json:"page_views"`
	LandingPage  string    `gorm:"size:512" json:"landing_page"`
	Referrer     string    `gorm:"size:1024" json:"referrer"`
	DeviceType   string    `gorm:"size:16" json:"device_type"`
	Browser      string    `gorm:"size:32" json:"browser"`
	OS           string    `gorm:"size:32" json:"os"`
	Language     string    `gorm:"size:32" json:"language"`
}

func (p *PageView) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (i *UserInteraction) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// All lists every migrated model.
func All() []any {
	return []any{
		&Game{}, &News{}, &Career{}, &Profile{}, &AdminUser{},
		&PageView{}, &UserInteraction{}, &UserSession{},
	}
}
