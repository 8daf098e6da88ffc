package models

import "time"

// Game represents a title shown in the public showcase.
// IsAvailable soft-hides a game: unavailable games render as "coming soon".
type Game struct {
	Base
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `json:"description"`
	MediaURL         string     `gorm:"size:1024" json:"media_url"`
	Route            string     `gorm:"size:255;uniqueIndex" json:"route"`
	RTP              string     `gorm:"size:32" json:"rtp"`
	Volatility       string     `gorm:"size:32" json:"volatility"`
	HitFrequency     string     `gorm:"size:32" json:"hit_frequency"`
	MaxWin           string     `gorm:"size:64" json:"max_win"`
	FreeSpinsTrigger string     `gorm:"size:255" json:"free_spins_trigger"`
	Reels            string     `gorm:"size:32" json:"reels"`
	MinBet           float64    `json:"min_bet"`
	MaxBet           float64    `json:"max_bet"`
	ReleaseDate      *time.Time `json:"release_date,omitempty"`
	EarlyAccessDate  *time.Time `json:"early_access_date,omitempty"`
	IsAvailable      bool       `gorm:"not null;default:false;index" json:"is_available"`
	Feature          string     `gorm:"size:64" json:"feature"`
}
