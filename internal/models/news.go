package models

// News is an article drafted unpublished and published by an admin.
type News struct {
	Base
	Title     string `gorm:"size:255;not null" json:"title"`
	Content   string `gorm:"type:text" json:"content"`
	Excerpt   string `gorm:"size:512" json:"excerpt"`
	ImageURL  string `gorm:"size:1024" json:"image_url"`
	Author    string `gorm:"size:255" json:"author"`
	Published bool   `gorm:"not null;default:false;index" json:"published"`
}

// TableName keeps the singular table name used by the hosted backend.
func (News) TableName() string { return "news" }
