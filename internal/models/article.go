package models

import (
	"time"

	"gorm.io/datatypes"
)

// Article is a news entry ("actualité") addressed by id or slug.
type Article struct {
	BaseModel
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Slug      string                      `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Excerpt   string                      `gorm:"type:text;not null" json:"excerpt"`
	Content   string                      `gorm:"type:text;not null" json:"content"`
	Image     *string                     `gorm:"size:512" json:"image"`
	Video     *string                     `gorm:"size:512" json:"video"`
	Author    string                      `gorm:"size:128;not null" json:"author"`
	Category  string                      `gorm:"size:128;not null;index" json:"category"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
	Published bool                        `gorm:"not null;index" json:"published"`
	Date      time.Time                   `gorm:"index" json:"date"`
}
