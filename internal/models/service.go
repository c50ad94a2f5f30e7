package models

import "gorm.io/datatypes"

// Service is an offering of the agency listed on the public site.
type Service struct {
	BaseModel
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Image       *string                     `gorm:"size:512" json:"image"`
	Features    datatypes.JSONSlice[string] `json:"features"`
}
