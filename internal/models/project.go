package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is a portfolio entry ("réalisation") addressed by id or slug.
type Project struct {
	BaseModel
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Slug        string                      `gorm:"size:160;not null;uniqueIndex" json:"slug"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Image       *string                     `gorm:"size:512" json:"image"`
	Video       *string                     `gorm:"size:512" json:"video"`
	Category    string                      `gorm:"size:128;not null;index" json:"category"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Date        time.Time                   `gorm:"index" json:"date"`
}

// AllProjectsCategory is the front-end filter value meaning "no filter".
const AllProjectsCategory = "Tous"
