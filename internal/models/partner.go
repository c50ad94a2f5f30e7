package models

// Partner is a client or partner logo shown on the site. Names are unique.
type Partner struct {
	BaseModel
	Name    string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Logo    string  `gorm:"size:512;not null" json:"logo"`
	Website *string `gorm:"size:512" json:"website"`
}
