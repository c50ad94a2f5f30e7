package models

import "time"

const (
	DefaultPromotionCTAText = "Nous contacter"
	DefaultPromotionCTALink = "/contact"
)

// Promotion is a time boxed banner. At most one active promotion is shown.
type Promotion struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Image       *string    `gorm:"size:512" json:"image"`
	Icon        *string    `gorm:"size:128" json:"icon"`
	CTAText     string     `gorm:"column:cta_text;size:128;not null" json:"cta_text"`
	CTALink     string     `gorm:"column:cta_link;size:512;not null" json:"cta_link"`
	Active      bool       `gorm:"not null;index" json:"active"`
	StartDate   *time.Time `gorm:"index" json:"start_date"`
	EndDate     *time.Time `gorm:"index" json:"end_date"`
}

// LiveAt reports whether the promotion should be displayed at t.
func (p Promotion) LiveAt(t time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartDate != nil && p.StartDate.After(t) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(t) {
		return false
	}
	return true
}
