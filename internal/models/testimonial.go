package models

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Testimonial is a customer quote.
type Testimonial struct {
	BaseModel
	Name    string  `gorm:"size:255;not null" json:"name"`
	Role    string  `gorm:"size:255;not null" json:"role"`
	Company string  `gorm:"size:255;not null" json:"company"`
	Image   *string `gorm:"size:512" json:"image"`
	Content string  `gorm:"type:text;not null" json:"content"`
	Rating  int     `gorm:"not null" json:"rating"`
}

// NormaliseRating maps out of range ratings to DefaultRating.
func NormaliseRating(rating int) int {
	if rating < MinRating || rating > MaxRating {
		return DefaultRating
	}
	return rating
}
