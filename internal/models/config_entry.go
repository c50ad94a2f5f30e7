package models

import "gorm.io/datatypes"

// ConfigEntry stores one site configuration value (contact details, social
// links, hero texts...) as arbitrary JSON.
type ConfigEntry struct {
	BaseModel
	Key   string         `gorm:"size:128;not null;uniqueIndex" json:"key"`
	Value datatypes.JSON `gorm:"not null" json:"value"`
}

// TableName keeps the historical table name.
func (ConfigEntry) TableName() string {
	return "site_config"
}
