package setting

import "time"

// Setting is the persisted configuration row, keyed by code.
type Setting struct {
	Code      string `gorm:"type:varchar(64);primary_key"`
	Value     string `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
