package model

import "time"

// SchemaVersion records each applied schema migration
type SchemaVersion struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"type:varchar(20);not null;index"`
	AppliedAt time.Time `gorm:"not null"`
	Details   string    `gorm:"type:text"`
}

func (SchemaVersion) TableName() string {
	return "schema_versions"
}
