package models

// Role is a master record naming what an account may do.
type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null;unique"`
	Description string `gorm:"size:255"`
}
