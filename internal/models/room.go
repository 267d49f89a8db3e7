package models

// Room ids are assigned by hotel administration, not generated by this service.
type Room struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Description string `json:"description"`
}
