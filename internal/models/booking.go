package models

import "time"

type Booking struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	RoomID     int       `gorm:"not null" json:"room_id"`
	CustomerID int       `gorm:"not null" json:"customer_id"`
	StartDate  time.Time `gorm:"not null" json:"start_date"`
	EndDate    time.Time `gorm:"not null" json:"end_date"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Room     *Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BookingRequest is the creation payload. It is never persisted; the room is
// resolved by the engine and the id assigned by the store.
type BookingRequest struct {
	CustomerID int
	StartDate  time.Time
	EndDate    time.Time
}
