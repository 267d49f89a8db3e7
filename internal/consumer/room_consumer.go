package consumer

import (
	"encoding/json"
	"log"

	"github.com/mkrogh/hotel-booking-service/internal/metrics"
	"github.com/mkrogh/hotel-booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomConsumer keeps the local room inventory in sync with the property
// service, which owns rooms and broadcasts room.* messages.
type RoomConsumer struct {
	db *gorm.DB
}

func NewRoomConsumer(db *gorm.DB) *RoomConsumer {
	return &RoomConsumer{db: db}
}

// Start listens for messages and upserts rooms into the local booking DB.
func (rc *RoomConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			rc.handleMessage(msg)
		}
		log.Println("[RoomConsumer] channel closed, stopping consumer")
	}()
}

func (rc *RoomConsumer) handleMessage(msg amqp.Delivery) {
	var room models.Room
	if err := json.Unmarshal(msg.Body, &room); err != nil {
		log.Printf("[RoomConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	// Upsert: insert or update on conflict (same ID from the property service)
	result := rc.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(&room)

	if result.Error != nil {
		log.Printf("[RoomConsumer] failed to upsert room %d: %v", room.ID, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	metrics.RecordRoomSync()
	log.Printf("[RoomConsumer] synced room %d: %s", room.ID, room.Description)
	msg.Ack(false)
}
