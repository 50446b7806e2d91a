package turno

import (
	"time"
)

// TurnoStatusEvent records one estado change of a turno.
type TurnoStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	TurnoID uint `gorm:"not null;index" json:"turno_id"`

	From      Estado    `gorm:"column:from_estado;size:20;not null" json:"from"`
	To        Estado    `gorm:"column:to_estado;size:20;not null" json:"to"`
	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the TurnoStatusEvent model
func (TurnoStatusEvent) TableName() string {
	return "turno_status_events"
}
