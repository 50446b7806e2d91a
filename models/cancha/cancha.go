package cancha

import "time"

// Cancha is a bookable court. Numero is the club-local slot number that
// legacy bookings used instead of a foreign key.
type Cancha struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID    uint      `gorm:"not null;uniqueIndex:uq_canchas_club_numero" json:"club_id"`
	Nombre    string    `gorm:"type:varchar(255);not null" json:"nombre"`
	Numero    int       `gorm:"not null;uniqueIndex:uq_canchas_club_numero" json:"numero"`
	Tipo      string    `gorm:"type:varchar(50)" json:"tipo"`
	Activa    bool      `gorm:"default:true" json:"activa"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
