package club

import "time"

// Club is the tenant root. Courts and staff belong to exactly one club.
type Club struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nombre    string    `gorm:"type:varchar(255);not null;unique" json:"nombre"`
	Direccion *string   `gorm:"type:text" json:"direccion,omitempty"`
	Activo    bool      `gorm:"default:true" json:"activo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
