package jornada

import (
	"time"

	"gorm.io/datatypes"
)

// SchemaVersion is the version of the datos_turnos document written today.
// Bump it whenever a key of TurnoResumen is renamed or removed.
const SchemaVersion = 1

// JornadaTurnos is the archived snapshot of one operating day of a club.
// TotalTurnos is redundant with len(DatosTurnos) and is kept for readers
// that do not parse the document.
type JornadaTurnos struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID uint      `gorm:"not null;uniqueIndex:uq_jornadas_turnos_club_fecha" json:"club_id"`
	Fecha  time.Time `gorm:"type:date;not null;uniqueIndex:uq_jornadas_turnos_club_fecha" json:"fecha"`
	Nombre string    `gorm:"type:varchar(255);not null" json:"nombre"`

	DatosTurnos   datatypes.JSONSlice[TurnoResumen] `gorm:"column:datos_turnos;type:jsonb;not null" json:"datos_turnos"`
	TotalTurnos   int                               `gorm:"column:total_turnos;not null" json:"total_turnos"`
	SchemaVersion int                               `gorm:"not null;default:1" json:"schema_version"`

	Observaciones *string `gorm:"type:text" json:"observaciones,omitempty"`
	Activa        bool    `gorm:"not null;default:false;index" json:"activa"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JornadaTurnos) TableName() string {
	return "jornadas_turnos"
}

// FechaKey is the calendar day of the snapshot as YYYY-MM-DD.
func (j JornadaTurnos) FechaKey() string {
	return j.Fecha.Format(time.DateOnly)
}
