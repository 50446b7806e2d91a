package turno

import (
	canchaModel "gestor-turnos/models/cancha"
	staffModel "gestor-turnos/models/staff"
	"time"
)

// Turno is a single booking in the ledger.
//
// CanchaID is the resolved court, set when the turno is written or moved.
// NumeroCancha keeps the slot number a legacy client sent, if any. A
// reassign moves it to the new court's numero, and closeout cross-checks it
// against CanchaID: a mismatch is a data integrity error.
type Turno struct {
	ID     uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID uint `gorm:"not null;index:idx_turnos_club_hora" json:"club_id"`

	CanchaID     *uint               `gorm:"index" json:"cancha_id"`
	Cancha       *canchaModel.Cancha `gorm:"foreignKey:CanchaID" json:"cancha,omitempty"`
	NumeroCancha *int                `gorm:"column:numero_cancha" json:"numero_cancha,omitempty"`

	Estado        Estado     `gorm:"type:varchar(20);not null;default:pendiente;index" json:"estado"`
	ClienteNombre string     `gorm:"type:varchar(255);not null" json:"cliente_nombre"`
	HoraInicio    time.Time  `gorm:"not null;index:idx_turnos_club_hora" json:"hora_inicio"`
	HoraFin       *time.Time `json:"hora_fin,omitempty"`

	CaddieID   *uint                `gorm:"index" json:"caddie_id"`
	Caddie     *staffModel.Caddie   `gorm:"foreignKey:CaddieID" json:"caddie,omitempty"`
	BoleadorID *uint                `gorm:"index" json:"boleador_id"`
	Boleador   *staffModel.Boleador `gorm:"foreignKey:BoleadorID" json:"boleador,omitempty"`

	// JornadaID points at the snapshot that archived this turno.
	JornadaID *uint `gorm:"index" json:"jornada_id,omitempty"`

	Observaciones *string   `gorm:"type:text" json:"observaciones,omitempty"`
	CreatedBy     string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy     string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
