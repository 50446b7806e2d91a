package staff

import "time"

// Disponibilidad is the availability state of a staff member.
type Disponibilidad string

const (
	DisponibilidadDisponible   Disponibilidad = "disponible"
	DisponibilidadAsignado     Disponibilidad = "asignado"
	DisponibilidadNoDisponible Disponibilidad = "no_disponible"
)

func (d Disponibilidad) IsValid() bool {
	switch d {
	case DisponibilidadDisponible, DisponibilidadAsignado, DisponibilidadNoDisponible:
		return true
	default:
		return false
	}
}

// Perfil holds the fields shared by caddies and boleadores.
type Perfil struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClubID           uint           `gorm:"not null;index" json:"club_id"`
	Nombre           string         `gorm:"type:varchar(255);not null" json:"nombre"`
	Telefono         *string        `gorm:"type:varchar(20)" json:"telefono,omitempty"`
	Email            *string        `gorm:"type:varchar(255)" json:"email,omitempty"`
	Nivel            string         `gorm:"type:varchar(50)" json:"nivel"`
	ExperienciaAnios int            `gorm:"default:0" json:"experiencia_anios"`
	TarifaHora       float64        `gorm:"type:numeric(10,2);default:0" json:"tarifa_hora"`
	Disponibilidad   Disponibilidad `gorm:"type:varchar(20);not null;default:disponible" json:"disponibilidad"`
	Activo           bool           `gorm:"default:true" json:"activo"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// Assignable reports whether the staff member can be put on a turno.
func (p Perfil) Assignable() bool {
	return p.Activo && p.Disponibilidad != DisponibilidadNoDisponible
}

type Caddie struct {
	Perfil
}

func (Caddie) TableName() string {
	return "caddies"
}

type Boleador struct {
	Perfil
}

func (Boleador) TableName() string {
	return "boleadores"
}
