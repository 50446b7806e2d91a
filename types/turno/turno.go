package turno

import (
	"gestor-turnos/types"
	"time"
)

type StoreTurnoRequest struct {
	CanchaID      *uint      `json:"cancha_id" validate:"required_without=NumeroCancha"`
	NumeroCancha  *int       `json:"numero_cancha" validate:"omitempty,min=1"`
	ClienteNombre string     `json:"cliente_nombre" validate:"required,min=1,max=150"`
	HoraInicio    time.Time  `json:"hora_inicio" validate:"required"`
	HoraFin       *time.Time `json:"hora_fin"`
	CaddieID      *uint      `json:"caddie_id"`
	BoleadorID    *uint      `json:"boleador_id"`
	Observaciones *string    `json:"observaciones" validate:"omitempty,max=500"`
}

func (req *StoreTurnoRequest) Validate() error {
	return types.ValidateStruct(req)
}

type UpdateClienteRequest struct {
	ClienteNombre string  `json:"cliente_nombre" validate:"required,min=1,max=150"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=500"`
}

func (req *UpdateClienteRequest) Validate() error {
	return types.ValidateStruct(req)
}

type TransitionRequest struct {
	Estado string `json:"estado" validate:"required"`
}

func (req *TransitionRequest) Validate() error {
	return types.ValidateStruct(req)
}

// AssignStaffRequest sets the caddie or boleador; a null id clears it.
type AssignStaffRequest struct {
	ID *uint `json:"id"`
}

type ReassignCanchaRequest struct {
	CanchaID     *uint `json:"cancha_id" validate:"required_without=NumeroCancha"`
	NumeroCancha *int  `json:"numero_cancha" validate:"omitempty,min=1"`
}

func (req *ReassignCanchaRequest) Validate() error {
	return types.ValidateStruct(req)
}
