package staff

import "gestor-turnos/types"

type StoreStaffRequest struct {
	Nombre           string   `json:"nombre" validate:"required,min=1,max=150"`
	Telefono         *string  `json:"telefono" validate:"omitempty,max=20"`
	Email            *string  `json:"email" validate:"omitempty,email"`
	Nivel            *string  `json:"nivel" validate:"omitempty,max=50"`
	ExperienciaAnios int      `json:"experiencia_anios" validate:"min=0,max=80"`
	TarifaHora       *float64 `json:"tarifa_hora" validate:"omitempty,min=0"`
}

func (req *StoreStaffRequest) Validate() error {
	return types.ValidateStruct(req)
}

// UpdateStaffRequest edits a profile. Nil fields are left unchanged.
type UpdateStaffRequest struct {
	Nombre         *string  `json:"nombre" validate:"omitempty,min=1,max=150"`
	Telefono       *string  `json:"telefono" validate:"omitempty,max=20"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Nivel          *string  `json:"nivel" validate:"omitempty,max=50"`
	TarifaHora     *float64 `json:"tarifa_hora" validate:"omitempty,min=0"`
	Disponibilidad *string  `json:"disponibilidad" validate:"omitempty,oneof=disponible asignado no_disponible"`
	Activo         *bool    `json:"activo"`
}

func (req *UpdateStaffRequest) Validate() error {
	return types.ValidateStruct(req)
}
