package club

import "gestor-turnos/types"

type StoreClubRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=1,max=150"`
	Direccion *string `json:"direccion" validate:"omitempty,max=255"`
}

func (req *StoreClubRequest) Validate() error {
	return types.ValidateStruct(req)
}
