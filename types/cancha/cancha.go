package cancha

import "gestor-turnos/types"

type StoreCanchaRequest struct {
	Numero int    `json:"numero" validate:"required,min=1"`
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
	Tipo   string `json:"tipo" validate:"omitempty,max=50"`
}

func (req *StoreCanchaRequest) Validate() error {
	return types.ValidateStruct(req)
}
