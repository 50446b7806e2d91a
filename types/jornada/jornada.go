package jornada

import (
	jornadaModel "gestor-turnos/models/jornada"
	"gestor-turnos/types"
)

type CloseoutRequest struct {
	Fecha         string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	Nombre        string  `json:"nombre" validate:"omitempty,max=150"`
	Observaciones *string `json:"observaciones" validate:"omitempty,max=500"`
}

func (req *CloseoutRequest) Validate() error {
	return types.ValidateStruct(req)
}

// ReconcileResponse lists the differences between ledger and snapshot.
type ReconcileResponse struct {
	ClubID        uint                       `json:"club_id"`
	Fecha         string                     `json:"fecha"`
	Consistent    bool                       `json:"consistent"`
	Discrepancies []jornadaModel.Discrepancy `json:"discrepancies"`
}
