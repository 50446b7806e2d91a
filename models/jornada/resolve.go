package jornada

import (
	"gestor-turnos/apperrors"
	canchaModel "gestor-turnos/models/cancha"
	turnoModel "gestor-turnos/models/turno"
)

// CanchaIndex looks up a club's courts by id and by legacy slot number.
type CanchaIndex struct {
	byID     map[uint]*canchaModel.Cancha
	byNumero map[int]*canchaModel.Cancha
}

func NewCanchaIndex(canchas []canchaModel.Cancha) CanchaIndex {
	idx := CanchaIndex{
		byID:     make(map[uint]*canchaModel.Cancha, len(canchas)),
		byNumero: make(map[int]*canchaModel.Cancha, len(canchas)),
	}
	for i := range canchas {
		c := &canchas[i]
		idx.byID[c.ID] = c
		idx.byNumero[c.Numero] = c
	}
	return idx
}

// Resolve returns the court of t. The foreign key and the legacy slot must
// agree when both resolve; a turno with neither is a data integrity error.
func (idx CanchaIndex) Resolve(t *turnoModel.Turno) (*canchaModel.Cancha, error) {
	var byFK, bySlot *canchaModel.Cancha
	if t.CanchaID != nil {
		byFK = idx.byID[*t.CanchaID]
	}
	if t.NumeroCancha != nil {
		bySlot = idx.byNumero[*t.NumeroCancha]
	}

	switch {
	case byFK != nil && bySlot != nil && byFK.ID != bySlot.ID:
		return nil, &apperrors.DataIntegrityError{
			TurnoID: t.ID,
			Message: "cancha_id and numero_cancha name different courts",
		}
	case byFK != nil:
		return byFK, nil
	case bySlot != nil:
		return bySlot, nil
	}
	return nil, &apperrors.DataIntegrityError{
		TurnoID: t.ID,
		Message: "court is not resolvable from cancha_id or numero_cancha",
	}
}
