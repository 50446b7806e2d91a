package jornada

// Discrepancy is one difference between the ledger and the archived
// snapshot of a day. TurnoID is 0 for day-level differences.
type Discrepancy struct {
	TurnoID       uint   `json:"turno_id"`
	Field         string `json:"field"`
	LedgerValue   string `json:"ledger_value"`
	SnapshotValue string `json:"snapshot_value"`
}

const (
	FieldTotalTurnos = "totalTurnos"
	FieldDatosTurnos = "datosTurnos"
	FieldTurno       = "turno"
)
