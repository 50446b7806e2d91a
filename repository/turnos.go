package repository

import (
	"context"
	turnoModel "gestor-turnos/models/turno"
	"time"

	"gorm.io/gorm"
)

// listTurnosForDay is shared by the jornada and turno repositories so both
// read the ledger the same way.
func listTurnosForDay(ctx context.Context, db *gorm.DB, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error) {
	var out []turnoModel.Turno
	err := db.WithContext(ctx).
		Preload("Cancha").
		Preload("Caddie").
		Preload("Boleador").
		Where("club_id = ? AND hora_inicio >= ? AND hora_inicio < ?", clubID, desde, hasta).
		Order("hora_inicio ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, Translate("list turnos", err)
	}
	return out, nil
}
