package jornada

import (
	"context"
	clubModel "gestor-turnos/models/club"
	canchaModel "gestor-turnos/models/cancha"
	jornadaModel "gestor-turnos/models/jornada"
	turnoModel "gestor-turnos/models/turno"
	"time"
)

// Store is the persistence the jornada service needs. Lookups of a single
// row return apperrors.ErrNotFound when it does not exist; every other
// failure is an *apperrors.StoreError.
type Store interface {
	// Transaction runs fn in one store transaction. Nothing fn wrote is
	// visible if it returns an error.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	FindClub(ctx context.Context, clubID uint) (*clubModel.Club, error)
	ListCanchas(ctx context.Context, clubID uint) ([]canchaModel.Cancha, error)
	// ListTurnosForDay returns the turnos starting in [desde, hasta) with
	// Caddie and Boleador loaded, ordered by hora_inicio then id.
	ListTurnosForDay(ctx context.Context, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error)
	AttachTurnos(ctx context.Context, turnoIDs []uint, jornadaID uint) error

	FindSnapshot(ctx context.Context, id uint) (*jornadaModel.JornadaTurnos, error)
	FindSnapshotByFecha(ctx context.Context, clubID uint, fecha string) (*jornadaModel.JornadaTurnos, error)
	FindActiveSnapshot(ctx context.Context, clubID uint) (*jornadaModel.JornadaTurnos, error)
	ListSnapshots(ctx context.Context, clubID uint) ([]jornadaModel.JornadaTurnos, error)
	DeactivateSnapshots(ctx context.Context, clubID uint, updatedBy string) error
	// CreateSnapshot returns apperrors.ErrDuplicateSnapshot when a
	// uniqueness constraint rejects the row.
	CreateSnapshot(ctx context.Context, s *jornadaModel.JornadaTurnos) error
}
