package turno

import (
	"context"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"
	"time"
)

// Store is the persistence the turno service needs. Single-row lookups
// return apperrors.ErrNotFound when the row does not exist.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	FindClub(ctx context.Context, id uint) (*clubModel.Club, error)
	FindCancha(ctx context.Context, id uint) (*canchaModel.Cancha, error)
	FindCanchaByNumero(ctx context.Context, clubID uint, numero int) (*canchaModel.Cancha, error)
	FindCaddie(ctx context.Context, id uint) (*staffModel.Caddie, error)
	FindBoleador(ctx context.Context, id uint) (*staffModel.Boleador, error)

	CreateTurno(ctx context.Context, t *turnoModel.Turno) error
	// FindTurno loads a turno with its court and staff. With forUpdate the
	// row stays locked until the surrounding transaction ends.
	FindTurno(ctx context.Context, id uint, forUpdate bool) (*turnoModel.Turno, error)
	SaveTurno(ctx context.Context, t *turnoModel.Turno) error
	ListTurnosForDay(ctx context.Context, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error)

	CreateStatusEvent(ctx context.Context, ev *turnoModel.TurnoStatusEvent) error
}
