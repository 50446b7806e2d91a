package memstore

import (
	"context"
	"gestor-turnos/apperrors"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	jornadaModel "gestor-turnos/models/jornada"
	turnoModel "gestor-turnos/models/turno"
	jornadaService "gestor-turnos/services/jornada"
	"slices"
	"strings"
	"time"
)

// Jornadas implements the jornada service store.
type Jornadas struct {
	db *DB
	tx *state
}

func (j *Jornadas) Transaction(ctx context.Context, fn func(tx jornadaService.Store) error) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if j.tx != nil {
		return fn(j)
	}
	return j.db.transaction(func(s *state) error {
		return fn(&Jornadas{db: j.db, tx: s})
	})
}

func (j *Jornadas) FindClub(ctx context.Context, clubID uint) (*clubModel.Club, error) {
	var out *clubModel.Club
	err := j.db.with(j.tx, func(s *state) error {
		var err error
		out, err = s.findClub(clubID)
		return err
	})
	return out, err
}

func (j *Jornadas) ListCanchas(ctx context.Context, clubID uint) ([]canchaModel.Cancha, error) {
	var out []canchaModel.Cancha
	err := j.db.with(j.tx, func(s *state) error {
		for _, c := range s.canchas {
			if c.ClubID == clubID {
				out = append(out, c)
			}
		}
		slices.SortFunc(out, func(a, b canchaModel.Cancha) int { return a.Numero - b.Numero })
		return nil
	})
	return out, err
}

func (j *Jornadas) ListTurnosForDay(ctx context.Context, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out []turnoModel.Turno
	err := j.db.with(j.tx, func(s *state) error {
		out = s.listTurnosForDay(clubID, desde, hasta)
		return nil
	})
	return out, err
}

func (j *Jornadas) AttachTurnos(ctx context.Context, turnoIDs []uint, jornadaID uint) error {
	return j.db.with(j.tx, func(s *state) error {
		for _, id := range turnoIDs {
			t, ok := s.turnos[id]
			if !ok {
				continue
			}
			jid := jornadaID
			t.JornadaID = &jid
			s.turnos[id] = t
		}
		return nil
	})
}

func (j *Jornadas) FindSnapshot(ctx context.Context, id uint) (*jornadaModel.JornadaTurnos, error) {
	var out *jornadaModel.JornadaTurnos
	err := j.db.with(j.tx, func(s *state) error {
		snap, ok := s.snapshots[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		snap.DatosTurnos = slices.Clone(snap.DatosTurnos)
		out = &snap
		return nil
	})
	return out, err
}

func (j *Jornadas) FindSnapshotByFecha(ctx context.Context, clubID uint, fecha string) (*jornadaModel.JornadaTurnos, error) {
	return j.findSnapshot(func(snap jornadaModel.JornadaTurnos) bool {
		return snap.ClubID == clubID && snap.FechaKey() == fecha
	})
}

func (j *Jornadas) FindActiveSnapshot(ctx context.Context, clubID uint) (*jornadaModel.JornadaTurnos, error) {
	return j.findSnapshot(func(snap jornadaModel.JornadaTurnos) bool {
		return snap.ClubID == clubID && snap.Activa
	})
}

func (j *Jornadas) findSnapshot(match func(jornadaModel.JornadaTurnos) bool) (*jornadaModel.JornadaTurnos, error) {
	var out *jornadaModel.JornadaTurnos
	err := j.db.with(j.tx, func(s *state) error {
		for _, snap := range s.snapshots {
			if !match(snap) {
				continue
			}
			if out == nil || snap.ID > out.ID {
				found := snap
				found.DatosTurnos = slices.Clone(snap.DatosTurnos)
				out = &found
			}
		}
		if out == nil {
			return apperrors.ErrNotFound
		}
		return nil
	})
	return out, err
}

func (j *Jornadas) ListSnapshots(ctx context.Context, clubID uint) ([]jornadaModel.JornadaTurnos, error) {
	var out []jornadaModel.JornadaTurnos
	err := j.db.with(j.tx, func(s *state) error {
		for _, snap := range s.snapshots {
			if snap.ClubID == clubID {
				snap.DatosTurnos = slices.Clone(snap.DatosTurnos)
				out = append(out, snap)
			}
		}
		slices.SortFunc(out, func(a, b jornadaModel.JornadaTurnos) int {
			if c := strings.Compare(b.FechaKey(), a.FechaKey()); c != 0 {
				return c
			}
			return int(b.ID) - int(a.ID)
		})
		return nil
	})
	return out, err
}

func (j *Jornadas) DeactivateSnapshots(ctx context.Context, clubID uint, updatedBy string) error {
	return j.db.with(j.tx, func(s *state) error {
		for id, snap := range s.snapshots {
			if snap.ClubID == clubID && snap.Activa {
				snap.Activa = false
				snap.UpdatedBy = updatedBy
				snap.UpdatedAt = j.db.now()
				s.snapshots[id] = snap
			}
		}
		return nil
	})
}

// CreateSnapshot enforces the same unique indexes as the schema:
// (club_id, fecha) and one active row per club.
func (j *Jornadas) CreateSnapshot(ctx context.Context, snap *jornadaModel.JornadaTurnos) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return j.db.with(j.tx, func(s *state) error {
		for _, other := range s.snapshots {
			if other.ClubID != snap.ClubID {
				continue
			}
			if other.FechaKey() == snap.FechaKey() || (other.Activa && snap.Activa) {
				return apperrors.ErrDuplicateSnapshot
			}
		}
		snap.ID = s.nextID()
		snap.CreatedAt = j.db.now()
		snap.UpdatedAt = snap.CreatedAt
		stored := *snap
		stored.DatosTurnos = slices.Clone(snap.DatosTurnos)
		s.snapshots[snap.ID] = stored
		return nil
	})
}
