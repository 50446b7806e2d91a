package memstore

import (
	"context"
	"gestor-turnos/apperrors"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"
	turnoService "gestor-turnos/services/turno"
	"time"
)

// Turnos implements the turno service store.
type Turnos struct {
	db *DB
	tx *state
}

func (t *Turnos) Transaction(ctx context.Context, fn func(tx turnoService.Store) error) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	if t.tx != nil {
		return fn(t)
	}
	return t.db.transaction(func(s *state) error {
		return fn(&Turnos{db: t.db, tx: s})
	})
}

func (t *Turnos) FindClub(ctx context.Context, id uint) (*clubModel.Club, error) {
	var out *clubModel.Club
	err := t.db.with(t.tx, func(s *state) error {
		var err error
		out, err = s.findClub(id)
		return err
	})
	return out, err
}

func (t *Turnos) FindCancha(ctx context.Context, id uint) (*canchaModel.Cancha, error) {
	var out *canchaModel.Cancha
	err := t.db.with(t.tx, func(s *state) error {
		c, ok := s.canchas[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (t *Turnos) FindCanchaByNumero(ctx context.Context, clubID uint, numero int) (*canchaModel.Cancha, error) {
	var out *canchaModel.Cancha
	err := t.db.with(t.tx, func(s *state) error {
		for _, c := range s.canchas {
			if c.ClubID == clubID && c.Numero == numero {
				found := c
				out = &found
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	return out, err
}

func (t *Turnos) FindCaddie(ctx context.Context, id uint) (*staffModel.Caddie, error) {
	var out *staffModel.Caddie
	err := t.db.with(t.tx, func(s *state) error {
		c, ok := s.caddies[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &c
		return nil
	})
	return out, err
}

func (t *Turnos) FindBoleador(ctx context.Context, id uint) (*staffModel.Boleador, error) {
	var out *staffModel.Boleador
	err := t.db.with(t.tx, func(s *state) error {
		b, ok := s.boleadores[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (t *Turnos) CreateTurno(ctx context.Context, turno *turnoModel.Turno) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return t.db.with(t.tx, func(s *state) error {
		turno.ID = s.nextID()
		turno.CreatedAt = t.db.now()
		turno.UpdatedAt = turno.CreatedAt
		stored := *turno
		stored.Cancha, stored.Caddie, stored.Boleador = nil, nil, nil
		s.turnos[turno.ID] = stored
		return nil
	})
}

func (t *Turnos) FindTurno(ctx context.Context, id uint, forUpdate bool) (*turnoModel.Turno, error) {
	var out *turnoModel.Turno
	err := t.db.with(t.tx, func(s *state) error {
		stored, ok := s.turnos[id]
		if !ok {
			return apperrors.ErrNotFound
		}
		loaded := s.loadTurno(stored)
		out = &loaded
		return nil
	})
	return out, err
}

func (t *Turnos) SaveTurno(ctx context.Context, turno *turnoModel.Turno) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	return t.db.with(t.tx, func(s *state) error {
		if _, ok := s.turnos[turno.ID]; !ok {
			return apperrors.ErrNotFound
		}
		turno.UpdatedAt = t.db.now()
		stored := *turno
		stored.Cancha, stored.Caddie, stored.Boleador = nil, nil, nil
		s.turnos[turno.ID] = stored
		return nil
	})
}

func (t *Turnos) ListTurnosForDay(ctx context.Context, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	var out []turnoModel.Turno
	err := t.db.with(t.tx, func(s *state) error {
		out = s.listTurnosForDay(clubID, desde, hasta)
		return nil
	})
	return out, err
}

func (t *Turnos) CreateStatusEvent(ctx context.Context, ev *turnoModel.TurnoStatusEvent) error {
	return t.db.with(t.tx, func(s *state) error {
		ev.ID = s.nextID()
		ev.CreatedAt = t.db.now()
		s.events = append(s.events, *ev)
		return nil
	})
}
