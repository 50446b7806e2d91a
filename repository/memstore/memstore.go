// Package memstore is an in-memory implementation of the service stores.
// Transactions work on a copy of the data that replaces the original only
// when the callback succeeds, so partial writes are never visible.
package memstore

import (
	"context"
	"gestor-turnos/apperrors"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	jornadaModel "gestor-turnos/models/jornada"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"
	"slices"
	"sync"
	"time"
)

type state struct {
	seq        uint
	clubs      map[uint]clubModel.Club
	canchas    map[uint]canchaModel.Cancha
	caddies    map[uint]staffModel.Caddie
	boleadores map[uint]staffModel.Boleador
	turnos     map[uint]turnoModel.Turno
	snapshots  map[uint]jornadaModel.JornadaTurnos
	events     []turnoModel.TurnoStatusEvent
}

func newState() *state {
	return &state{
		clubs:      map[uint]clubModel.Club{},
		canchas:    map[uint]canchaModel.Cancha{},
		caddies:    map[uint]staffModel.Caddie{},
		boleadores: map[uint]staffModel.Boleador{},
		turnos:     map[uint]turnoModel.Turno{},
		snapshots:  map[uint]jornadaModel.JornadaTurnos{},
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:        s.seq,
		clubs:      make(map[uint]clubModel.Club, len(s.clubs)),
		canchas:    make(map[uint]canchaModel.Cancha, len(s.canchas)),
		caddies:    make(map[uint]staffModel.Caddie, len(s.caddies)),
		boleadores: make(map[uint]staffModel.Boleador, len(s.boleadores)),
		turnos:     make(map[uint]turnoModel.Turno, len(s.turnos)),
		snapshots:  make(map[uint]jornadaModel.JornadaTurnos, len(s.snapshots)),
		events:     slices.Clone(s.events),
	}
	for k, v := range s.clubs {
		c.clubs[k] = v
	}
	for k, v := range s.canchas {
		c.canchas[k] = v
	}
	for k, v := range s.caddies {
		c.caddies[k] = v
	}
	for k, v := range s.boleadores {
		c.boleadores[k] = v
	}
	for k, v := range s.turnos {
		c.turnos[k] = v
	}
	for k, v := range s.snapshots {
		v.DatosTurnos = slices.Clone(v.DatosTurnos)
		c.snapshots[k] = v
	}
	return c
}

func (s *state) nextID() uint {
	s.seq++
	return s.seq
}

// DB holds the data shared by the Jornadas and Turnos stores.
type DB struct {
	mu  sync.Mutex
	cur *state
	now func() time.Time
}

func New() *DB {
	return &DB{cur: newState(), now: time.Now}
}

// Jornadas returns a store for the jornada service.
func (db *DB) Jornadas() *Jornadas { return &Jornadas{db: db} }

// Turnos returns a store for the turno service.
func (db *DB) Turnos() *Turnos { return &Turnos{db: db} }

// with runs fn against tx when inside a transaction, else under the lock.
func (db *DB) with(tx *state, fn func(s *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(db.cur)
}

// transaction serializes transactions and commits the copy on success.
func (db *DB) transaction(fn func(s *state) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	work := db.cur.clone()
	if err := fn(work); err != nil {
		return err
	}
	db.cur = work
	return nil
}

// AddClub inserts a club and returns its id.
func (db *DB) AddClub(c clubModel.Club) uint {
	db.mu.Lock()
	defer db.mu.Unlock()
	c.ID = db.cur.nextID()
	db.cur.clubs[c.ID] = c
	return c.ID
}

func (db *DB) AddCancha(c canchaModel.Cancha) uint {
	db.mu.Lock()
	defer db.mu.Unlock()
	c.ID = db.cur.nextID()
	db.cur.canchas[c.ID] = c
	return c.ID
}

func (db *DB) AddCaddie(c staffModel.Caddie) uint {
	db.mu.Lock()
	defer db.mu.Unlock()
	c.ID = db.cur.nextID()
	db.cur.caddies[c.ID] = c
	return c.ID
}

func (db *DB) AddBoleador(b staffModel.Boleador) uint {
	db.mu.Lock()
	defer db.mu.Unlock()
	b.ID = db.cur.nextID()
	db.cur.boleadores[b.ID] = b
	return b.ID
}

// AddTurno inserts a turno as is, bypassing the service rules. Tests use
// it to plant rows that break ledger invariants.
func (db *DB) AddTurno(t turnoModel.Turno) uint {
	db.mu.Lock()
	defer db.mu.Unlock()
	t.ID = db.cur.nextID()
	t.Cancha, t.Caddie, t.Boleador = nil, nil, nil
	db.cur.turnos[t.ID] = t
	return t.ID
}

// UpdateTurno applies fn to a stored turno outside any service rule.
func (db *DB) UpdateTurno(id uint, fn func(t *turnoModel.Turno)) {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, ok := db.cur.turnos[id]
	if !ok {
		return
	}
	fn(&t)
	db.cur.turnos[id] = t
}

// UpdateSnapshot edits a stored snapshot in place, bypassing the service.
func (db *DB) UpdateSnapshot(id uint, fn func(s *jornadaModel.JornadaTurnos)) {
	db.mu.Lock()
	defer db.mu.Unlock()
	s, ok := db.cur.snapshots[id]
	if !ok {
		return
	}
	fn(&s)
	db.cur.snapshots[id] = s
}

// DeleteCaddie removes a caddie and clears it from turnos, like the
// ON DELETE SET NULL foreign key does.
func (db *DB) DeleteCaddie(id uint) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.cur.caddies, id)
	for k, t := range db.cur.turnos {
		if t.CaddieID != nil && *t.CaddieID == id {
			t.CaddieID = nil
			db.cur.turnos[k] = t
		}
	}
}

// Snapshots returns every stored snapshot ordered by id.
func (db *DB) Snapshots() []jornadaModel.JornadaTurnos {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]jornadaModel.JornadaTurnos, 0, len(db.cur.snapshots))
	for _, s := range db.cur.snapshots {
		s.DatosTurnos = slices.Clone(s.DatosTurnos)
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b jornadaModel.JornadaTurnos) int { return int(a.ID) - int(b.ID) })
	return out
}

// StatusEvents returns the recorded estado changes.
func (db *DB) StatusEvents() []turnoModel.TurnoStatusEvent {
	db.mu.Lock()
	defer db.mu.Unlock()
	return slices.Clone(db.cur.events)
}

// loadTurno fills the associations the gorm store would preload.
func (s *state) loadTurno(t turnoModel.Turno) turnoModel.Turno {
	t.Cancha, t.Caddie, t.Boleador = nil, nil, nil
	if t.CanchaID != nil {
		if c, ok := s.canchas[*t.CanchaID]; ok {
			t.Cancha = &c
		}
	}
	if t.CaddieID != nil {
		if c, ok := s.caddies[*t.CaddieID]; ok {
			t.Caddie = &c
		}
	}
	if t.BoleadorID != nil {
		if b, ok := s.boleadores[*t.BoleadorID]; ok {
			t.Boleador = &b
		}
	}
	return t
}

func (s *state) listTurnosForDay(clubID uint, desde, hasta time.Time) []turnoModel.Turno {
	var out []turnoModel.Turno
	for _, t := range s.turnos {
		if t.ClubID != clubID || t.HoraInicio.Before(desde) || !t.HoraInicio.Before(hasta) {
			continue
		}
		out = append(out, s.loadTurno(t))
	}
	slices.SortFunc(out, func(a, b turnoModel.Turno) int {
		if c := a.HoraInicio.Compare(b.HoraInicio); c != 0 {
			return c
		}
		return int(a.ID) - int(b.ID)
	})
	return out
}

func (s *state) findClub(id uint) (*clubModel.Club, error) {
	c, ok := s.clubs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &apperrors.StoreError{Op: "context", Err: err}
	}
	return nil
}
