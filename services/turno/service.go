package turno

import (
	"context"
	"errors"
	"fmt"
	"gestor-turnos/apperrors"
	"gestor-turnos/logger"
	canchaModel "gestor-turnos/models/cancha"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"
	"gestor-turnos/mq"
	"gestor-turnos/utils"
	"strings"
	"time"
)

// Service writes the booking ledger and enforces the estado machine.
type Service struct {
	store  Store
	loc    *time.Location
	events mq.EventPublisher
}

func NewService(store Store, loc *time.Location, events mq.EventPublisher) *Service {
	if events == nil {
		events = mq.Nop{}
	}
	return &Service{store: store, loc: loc, events: events}
}

// CreateInput describes a new turno. At least one of CanchaID and
// NumeroCancha is required.
type CreateInput struct {
	ClubID        uint
	CanchaID      *uint
	NumeroCancha  *int
	ClienteNombre string
	HoraInicio    time.Time
	HoraFin       *time.Time
	CaddieID      *uint
	BoleadorID    *uint
	Observaciones *string
	By            string
}

func (in CreateInput) validate() error {
	if in.ClubID == 0 {
		return apperrors.Validation("club_id", "is required")
	}
	if strings.TrimSpace(in.ClienteNombre) == "" {
		return apperrors.Validation("cliente_nombre", "is required")
	}
	if in.HoraInicio.IsZero() {
		return apperrors.Validation("hora_inicio", "is required")
	}
	if in.HoraFin != nil && !in.HoraFin.After(in.HoraInicio) {
		return apperrors.Validation("hora_fin", "must be after hora_inicio")
	}
	if in.CanchaID == nil && in.NumeroCancha == nil {
		return apperrors.Validation("cancha_id", "cancha_id or numero_cancha is required")
	}
	return nil
}

// Create books a court. The court is resolved once here and stored as
// cancha_id; numero_cancha is kept as sent.
func (s *Service) Create(ctx context.Context, in CreateInput) (*turnoModel.Turno, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var t *turnoModel.Turno
	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := tx.FindClub(ctx, in.ClubID); err != nil {
			return err
		}
		cancha, err := resolveCancha(ctx, tx, in.ClubID, in.CanchaID, in.NumeroCancha)
		if err != nil {
			return err
		}

		t = &turnoModel.Turno{
			ClubID:        in.ClubID,
			CanchaID:      &cancha.ID,
			Cancha:        cancha,
			NumeroCancha:  in.NumeroCancha,
			Estado:        turnoModel.EstadoPendiente,
			ClienteNombre: strings.TrimSpace(in.ClienteNombre),
			HoraInicio:    in.HoraInicio,
			HoraFin:       in.HoraFin,
			Observaciones: in.Observaciones,
			CreatedBy:     in.By,
			UpdatedBy:     in.By,
		}
		if in.CaddieID != nil {
			if err := assignCaddie(ctx, tx, t, *in.CaddieID); err != nil {
				return err
			}
		}
		if in.BoleadorID != nil {
			if err := assignBoleador(ctx, tx, t, *in.BoleadorID); err != nil {
				return err
			}
		}
		return tx.CreateTurno(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	logger.Success(fmt.Sprintf("Turno %d created on cancha %d for %s", t.ID, *t.CanchaID, t.ClienteNombre))
	s.publish(ctx, "turno.created", t)
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*turnoModel.Turno, error) {
	if id == 0 {
		return nil, apperrors.Validation("id", "is required")
	}
	return s.store.FindTurno(ctx, id, false)
}

// ListDay returns the turnos of a club starting on the given operating date.
func (s *Service) ListDay(ctx context.Context, clubID uint, fecha string) ([]turnoModel.Turno, error) {
	if clubID == 0 {
		return nil, apperrors.Validation("club_id", "is required")
	}
	dia, err := utils.ParseFecha(fecha, s.loc)
	if err != nil {
		return nil, err
	}
	desde, hasta := utils.DayBounds(dia)
	return s.store.ListTurnosForDay(ctx, clubID, desde, hasta)
}

// UpdateCliente edits client data. Allowed in every estado.
func (s *Service) UpdateCliente(ctx context.Context, id uint, nombre string, observaciones *string, by string) (*turnoModel.Turno, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, apperrors.Validation("cliente_nombre", "is required")
	}
	return s.mutate(ctx, id, by, "", func(tx Store, t *turnoModel.Turno) error {
		t.ClienteNombre = nombre
		if observaciones != nil {
			t.Observaciones = observaciones
		}
		return nil
	})
}

// Transition moves a turno to another estado and records the change.
func (s *Service) Transition(ctx context.Context, id uint, to turnoModel.Estado, by string) (*turnoModel.Turno, error) {
	if !to.IsValid() {
		return nil, apperrors.Validation("estado", "unknown estado %q", to)
	}

	var from turnoModel.Estado
	t, err := s.mutate(ctx, id, by, "", func(tx Store, t *turnoModel.Turno) error {
		from = t.Estado
		if !t.Estado.CanTransitionTo(to) {
			return &apperrors.InvalidStateTransition{TurnoID: t.ID, From: t.Estado.String(), Action: "transition to " + to.String()}
		}
		t.Estado = to
		return tx.CreateStatusEvent(ctx, &turnoModel.TurnoStatusEvent{
			TurnoID:   t.ID,
			From:      from,
			To:        to,
			CreatedBy: by,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(fmt.Sprintf("Turno %d moved from %s to %s by %s", t.ID, from, to, by))
	s.publish(ctx, "turno."+to.String(), t)
	return t, nil
}

// AssignCaddie sets or, with a nil id, clears the caddie of a turno.
func (s *Service) AssignCaddie(ctx context.Context, id uint, caddieID *uint, by string) (*turnoModel.Turno, error) {
	action := "unassign caddie"
	if caddieID != nil {
		action = "assign caddie"
	}
	return s.mutate(ctx, id, by, action, func(tx Store, t *turnoModel.Turno) error {
		if caddieID == nil {
			t.CaddieID = nil
			t.Caddie = nil
			return nil
		}
		return assignCaddie(ctx, tx, t, *caddieID)
	})
}

// AssignBoleador sets or, with a nil id, clears the boleador of a turno.
func (s *Service) AssignBoleador(ctx context.Context, id uint, boleadorID *uint, by string) (*turnoModel.Turno, error) {
	action := "unassign boleador"
	if boleadorID != nil {
		action = "assign boleador"
	}
	return s.mutate(ctx, id, by, action, func(tx Store, t *turnoModel.Turno) error {
		if boleadorID == nil {
			t.BoleadorID = nil
			t.Boleador = nil
			return nil
		}
		return assignBoleador(ctx, tx, t, *boleadorID)
	})
}

// ReassignCancha moves a turno to another court. A legacy numero_cancha
// annotation follows the new court so the two never disagree.
func (s *Service) ReassignCancha(ctx context.Context, id uint, canchaID *uint, numero *int, by string) (*turnoModel.Turno, error) {
	if canchaID == nil && numero == nil {
		return nil, apperrors.Validation("cancha_id", "cancha_id or numero_cancha is required")
	}
	return s.mutate(ctx, id, by, "reassign cancha", func(tx Store, t *turnoModel.Turno) error {
		cancha, err := resolveCancha(ctx, tx, t.ClubID, canchaID, numero)
		if err != nil {
			return err
		}
		t.CanchaID = &cancha.ID
		t.Cancha = cancha
		if t.NumeroCancha != nil || numero != nil {
			n := cancha.Numero
			t.NumeroCancha = &n
		}
		return nil
	})
}

// mutate loads and locks a turno, applies fn and saves it. A non-empty
// action is only allowed while the estado can be modified.
func (s *Service) mutate(ctx context.Context, id uint, by, action string, fn func(tx Store, t *turnoModel.Turno) error) (*turnoModel.Turno, error) {
	if id == 0 {
		return nil, apperrors.Validation("id", "is required")
	}

	var out *turnoModel.Turno
	err := s.store.Transaction(ctx, func(tx Store) error {
		t, err := tx.FindTurno(ctx, id, true)
		if err != nil {
			return err
		}
		if action != "" && !t.Estado.CanBeModified() {
			return &apperrors.InvalidStateTransition{TurnoID: t.ID, From: t.Estado.String(), Action: action}
		}
		if err := fn(tx, t); err != nil {
			return err
		}
		t.UpdatedBy = by
		if err := tx.SaveTurno(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, key string, t *turnoModel.Turno) {
	err := s.events.PublishJSON(ctx, key, map[string]any{
		"turno_id":    t.ID,
		"club_id":     t.ClubID,
		"cancha_id":   t.CanchaID,
		"estado":      t.Estado,
		"hora_inicio": t.HoraInicio,
	})
	if err != nil {
		logger.Warning(fmt.Sprintf("Failed to publish %s for turno %d: %v", key, t.ID, err))
	}
}

// resolveCancha finds the court named by the foreign key and/or the legacy
// slot number. Both must name the same active court of the club.
func resolveCancha(ctx context.Context, tx Store, clubID uint, canchaID *uint, numero *int) (*canchaModel.Cancha, error) {
	var byFK, bySlot *canchaModel.Cancha

	if canchaID != nil {
		c, err := tx.FindCancha(ctx, *canchaID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validation("cancha_id", "cancha %d does not exist", *canchaID)
		}
		if err != nil {
			return nil, err
		}
		if c.ClubID != clubID {
			return nil, apperrors.Validation("cancha_id", "cancha %d belongs to another club", *canchaID)
		}
		byFK = c
	}
	if numero != nil {
		c, err := tx.FindCanchaByNumero(ctx, clubID, *numero)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Validation("numero_cancha", "no cancha numbered %d in club %d", *numero, clubID)
		}
		if err != nil {
			return nil, err
		}
		bySlot = c
	}

	if byFK != nil && bySlot != nil && byFK.ID != bySlot.ID {
		return nil, &apperrors.DataIntegrityError{
			Message: fmt.Sprintf("cancha_id %d and numero_cancha %d name different courts", byFK.ID, *numero),
		}
	}
	cancha := byFK
	if cancha == nil {
		cancha = bySlot
	}
	if !cancha.Activa {
		return nil, apperrors.Validation("cancha_id", "cancha %d is not active", cancha.ID)
	}
	return cancha, nil
}

func assignCaddie(ctx context.Context, tx Store, t *turnoModel.Turno, caddieID uint) error {
	c, err := tx.FindCaddie(ctx, caddieID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Validation("caddie_id", "caddie %d does not exist", caddieID)
	}
	if err != nil {
		return err
	}
	if err := checkStaff(c.Perfil, t.ClubID, "caddie_id"); err != nil {
		return err
	}
	t.CaddieID = &c.ID
	t.Caddie = c
	return nil
}

func assignBoleador(ctx context.Context, tx Store, t *turnoModel.Turno, boleadorID uint) error {
	b, err := tx.FindBoleador(ctx, boleadorID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Validation("boleador_id", "boleador %d does not exist", boleadorID)
	}
	if err != nil {
		return err
	}
	if err := checkStaff(b.Perfil, t.ClubID, "boleador_id"); err != nil {
		return err
	}
	t.BoleadorID = &b.ID
	t.Boleador = b
	return nil
}

func checkStaff(p staffModel.Perfil, clubID uint, field string) error {
	if p.ClubID != clubID {
		return apperrors.Validation(field, "%d belongs to another club", p.ID)
	}
	if !p.Assignable() {
		return apperrors.Validation(field, "%d is not available", p.ID)
	}
	return nil
}
