package repository

import (
	"context"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"
	turnoService "gestor-turnos/services/turno"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TurnoRepo is the gorm implementation of the turno service store.
type TurnoRepo struct{ db *gorm.DB }

func NewTurnoRepo(db *gorm.DB) *TurnoRepo {
	return &TurnoRepo{db: db}
}

func (r *TurnoRepo) Transaction(ctx context.Context, fn func(tx turnoService.Store) error) error {
	return Transaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return fn(&TurnoRepo{db: tx})
	})
}

func (r *TurnoRepo) FindClub(ctx context.Context, id uint) (*clubModel.Club, error) {
	var c clubModel.Club
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, Translate("find club", err)
	}
	return &c, nil
}

func (r *TurnoRepo) FindCancha(ctx context.Context, id uint) (*canchaModel.Cancha, error) {
	var c canchaModel.Cancha
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, Translate("find cancha", err)
	}
	return &c, nil
}

func (r *TurnoRepo) FindCanchaByNumero(ctx context.Context, clubID uint, numero int) (*canchaModel.Cancha, error) {
	var c canchaModel.Cancha
	if err := r.db.WithContext(ctx).Where("club_id = ? AND numero = ?", clubID, numero).First(&c).Error; err != nil {
		return nil, Translate("find cancha by numero", err)
	}
	return &c, nil
}

func (r *TurnoRepo) FindCaddie(ctx context.Context, id uint) (*staffModel.Caddie, error) {
	var c staffModel.Caddie
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, Translate("find caddie", err)
	}
	return &c, nil
}

func (r *TurnoRepo) FindBoleador(ctx context.Context, id uint) (*staffModel.Boleador, error) {
	var b staffModel.Boleador
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, Translate("find boleador", err)
	}
	return &b, nil
}

func (r *TurnoRepo) CreateTurno(ctx context.Context, t *turnoModel.Turno) error {
	// Associations are only read here; their ids are already set.
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
	return Translate("create turno", err)
}

func (r *TurnoRepo) FindTurno(ctx context.Context, id uint, forUpdate bool) (*turnoModel.Turno, error) {
	q := r.db.WithContext(ctx)
	if forUpdate {
		// Lock the turno row only; preloads run as separate queries.
		var locked turnoModel.Turno
		err := q.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&locked, id).Error
		if err != nil {
			return nil, Translate("lock turno", err)
		}
	}
	var t turnoModel.Turno
	err := q.Preload("Cancha").Preload("Caddie").Preload("Boleador").First(&t, id).Error
	if err != nil {
		return nil, Translate("find turno", err)
	}
	return &t, nil
}

func (r *TurnoRepo) SaveTurno(ctx context.Context, t *turnoModel.Turno) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
	return Translate("save turno", err)
}

func (r *TurnoRepo) ListTurnosForDay(ctx context.Context, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error) {
	return listTurnosForDay(ctx, r.db, clubID, desde, hasta)
}

func (r *TurnoRepo) CreateStatusEvent(ctx context.Context, ev *turnoModel.TurnoStatusEvent) error {
	return Translate("create status event", r.db.WithContext(ctx).Create(ev).Error)
}
