package repository

import (
	"context"
	"errors"
	"gestor-turnos/apperrors"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	jornadaModel "gestor-turnos/models/jornada"
	turnoModel "gestor-turnos/models/turno"
	jornadaService "gestor-turnos/services/jornada"
	"time"

	"gorm.io/gorm"
)

// JornadaRepo is the gorm implementation of the jornada service store.
type JornadaRepo struct{ db *gorm.DB }

func NewJornadaRepo(db *gorm.DB) *JornadaRepo {
	return &JornadaRepo{db: db}
}

func (r *JornadaRepo) Transaction(ctx context.Context, fn func(tx jornadaService.Store) error) error {
	return Transaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		return fn(&JornadaRepo{db: tx})
	})
}

func (r *JornadaRepo) FindClub(ctx context.Context, clubID uint) (*clubModel.Club, error) {
	var c clubModel.Club
	if err := r.db.WithContext(ctx).First(&c, clubID).Error; err != nil {
		return nil, Translate("find club", err)
	}
	return &c, nil
}

func (r *JornadaRepo) ListCanchas(ctx context.Context, clubID uint) ([]canchaModel.Cancha, error) {
	var out []canchaModel.Cancha
	if err := r.db.WithContext(ctx).Where("club_id = ?", clubID).Order("numero ASC").Find(&out).Error; err != nil {
		return nil, Translate("list canchas", err)
	}
	return out, nil
}

func (r *JornadaRepo) ListTurnosForDay(ctx context.Context, clubID uint, desde, hasta time.Time) ([]turnoModel.Turno, error) {
	return listTurnosForDay(ctx, r.db, clubID, desde, hasta)
}

func (r *JornadaRepo) AttachTurnos(ctx context.Context, turnoIDs []uint, jornadaID uint) error {
	if len(turnoIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&turnoModel.Turno{}).
		Where("id IN ?", turnoIDs).
		UpdateColumn("jornada_id", jornadaID).Error
	return Translate("attach turnos", err)
}

func (r *JornadaRepo) FindSnapshot(ctx context.Context, id uint) (*jornadaModel.JornadaTurnos, error) {
	var s jornadaModel.JornadaTurnos
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, Translate("find snapshot", err)
	}
	return &s, nil
}

func (r *JornadaRepo) FindSnapshotByFecha(ctx context.Context, clubID uint, fecha string) (*jornadaModel.JornadaTurnos, error) {
	var s jornadaModel.JornadaTurnos
	err := r.db.WithContext(ctx).
		Where("club_id = ? AND fecha = ?::date", clubID, fecha).
		Order("id DESC").
		First(&s).Error
	if err != nil {
		return nil, Translate("find snapshot by fecha", err)
	}
	return &s, nil
}

func (r *JornadaRepo) FindActiveSnapshot(ctx context.Context, clubID uint) (*jornadaModel.JornadaTurnos, error) {
	var s jornadaModel.JornadaTurnos
	if err := r.db.WithContext(ctx).Where("club_id = ? AND activa", clubID).First(&s).Error; err != nil {
		return nil, Translate("find active snapshot", err)
	}
	return &s, nil
}

func (r *JornadaRepo) ListSnapshots(ctx context.Context, clubID uint) ([]jornadaModel.JornadaTurnos, error) {
	var out []jornadaModel.JornadaTurnos
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("fecha DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, Translate("list snapshots", err)
	}
	return out, nil
}

func (r *JornadaRepo) DeactivateSnapshots(ctx context.Context, clubID uint, updatedBy string) error {
	err := r.db.WithContext(ctx).Model(&jornadaModel.JornadaTurnos{}).
		Where("club_id = ? AND activa", clubID).
		Updates(map[string]interface{}{"activa": false, "updated_by": updatedBy}).Error
	return Translate("deactivate snapshots", err)
}

func (r *JornadaRepo) CreateSnapshot(ctx context.Context, s *jornadaModel.JornadaTurnos) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrDuplicateSnapshot
	}
	return Translate("create snapshot", err)
}
