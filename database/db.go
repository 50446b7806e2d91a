package database

import (
	"fmt"
	"gestor-turnos/config"
	"gestor-turnos/logger"
	canchaModel "gestor-turnos/models/cancha"
	clubModel "gestor-turnos/models/club"
	jornadaModel "gestor-turnos/models/jornada"
	"gestor-turnos/models/log"
	staffModel "gestor-turnos/models/staff"
	turnoModel "gestor-turnos/models/turno"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Open connects to PostgreSQL. Constraint errors are translated into gorm
// sentinels so repositories can classify them.
func Open(cfg config.App) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")
	return db, nil
}

// InitDB connects and brings the schema up to date.
func InitDB(cfg config.App) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates tables, foreign keys and indexes. Every step is
// idempotent.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(db); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")
	return nil
}

// autoMigrate runs auto migration for all models
func autoMigrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: tenant root
		{&clubModel.Club{}},
		// Stage 2: club resources
		{&canchaModel.Cancha{}, &staffModel.Caddie{}, &staffModel.Boleador{}},
		// Stage 3: archive, referenced by turnos
		{&jornadaModel.JornadaTurnos{}},
		// Stage 4: the ledger
		{&turnoModel.Turno{}, &turnoModel.TurnoStatusEvent{}},
		// Stage 5: request logs
		{&log.Log{}},
	}

	for _, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

// createIndexes creates the indexes gorm tags cannot express
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		// At most one active snapshot per club
		{"uq_jornadas_turnos_club_activa", "CREATE UNIQUE INDEX IF NOT EXISTS uq_jornadas_turnos_club_activa ON jornadas_turnos(club_id) WHERE activa"},
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints(db *gorm.DB) error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_canchas_club",
			sql: `ALTER TABLE canchas ADD CONSTRAINT fk_canchas_club
				  FOREIGN KEY (club_id) REFERENCES clubs(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_caddies_club",
			sql: `ALTER TABLE caddies ADD CONSTRAINT fk_caddies_club
				  FOREIGN KEY (club_id) REFERENCES clubs(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_boleadores_club",
			sql: `ALTER TABLE boleadores ADD CONSTRAINT fk_boleadores_club
				  FOREIGN KEY (club_id) REFERENCES clubs(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_jornadas_turnos_club",
			sql: `ALTER TABLE jornadas_turnos ADD CONSTRAINT fk_jornadas_turnos_club
				  FOREIGN KEY (club_id) REFERENCES clubs(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_turnos_club",
			sql: `ALTER TABLE turnos ADD CONSTRAINT fk_turnos_club
				  FOREIGN KEY (club_id) REFERENCES clubs(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_turnos_cancha",
			sql: `ALTER TABLE turnos ADD CONSTRAINT fk_turnos_cancha
				  FOREIGN KEY (cancha_id) REFERENCES canchas(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_turnos_caddie",
			sql: `ALTER TABLE turnos ADD CONSTRAINT fk_turnos_caddie
				  FOREIGN KEY (caddie_id) REFERENCES caddies(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_turnos_boleador",
			sql: `ALTER TABLE turnos ADD CONSTRAINT fk_turnos_boleador
				  FOREIGN KEY (boleador_id) REFERENCES boleadores(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_turnos_jornada",
			sql: `ALTER TABLE turnos ADD CONSTRAINT fk_turnos_jornada
				  FOREIGN KEY (jornada_id) REFERENCES jornadas_turnos(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_turno_status_events_turno",
			sql: `ALTER TABLE turno_status_events ADD CONSTRAINT fk_turno_status_events_turno
				  FOREIGN KEY (turno_id) REFERENCES turnos(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`
		if err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", constraint.name, err)
		}
		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
			continue
		}
		if err := db.Exec(constraint.sql).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", constraint.name, err)
		}
		logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
	}
	return nil
}
