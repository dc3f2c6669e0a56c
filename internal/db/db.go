// Package db opens the configured storage engine and migrates the schema.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/dsn"
	"github.com/umsproject/ums/internal/db/models"
	gormadapter "github.com/umsproject/ums/internal/logger/adapter/gorm"
)

// Dialector returns the gorm driver for the configured engine.
func Dialector(cfg config.DB) (gorm.Dialector, error) {
	switch cfg.GormEngine {
	case config.EngineMySQL, "":
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.SQLite(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedEngine, cfg.GormEngine)
	}
}

// Open connects to the configured engine.
func Open(cfg config.DB) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	return OpenDialector(dialector, cfg)
}

// OpenDialector connects through an already built dialector.
func OpenDialector(dialector gorm.Dialector, cfg config.DB) (*gorm.DB, error) {
	conn, err := gorm.Open(dialector, Options(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB, errDB := conn.DB()
		if errDB != nil {
			return nil, fmt.Errorf("get sql database: %w", errDB)
		}

		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	log.Info().Str("engine", dialector.Name()).Msg("database connected")

	return conn, nil
}

// Options returns the gorm settings shared by every engine.
func Options(cfg config.DB) *gorm.Config {
	return &gorm.Config{
		Logger:  gormadapter.New(cfg.SlowThreshold),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates or updates the schema, including both link tables.
func Migrate(conn *gorm.DB) error {
	joins := []struct {
		model any
		field string
		link  any
	}{
		{&models.User{}, "Groups", &models.UserGroupLink{}},
		{&models.Group{}, "Members", &models.UserGroupLink{}},
		{&models.Role{}, "Permissions", &models.RolePermissionLink{}},
		{&models.Permission{}, "Roles", &models.RolePermissionLink{}},
	}

	for _, j := range joins {
		if err := conn.SetupJoinTable(j.model, j.field, j.link); err != nil {
			return fmt.Errorf("setup join table %s: %w", j.field, err)
		}
	}

	err := conn.AutoMigrate(
		&models.Permission{},
		&models.Role{},
		&models.Group{},
		&models.User{},
		&models.UserGroupLink{},
		&models.RolePermissionLink{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("get sql database: %w", err)
	}

	if err = sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	return nil
}
