// Package daemon wires storage, seeding and the web service into the running process.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db"
	"github.com/umsproject/ums/internal/db/dsn"
	"github.com/umsproject/ums/internal/logger"
	"github.com/umsproject/ums/internal/web"
	"github.com/umsproject/ums/internal/web/handler"
)

// limiterTable keeps the login limiter counters on the mysql and postgres engines.
const limiterTable = "login_limiter"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// Start serves until a termination signal arrives, then releases every resource.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))

	d.close()

	return err
}

func (d *Daemon) close() {
	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			log.Error().Err(err).Msg("closing limiter storage")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("closing database")
		}
	}

	logger.Shutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil, nil //nolint:nilnil
	}

	conn, err := db.Open(cfg.DB)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = db.Migrate(conn); err != nil {
		return nil, err //nolint:wrapcheck
	}

	svc, err := handler.NewServices(cfg.Auth, conn)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if cfg.Seed.Enabled {
		generated, errSeed := Seed(context.Background(), cfg.Seed, conn, svc.Hasher, time.Now().UTC())
		if errSeed != nil {
			return nil, errSeed
		}

		if generated != "" {
			// printed once, the digest is all that is kept
			log.Warn().Str("user", cfg.Seed.AdminName).Str("password", generated).
				Msg("generated admin password, change it after the first login")
		}
	}

	storage := loginStorage(cfg)

	webService, err := web.New(cfg, svc, storage)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Daemon{
		cfg:        cfg,
		db:         conn,
		storage:    storage,
		webService: webService,
	}, nil
}

// loginStorage shares the login limiter counters between instances through the
// configured database. sqlite deployments keep them in memory.
func loginStorage(cfg *config.Config) fiber.Storage {
	if !cfg.Webserver.LoginRateLimit.Enabled {
		return nil
	}

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.MySQL(cfg.DB),
			Table:         limiterTable,
		})
	case config.EnginePostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.Postgres(cfg.DB),
			Table:         limiterTable,
		})
	default:
		return nil
	}
}
