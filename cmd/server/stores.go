package main

import (
	"context"
	"fmt"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/audiozoom/backend/internal/infrastructure/logger"
	"github.com/audiozoom/backend/internal/infrastructure/migration"
	"github.com/audiozoom/backend/internal/infrastructure/persistence"
	"github.com/audiozoom/backend/internal/infrastructure/persistence/mongostore"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/audiozoom/backend/migrations"
	"go.uber.org/zap"
)

// repositories is the persistence backend selected by database.driver
type repositories struct {
	users         identity.UserRepository
	recordings    recording.RecordingRepository
	audioRequests audiorequest.AudioRequestRepository
	payments      finance.PaymentRepository
	messages      messaging.MessageRepository
	requests      request.RequestRepository
	revenue       finance.RevenueReporter

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func openRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, error) {
	if cfg.Database.Driver == config.DriverMongo {
		return openMongo(ctx, cfg, log)
	}
	return openSQL(cfg, log)
}

// openSQL connects through GORM. PostgreSQL is migrated with the embedded
// migrations; SQLite is auto-migrated from the models.
func openSQL(cfg *config.Config, log *zap.Logger) (*repositories, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, cfg.Database.Driver, log); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		sqlDB, err := db.DB.DB()
		if err != nil {
			return nil, err
		}
		m, err := migration.NewEmbedded(sqlDB, migrations.FS, log)
		if err != nil {
			return nil, err
		}
		if err := m.Up(); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	case config.DriverSQLite:
		if err := db.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	sqlxDB, err := db.SQLX()
	if err != nil {
		return nil, err
	}

	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))
	return &repositories{
		users:         persistence.NewGormUserRepository(db.DB),
		recordings:    persistence.NewGormRecordingRepository(db.DB),
		audioRequests: persistence.NewGormAudioRequestRepository(db.DB),
		payments:      persistence.NewGormPaymentRepository(db.DB),
		messages:      persistence.NewGormMessageRepository(db.DB),
		requests:      persistence.NewGormRequestRepository(db.DB),
		revenue:       persistence.NewSQLRevenueReporter(sqlxDB, cfg.Database.Driver),
		ping:          func(context.Context) error { return db.Ping() },
		close:         func(context.Context) error { return db.Close() },
	}, nil
}

func openMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*repositories, error) {
	store, err := mongostore.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, store.DB); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("failed to create mongo indexes: %w", err)
	}

	log.Info("MongoDB connected", zap.String("database", cfg.Mongo.Database))
	return &repositories{
		users:         mongostore.NewUserRepository(store.DB),
		recordings:    mongostore.NewRecordingRepository(store.DB),
		audioRequests: mongostore.NewAudioRequestRepository(store.DB),
		payments:      mongostore.NewPaymentRepository(store.DB),
		messages:      mongostore.NewMessageRepository(store.DB),
		requests:      mongostore.NewRequestRepository(store.DB),
		revenue:       mongostore.NewRevenueReporter(store.DB),
		ping:          store.Ping,
		close:         store.Close,
	}, nil
}
