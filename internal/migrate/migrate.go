package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Migration is one schema change. IDs sort in the order migrations must run.
type Migration struct {
	ID string
	Up func(tx *gorm.DB) error
}

// Status reports whether a known migration has been applied.
type Status struct {
	ID        string
	AppliedAt time.Time
}

// Applied reports whether the migration has run.
func (s Status) Applied() bool {
	return !s.AppliedAt.IsZero()
}

type schemaMigration struct {
	ID        string    `gorm:"primaryKey;size:255"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

// Migrator applies migrations and records them in schema_migrations.
type Migrator struct {
	db         *gorm.DB
	log        zerolog.Logger
	migrations []Migration
}

// New builds a Migrator. With no migrations given it uses the built-in set.
func New(db *gorm.DB, log zerolog.Logger, migrations ...Migration) *Migrator {
	if len(migrations) == 0 {
		migrations = Migrations()
	}
	return &Migrator{
		db:         db,
		log:        log.With().Str("component", "migrate").Logger(),
		migrations: migrations,
	}
}

// Up applies every pending migration in order and returns the IDs it ran.
// Each migration runs in its own transaction together with its tracking row.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, mig := range m.migrations {
		if _, ok := applied[mig.ID]; ok {
			continue
		}
		m.log.Info().Str("migration", mig.ID).Msg("applying migration")
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{ID: mig.ID, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return ran, fmt.Errorf("migration %s: %w", mig.ID, err)
		}
		ran = append(ran, mig.ID)
	}
	if len(ran) == 0 {
		m.log.Info().Msg("schema up to date")
	}
	return ran, nil
}

// Status lists every known migration with its applied time, zero when pending.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(m.migrations))
	for _, mig := range m.migrations {
		out = append(out, Status{ID: mig.ID, AppliedAt: applied[mig.ID]})
	}
	return out, nil
}

func (m *Migrator) applied(ctx context.Context) (map[string]time.Time, error) {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	var rows []schemaMigration
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		applied[r.ID] = r.AppliedAt
	}
	return applied, nil
}

func (m *Migrator) validate() error {
	seen := make(map[string]struct{}, len(m.migrations))
	for i, mig := range m.migrations {
		if mig.ID == "" || mig.Up == nil {
			return fmt.Errorf("migration %d is incomplete", i)
		}
		if _, dup := seen[mig.ID]; dup {
			return fmt.Errorf("duplicate migration id %s", mig.ID)
		}
		if i > 0 && mig.ID <= m.migrations[i-1].ID {
			return fmt.Errorf("migration %s is out of order", mig.ID)
		}
		seen[mig.ID] = struct{}{}
	}
	return nil
}
