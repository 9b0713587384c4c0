// Package catalog records conversion runs in a local or remote database.
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager handles catalog database connections and operations.
type Manager struct {
	DB              *gorm.DB
	SqlDB           *sql.DB
	IsValid         bool
	ShouldSaveLocal bool
	Logger          zerolog.Logger
}

// NewManager creates a new catalog manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		IsValid:         false,
		ShouldSaveLocal: false,
		Logger:          log,
	}
}

// Connect establishes a database connection, falling back to SQLite when
// Postgres is not configured or unreachable.
func (m *Manager) Connect() error {
	var err error

	if viper.GetString("catalog.db.host") == "" {
		m.ShouldSaveLocal = true
		m.DB, err = m.GetSqliteDB(viper.GetString("catalog.sqlitePath"))
		if err != nil || m.DB == nil {
			m.IsValid = false
			return fmt.Errorf("failed to get local SQLite DB: %s", err)
		}
	} else {
		m.DB, err = m.GetPostgresDB()
		if err != nil {
			m.Logger.Error().Err(err).Msg("Failed to connect to Postgres DB, trying SQLite")
			m.ShouldSaveLocal = true
			m.DB, err = m.GetSqliteDB(viper.GetString("catalog.sqlitePath"))
			if err != nil || m.DB == nil {
				m.IsValid = false
				return fmt.Errorf("failed to get local SQLite DB: %s", err)
			}
		}
	}

	// test connection
	m.SqlDB, err = m.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %s", err)
	}

	err = m.SqlDB.Ping()
	if err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to validate connection: %s", err)
	}

	m.Logger.Info().Msg("Connected to catalog database")
	m.IsValid = true

	if !m.ShouldSaveLocal {
		m.SqlDB.SetMaxOpenConns(10)
	}

	return nil
}

// GetPostgresDB returns a connection to the Postgres catalog database.
func (m *Manager) GetPostgresDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		viper.GetString("catalog.db.host"),
		viper.GetString("catalog.db.port"),
		viper.GetString("catalog.db.username"),
		viper.GetString("catalog.db.password"),
		viper.GetString("catalog.db.database"),
	)

	m.Logger.Debug().Msgf("Connecting to Postgres DB at '%s'", dsn)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// GetSqliteDB returns a connection to a SQLite database.
// If path is empty, uses an in-memory database.
func (m *Manager) GetSqliteDB(path string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if path != "" {
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			m.IsValid = false
			return nil, err
		}
		m.Logger.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			m.IsValid = false
			return nil, err
		}
		m.Logger.Info().Msg("Using in-memory SQLite DB")
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = MEMORY;",
		"PRAGMA synchronous = OFF;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("error setting PRAGMA: %s", err)
		}
	}

	return db, nil
}

// Setup migrates the catalog schema.
func (m *Manager) Setup() error {
	m.Logger.Info().Msg("Migrating schema")
	if err := m.DB.AutoMigrate(&ConversionRecord{}); err != nil {
		m.IsValid = false
		return fmt.Errorf("failed to migrate schema: %s", err)
	}
	return nil
}

// Record inserts one conversion record.
func (m *Manager) Record(rec *ConversionRecord) error {
	if !m.IsValid {
		return fmt.Errorf("catalog db not valid, not saving")
	}
	if err := m.DB.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save conversion record: %s", err)
	}
	return nil
}

// Recent returns the most recent conversion records, newest first.
func (m *Manager) Recent(limit int) ([]ConversionRecord, error) {
	if !m.IsValid {
		return nil, fmt.Errorf("catalog db not valid")
	}
	var recs []ConversionRecord
	err := m.DB.Order("created_at desc").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion records: %s", err)
	}
	return recs, nil
}

// ForRun returns all records written under one run ID, in insertion order.
func (m *Manager) ForRun(runID string) ([]ConversionRecord, error) {
	if !m.IsValid {
		return nil, fmt.Errorf("catalog db not valid")
	}
	var recs []ConversionRecord
	err := m.DB.Where("run_id = ?", runID).Order("id asc").Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query conversion records: %s", err)
	}
	return recs, nil
}

// Close closes the underlying sql connection.
func (m *Manager) Close() error {
	if m.SqlDB == nil {
		return nil
	}
	return m.SqlDB.Close()
}
