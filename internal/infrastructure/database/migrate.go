package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

// migrateLogger routes golang-migrate's progress lines through logrus.
type migrateLogger struct {
	entry *logrus.Entry
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.entry.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

func (l migrateLogger) Verbose() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}

// RunMigrations brings the events and participants schema up to date from
// the SQL files in migrationsPath.
func RunMigrations(dsn string, migrationsPath string) error {
	m, err := migrate.New("file://"+filepath.ToSlash(migrationsPath), dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()
	m.Log = migrateLogger{entry: logrus.WithField("component", "migrate")}

	err = m.Up()
	var dirty migrate.ErrDirty
	switch {
	case errors.As(err, &dirty):
		return fmt.Errorf("schema left dirty at version %d, repair it and force the version: %w", dirty.Version, err)
	case err != nil && !errors.Is(err, migrate.ErrNoChange):
		return fmt.Errorf("migration up: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logrus.WithField("version", version).Info("✅ Migrations applied")
	return nil
}
