package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))

	switch c.Storage.Driver {
	case DriverPostgres:
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	case DriverSQLite:
		if err := c.SQLite.validate(); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, c.Storage.Driver)
	}

	if c.Storage.InitTimeout <= 0 {
		return fmt.Errorf("storage.init_timeout must be > 0 (got %v)", c.Storage.InitTimeout)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("dsn is required for the postgres driver")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be between 0 and max_conns (got %d)", d.MinConns)
	}
	return nil
}

func (s *SQLiteConfig) validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("path is required for the sqlite driver")
	}
	if s.BusyTimeout < 0 {
		return fmt.Errorf("busy_timeout must be >= 0 (got %v)", s.BusyTimeout)
	}
	return nil
}
