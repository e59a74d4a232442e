package store

import (
	"fmt"
	"strings"
)

// Backend loads and saves the whole store.
type Backend interface {
	// Load returns the persisted store, or an empty one when nothing has
	// been persisted yet.
	Load() (*Store, error)
	// Save overwrites the persisted store with s.
	Save(s *Store) error
	Close() error
}

const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Drivers returns the accepted backend driver names.
func Drivers() []string {
	return []string{DriverJSON, DriverSQLite}
}

func ValidDriver(driver string) error {
	switch strings.ToLower(driver) {
	case DriverJSON, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q (want one of %s)", driver, strings.Join(Drivers(), ", "))
	}
}
