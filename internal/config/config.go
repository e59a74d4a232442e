package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"lecturegrid/internal/grid"
	"lecturegrid/internal/linkwriter"
	"lecturegrid/internal/store"
)

type Config struct {
	StorePath   string
	StoreDriver string

	LinkKind string
	Days     string

	LogFile  string
	LogLevel string

	AutoSave time.Duration
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment.
func Load() *Config {
	c := &Config{
		StoreDriver: get("LECTUREGRID_STORE_DRIVER", store.DriverJSON),

		LinkKind: get("LECTUREGRID_LINK_KIND", linkwriter.KindAuto),
		Days:     get("LECTUREGRID_DAYS", grid.DefaultLabels),

		LogFile:  get("LECTUREGRID_LOG_FILE", ""),
		LogLevel: get("LECTUREGRID_LOG_LEVEL", "info"),

		AutoSave: time.Minute,
	}

	c.StorePath = get("LECTUREGRID_STORE", c.DefaultStorePath())

	if v := os.Getenv("LECTUREGRID_AUTOSAVE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.AutoSave = d
		}
	}

	return c
}

// DefaultStorePath is the store file in the working directory for the
// configured driver.
func (c *Config) DefaultStorePath() string {
	if strings.ToLower(c.StoreDriver) == store.DriverSQLite {
		return "timetables.db"
	}
	return "timetables.json"
}

func (c *Config) Validate() error {
	if err := store.ValidDriver(c.StoreDriver); err != nil {
		return err
	}
	if c.StorePath == "" {
		return fmt.Errorf("store path is empty")
	}
	if _, err := grid.DayLabels(c.Days); err != nil {
		return fmt.Errorf("%w (want one of %s)", err, strings.Join(grid.LabelSets(), ", "))
	}
	if !validKind(c.LinkKind) {
		return fmt.Errorf("unknown link kind %q (want one of %s)", c.LinkKind, strings.Join(linkwriter.Kinds(), ", "))
	}
	if c.AutoSave <= 0 {
		return fmt.Errorf("autosave interval must be positive, got %s", c.AutoSave)
	}
	return nil
}

func validKind(kind string) bool {
	for _, k := range linkwriter.Kinds() {
		if strings.EqualFold(k, kind) {
			return true
		}
	}
	return false
}
