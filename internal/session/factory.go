package session

import (
	"fmt"
	"os"

	"landscapecore/pkg/domain"
)

// Driver identifies a concrete session storage implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// Open selects a backend using environment variables. Defaults to sqlite
// when unset.
//
//	LANDSCAPECORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	LANDSCAPECORE_SQLITE_PATH: path to sqlite file (default ./landscapecore.db)
//	LANDSCAPECORE_POSTGRES_DSN: postgres DSN when driver=postgres
func Open() (domain.SessionStore, error) {
	driver := os.Getenv("LANDSCAPECORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(os.Getenv("LANDSCAPECORE_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgresStore(os.Getenv("LANDSCAPECORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
