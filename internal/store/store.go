package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/LucasDotTrade/lucas-brain/internal/model"
)

// ErrNotFound reports that no stored package matches the requested ID.
var ErrNotFound = eris.New("store: package not found")

// PackageFilter specifies criteria for listing validated packages.
type PackageFilter struct {
	ClientIdentifier string        `json:"client_identifier,omitempty"`
	Verdict          model.Verdict `json:"verdict,omitempty"`
	Limit            int           `json:"limit,omitempty"`
	Offset           int           `json:"offset,omitempty"`
}

// StoredPackage is one persisted validation outcome.
type StoredPackage struct {
	Verdict   model.PackageVerdict `json:"verdict"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store defines the persistence interface for package verdicts. Saving the
// same package ID twice overwrites the earlier verdict: a re-validated
// package has exactly one current outcome.
type Store interface {
	SavePackage(ctx context.Context, verdict model.PackageVerdict) error
	GetPackage(ctx context.Context, packageID string) (*StoredPackage, error)
	ListPackages(ctx context.Context, filter PackageFilter) ([]StoredPackage, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver: "postgres" or "sqlite".
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	case "sqlite":
		return NewSQLite(dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
