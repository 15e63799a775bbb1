package seeder

import (
	"context"

	"facility-registry/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
