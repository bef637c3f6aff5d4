//go:build integration

package testutil

import (
	"context"
	"log"
	"os"

	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/adbridge/internal/repo/postgres"
)

// ApplyMigrationsGoose применяет встроенные миграции (пакет migrations) к тестовой базе.
func ApplyMigrationsGoose(ctx context.Context, dsn string) error {
	goose.SetLogger(log.New(os.Stdout, "[goose] ", 0))
	return postgres.Migrate(ctx, dsn)
}
