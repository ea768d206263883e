package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBookingService/pkg/psqlbuilder"
)

//go:embed *.sql
var files embed.FS

// ErrApply возвращается, если миграция не применилась
var ErrApply = errors.New("migrations: failed to apply migration")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет встроенные миграции по порядку имен файлов
func Up(ctx context.Context, db dbmetrics.DBExecutor, log Logger) (int, error) {
	return apply(ctx, db, files, log)
}

func apply(ctx context.Context, db dbmetrics.DBExecutor, fsys fs.FS, log Logger) (int, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, fmt.Errorf("%w: read dir: %v", ErrApply, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrApply, err)
	}

	applied := 0
	for _, name := range names {
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("%w: read %s: %v", ErrApply, name, err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("%w: %s: %v", ErrApply, name, err)
		}

		query, args, err := psqlbuilder.Insert("schema_migrations").Columns("version").Values(name).ToSql()
		if err != nil {
			return applied, fmt.Errorf("%w: build insert: %v", ErrApply, err)
		}
		if _, err := db.ExecContext(ctx, query, args...); err != nil {
			return applied, fmt.Errorf("%w: record %s: %v", ErrApply, name, err)
		}

		log.Info("Migration applied: %s", name)
		applied++
	}

	return applied, nil
}

func isApplied(ctx context.Context, db dbmetrics.DBExecutor, name string) (bool, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": name}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: build select: %v", ErrApply, err)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: check %s: %v", ErrApply, name, err)
	}
	return count > 0, nil
}
