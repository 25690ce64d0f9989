// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose migrations applied from an embedded filesystem, and
// a health check closure for readiness probes.
//
// Typical startup sequence:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrationsFS, cfg, log); err != nil { ... }
//
// Error helpers such as IsDuplicateKeyError classify *pgconn.PgError values
// so storage code can map constraint violations to domain errors without
// touching SQLSTATE codes directly.
package pg
