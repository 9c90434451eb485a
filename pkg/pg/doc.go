// Package pg provides PostgreSQL plumbing on top of pgx/v5: a pooled
// connection with retries, goose migrations, health checks and error
// classification helpers.
//
//   - Config is populated from environment variables via github.com/caarlos0/env.
//   - Connect opens a *pgxpool.Pool, retrying until the database is reachable.
//   - Migrate runs goose migrations from an fs.FS (usually an embed.FS) over the
//     same pool, bridged to database/sql with the pgx stdlib driver.
//   - OpenDB exposes the pool as *sql.DB for database/sql based repositories.
//
// Usage:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//	    return err
//	}
//
// IsDuplicateKeyError and IsNotFoundError classify driver errors so callers
// can map them to domain errors.
package pg
