package migrations

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// SchemaDir is where every module keeps its embedded goose migrations.
const SchemaDir = "infrastructure/persistence/schema"

// Manager collects the per-module embedded schema migrations and applies
// them before the server starts accepting traffic.
type Manager struct {
	pool    *pgxpool.Pool
	log     *logrus.Logger
	schemas []*embed.FS
}

func NewManager(pool *pgxpool.Pool, log *logrus.Logger) *Manager {
	return &Manager{pool: pool, log: log}
}

func (m *Manager) RegisterSchema(fs *embed.FS) {
	m.schemas = append(m.schemas, fs)
}

func (m *Manager) SchemaCount() int {
	return len(m.schemas)
}

// Apply runs all registered migrations through goose against the pool.
func (m *Manager) Apply(ctx context.Context) error {
	if len(m.schemas) == 0 {
		return nil
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(m.pool)
	defer func() {
		_ = db.Close()
	}()

	defer goose.SetBaseFS(nil)
	for _, fsys := range m.schemas {
		goose.SetBaseFS(fsys)
		if err := goose.UpContext(ctx, db, SchemaDir); err != nil {
			return err
		}
	}
	if m.log != nil {
		m.log.Infof("migrations: applied %d schema set(s)", len(m.schemas))
	}
	return nil
}
