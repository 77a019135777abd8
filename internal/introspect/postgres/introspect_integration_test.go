//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"pgschemadiff/internal/compare"
)

type testPostgresContainer struct {
	container *postgres.PostgresContainer
	dsn       string
}

func setupPostgres(t *testing.T) *testPostgresContainer {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpass"),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	return &testPostgresContainer{container: pgContainer, dsn: dsn}
}

func TestIntrospectTablesColumnsAndConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tc := setupPostgres(t)
	ctx := context.Background()

	db, err := sql.Open("postgres", tc.dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.PingContext(ctx))

	_, err = db.ExecContext(ctx, `
		CREATE TABLE accounts (
			id BIGINT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			balance NUMERIC(10,2) NOT NULL DEFAULT 0,
			CONSTRAINT accounts_balance_check CHECK (balance >= 0)
		);
		CREATE TABLE orders (
			id BIGINT PRIMARY KEY,
			account_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			total NUMERIC(10,2)
		);
	`)
	require.NoError(t, err)

	ic := New(db)
	schema, err := ic.Introspect(ctx, "public")
	require.NoError(t, err)
	require.NotNil(t, schema.FindTable("accounts"))
	require.NotNil(t, schema.FindTable("orders"))

	d := compare.CompareSchemas(schema, schema, compare.DefaultOptions(), compare.NopSink{})
	require.True(t, d.IsEmpty(), "introspecting the same live schema twice should compare equal")
}

func TestIntrospectDetectsAddedColumn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tc := setupPostgres(t)
	ctx := context.Background()

	db, err := sql.Open("postgres", tc.dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.PingContext(ctx))

	_, err = db.ExecContext(ctx, `CREATE TABLE widgets (id BIGINT PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)

	ic := New(db)
	before, err := ic.Introspect(ctx, "public")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `ALTER TABLE widgets ADD COLUMN description TEXT`)
	require.NoError(t, err)

	after, err := ic.Introspect(ctx, "public")
	require.NoError(t, err)

	d := compare.CompareSchemas(before, after, compare.DefaultOptions(), compare.NopSink{})
	require.Len(t, d.ModifiedTables, 1)
	require.Len(t, d.ModifiedTables[0].AddedColumns, 1)
	require.Equal(t, "description", d.ModifiedTables[0].AddedColumns[0].Name)
}
