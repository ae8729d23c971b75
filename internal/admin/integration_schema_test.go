package admin

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cvan-em/artsnetwork/internal/config"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	db, container := mustSetup(ctx)
	testDB = db
	defer teardown(ctx, db, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*sql.DB, *postgres.PostgresContainer) {
	dbName := "directus"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	db, err := OpenDB(&config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return db, container
}

func teardown(ctx context.Context, db *sql.DB, container *postgres.PostgresContainer) {
	if err := db.Close(); err != nil {
		log.Printf("failed to close db connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

func TestEnsureEnumValues(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	_, err := testDB.Exec(`CREATE TYPE events_status AS ENUM ('published', 'draft')`)
	require.NoError(t, err)

	added, err := EnsureEnumValues(testDB, "events_status", StatusValues)
	require.NoError(t, err)
	assert.Equal(t, []string{"pending", "rejected"}, added)

	values, err := EnumValues(testDB, "events_status")
	require.NoError(t, err)
	assert.ElementsMatch(t, StatusValues, values)

	// Rerun is a no-op.
	added, err = EnsureEnumValues(testDB, "events_status", StatusValues)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestEnsureEnumValuesMissingType(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	_, err := EnsureEnumValues(testDB, "no_such_type", StatusValues)
	assert.Error(t, err)
}

func TestEnsureStatusColumnDefault(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	_, err := testDB.Exec(`CREATE TABLE opportunities (id serial PRIMARY KEY, status text NOT NULL)`)
	require.NoError(t, err)

	require.NoError(t, EnsureStatusColumnDefault(testDB, "opportunities"))

	_, err = testDB.Exec(`INSERT INTO opportunities DEFAULT VALUES`)
	require.NoError(t, err)

	var status string
	require.NoError(t, testDB.QueryRow(`SELECT status FROM opportunities LIMIT 1`).Scan(&status))
	assert.Equal(t, "pending", status)
}
