//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"commons-dinner/cmd/bootstrap"
	"commons-dinner/cmd/bootstrap/components"
	"commons-dinner/internal/infra/db"
	"commons-dinner/internal/pkg/config"
	"commons-dinner/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "dinner"
	pgPassword = "dinner"
	pgImage    = "postgres:17"
	schemaFile = "migrations/001_initial_schema.sql"
)

var (
	serverOnce sync.Once
	server     *pgServer
	serverErr  error
)

// pgServer is the postgres container shared by every suite of one test binary.
// Each suite gets its own database on it.
type pgServer struct {
	container testcontainers.Container
	host      string
	port      nat.Port
}

func (p *pgServer) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, p.host, p.port.Port(), database)
}

func (p *pgServer) dbConfig(database string) config.DBConfig {
	return config.DBConfig{
		Host:     p.host,
		Port:     p.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   database,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 10,
	}
}

func startServer(t *testing.T) *pgServer {
	serverOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        pgImage,
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				// durability is irrelevant for throwaway data
				Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "full_page_writes=off", "-c", "max_connections=200"},
				WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
					return (&pgServer{host: host, port: port}).dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "e2e-tests"},
			},
			Started: true,
		})
		if err != nil {
			serverErr = err
			return
		}
		host, err := c.Host(ctx)
		if err != nil {
			serverErr = err
			return
		}
		port, err := c.MappedPort(ctx, "5432/tcp")
		if err != nil {
			serverErr = err
			return
		}
		server = &pgServer{container: c, host: host, port: port}
	})
	require.NoError(t, serverErr, "postgres container did not start")
	return server
}

// createDatabase makes a fresh database, loads the schema and reference rows,
// and drops it again when the suite ends.
func (p *pgServer) createDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	name := "dinner_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(context.Background(), p.dsn("postgres"))
	require.NoError(t, err)
	defer admin.Close()

	// CREATE DATABASE can collide on the template lock when suites start together
	require.Eventually(t, func() bool {
		_, err = admin.Exec(context.Background(), "CREATE DATABASE "+name)
		return err == nil
	}, 10*time.Second, 500*time.Millisecond, "create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		dropper, err := pgxpool.New(ctx, p.dsn("postgres"))
		if err != nil {
			slog.Warn("cannot drop test database", "database", name, "error", err)
			return
		}
		defer dropper.Close()
		if _, err := dropper.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("cannot drop test database", "database", name, "error", err)
		}
	})

	cfg := p.dbConfig(name)
	pool, cleanup, err := db.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if cleanup != nil {
			cleanup()
		}
	})

	require.NoError(t, loadSchema(pool))
	require.NoError(t, dbtest.SeedReferenceData(pool))
	return pool, cfg
}

// loadSchema executes the schema file; go test runs with the package dir as cwd
func loadSchema(pool *pgxpool.Pool) error {
	var (
		sql []byte
		err error
	)
	for depth := range 4 {
		path := filepath.Join(append(repeat("..", depth), schemaFile)...)
		if sql, err = os.ReadFile(path); err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", schemaFile, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", schemaFile, err)
	}
	return nil
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

// buildApp wires the HTTP stack like cmd/main.go does, with the pool and config
// swapped for test values and without the scheduler.
func buildApp(t *testing.T, pool *pgxpool.Pool, dbCfg config.DBConfig) (*gin.Engine, config.Config) {
	t.Helper()
	var (
		router *gin.Engine
		cfg    config.Config
	)

	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config {
				c := config.NewTestConfig()
				c.DB = dbCfg
				return c
			},
			gin.New,
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.AdapterModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router, &cfg),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fx app did not start")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fx app did not stop cleanly", "error", err)
		}
	})
	return router, cfg
}

// SharedSuite gives each e2e suite a router over its own database.
// Every test and subtest starts from empty tables plus reference data.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pool, dbCfg := startServer(t).createDatabase(t)
	s.DB = pool
	s.Router, s.Config = buildApp(t, pool, dbCfg)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset database")
}
