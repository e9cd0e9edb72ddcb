//go:build integration

// Package pgtest поднимает PostgreSQL в контейнере для интеграционных тестов
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
	migration    = "migrations/001_init.sql"
)

var (
	containerOnce sync.Once
	container     testcontainers.Container
	containerErr  error
)

func adminDSN(host string, port nat.Port, dbName string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", testUser, testPassword, host, port.Port(), dbName)
}

func startContainer() (testcontainers.Container, error) {
	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		container, containerErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:16-alpine",
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     testUser,
					"POSTGRES_PASSWORD": testPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw"},
				Cmd:   []string{"postgres", "-c", "fsync=off", "-c", "max_connections=200"},
				WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return adminDSN(host, port, "postgres")
				}).WithStartupTimeout(90 * time.Second),
			},
			Started: true,
		})
	})
	return container, containerErr
}

// NewDB создает отдельную базу с применённой миграцией и удаляет её после теста
func NewDB(t *testing.T) *sql.DB {
	t.Helper()

	c, err := startContainer()
	require.NoError(t, err, "start postgres container")

	ctx := context.Background()
	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	admin, err := sql.Open("postgres", adminDSN(host, port, "postgres"))
	require.NoError(t, err)
	defer admin.Close()

	dbName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.ExecContext(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "create test database")

	db, err := sql.Open("postgres", adminDSN(host, port, dbName))
	require.NoError(t, err)
	db.SetMaxOpenConns(50)

	t.Cleanup(func() {
		_ = db.Close()
		cleanup, err := sql.Open("postgres", adminDSN(host, port, "postgres"))
		if err != nil {
			return
		}
		defer cleanup.Close()
		_, _ = cleanup.Exec("DROP DATABASE IF EXISTS " + dbName + " WITH (FORCE)")
	})

	_, err = db.ExecContext(ctx, string(readMigration(t)))
	require.NoError(t, err, "apply migration")

	return db
}

// readMigration ищет файл миграции вверх от каталога пакета
func readMigration(t *testing.T) []byte {
	t.Helper()

	path := migration
	for i := 0; i < 6; i++ {
		content, err := os.ReadFile(path)
		if err == nil {
			return content
		}
		path = filepath.Join("..", path)
	}
	t.Fatalf("migration %s not found", migration)
	return nil
}

// InsertUser создает пользователя и возвращает его ID
func InsertUser(t *testing.T, db *sql.DB, email string, role string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		"INSERT INTO users (email, password_hash, role) VALUES ($1, 'x', $2) RETURNING id", email, role,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertTables создает столы и возвращает их ID в порядке seats
func InsertTables(t *testing.T, db *sql.DB, seats ...int) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(seats))
	for _, s := range seats {
		var id int64
		require.NoError(t, db.QueryRow("INSERT INTO restaurant_tables (seats) VALUES ($1) RETURNING id", s).Scan(&id))
		ids = append(ids, id)
	}
	return ids
}
