package repository

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"testing"

	models "courier/internal/identity/model"
	"courier/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("courier"),
		postgres.WithUsername("courier"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connections string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	if _, err := testDB.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx); err != nil {
		testDB.Close()
		log.Fatalf("failed to create users table: %v", err)
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func cleanupUsers(t *testing.T) {
	_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func Test_CreateUser(t *testing.T) {
	t.Cleanup(func() { cleanupUsers(t) })

	user := models.User{Username: "alice", Name: "Alice"}
	repo := NewUserRepository(testDB, logger.Logger{})
	err := repo.CreateUser(t.Context(), &user)
	require.NoError(t, err)
	assert.NotNil(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
}

func Test_GetUserByID(t *testing.T) {
	t.Cleanup(func() { cleanupUsers(t) })

	user := models.User{Username: "alice", Name: "Alice"}
	repo := NewUserRepository(testDB, logger.Logger{})

	err := repo.CreateUser(t.Context(), &user)
	require.NoError(t, err)

	fetched, err := repo.GetUserByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, fetched.Username)
	assert.Equal(t, user.Name, fetched.Name)
}

func Test_GetUserByUsername(t *testing.T) {
	t.Cleanup(func() { cleanupUsers(t) })

	user := models.User{Username: "alice", Name: "Alice"}
	repo := NewUserRepository(testDB, logger.Logger{})

	err := repo.CreateUser(t.Context(), &user)
	require.NoError(t, err)

	fetched, err := repo.GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	_, err = repo.GetUserByUsername(t.Context(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func Test_GetUserByTokenHash(t *testing.T) {
	t.Cleanup(func() { cleanupUsers(t) })

	hash := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	user := models.User{Username: "alice", Name: "Alice", TokenHash: hash}
	repo := NewUserRepository(testDB, logger.Logger{})

	err := repo.CreateUser(t.Context(), &user)
	require.NoError(t, err)

	fetched, err := repo.GetUserByTokenHash(t.Context(), hash)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)

	_, err = repo.GetUserByTokenHash(t.Context(), []byte("wrong-hash"))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func Test_UpdateUserDisplayName(t *testing.T) {
	t.Cleanup(func() { cleanupUsers(t) })

	user := models.User{Username: "alice", Name: "Alice"}
	repo := NewUserRepository(testDB, logger.Logger{})

	err := repo.CreateUser(t.Context(), &user)
	require.NoError(t, err)

	err = repo.UpdateUserDisplayName(t.Context(), user.ID, "Alice B")
	assert.NoError(t, err)

	fetched, err := repo.GetUserByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", fetched.Name)
}
