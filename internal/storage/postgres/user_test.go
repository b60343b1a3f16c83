package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nanmax/newsfeed/internal/models"
	"github.com/nanmax/newsfeed/internal/storage"
)

// Интеграционные тесты пакета postgres:
// - поднимают реальный PostgreSQL через testcontainers-go (образ postgres:16-alpine);
// - применяют миграции из ./migrations;
// - проверяют happy-path, уникальность username и сценарии ErrNotFound.
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/storage/postgres -v -race -count=1

// repoRootFromThisFile — определяет корень репозитория относительно текущего файла тестов.
// Используется для поиска SQL-миграций в каталоге ./migrations независимо от текущего рабочего каталога.
func repoRootFromThisFile() string {
	// internal/storage/postgres/... -> подняться на 3 уровня до корня.
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", ".."))
}

// readMigration — читает содержимое SQL-миграции из подкаталога ./migrations.
func readMigration(t *testing.T, name string) string {
	t.Helper()
	root := repoRootFromThisFile()
	path := filepath.Join(root, "migrations", name)
	b, err := os.ReadFile(path)
	require.NoError(t, err, "read migration %s", path)
	return string(b)
}

// startPostgres — поднимает временный экземпляр PostgreSQL через testcontainers-go,
// применяет все миграции и возвращает инициализированное хранилище и функцию очистки.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startPostgres(t *testing.T) (*Storage, func()) {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "5432/tcp")
	dsn := fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port())

	// применяем миграции.
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	for _, m := range []string{
		"1_init_users.up.sql",
		"2_init_refresh_tokens.up.sql",
		"3_init_posts_follows.up.sql",
	} {
		_, err = pool.Exec(ctx, readMigration(t, m))
		require.NoError(t, err, "apply %s", m)
	}

	st, err := New(ctx, dsn)
	require.NoError(t, err)

	cleanup := func() {
		st.Close()
		_ = c.Terminate(context.Background())
	}
	return st, cleanup
}

// seedUser создаёт пользователя и возвращает его ID.
func seedUser(t *testing.T, st *Storage, username string) int64 {
	t.Helper()
	id, err := st.SaveUser(context.Background(), &models.User{
		Username:     username,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestIntegration_SaveUser_And_GetByUsername_And_ByID_OK(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	id, err := st.SaveUser(ctx, &models.User{
		Username:     "alice",
		PasswordHash: "hash",
		CreatedAt:    now,
	})
	require.NoError(t, err)
	require.Positive(t, id)

	gotByName, err := st.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, gotByName.ID)
	require.Equal(t, "alice", gotByName.Username)
	require.Equal(t, "hash", gotByName.PasswordHash)
	require.WithinDuration(t, now, gotByName.CreatedAt, 2*time.Second)

	gotByID, err := st.UserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", gotByID.Username)
}

func TestIntegration_SaveUser_UniqueUsername_Violation(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	seedUser(t, st, "alice")

	_, err := st.SaveUser(ctx, &models.User{
		Username:     "alice",
		PasswordHash: "other-hash",
		CreatedAt:    time.Now().UTC(),
	})
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_UserLookups_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()

	_, err := st.UserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = st.UserByID(ctx, 123456)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestIntegration_ListUsers_ExcludesSelf_MarksFollowing(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	carol := seedUser(t, st, "carol")

	require.NoError(t, st.SaveFollow(ctx, alice, bob))

	users, err := st.ListUsers(ctx, alice)
	require.NoError(t, err)
	require.Len(t, users, 2)

	byName := map[string]models.UserSummary{}
	for _, u := range users {
		require.NotEqual(t, alice, u.ID)
		byName[u.Username] = u
	}
	require.True(t, byName["bob"].IsFollowing)
	require.False(t, byName["carol"].IsFollowing)
	require.Equal(t, carol, byName["carol"].ID)
}
