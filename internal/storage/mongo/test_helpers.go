package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestStorage поднимает контейнер mongodb и возвращает подключённое
// к нему хранилище вместе с функцией остановки контейнера
func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("27017/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithDeadline(3 * time.Minute),
	}

	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	// Добавляем задержку для полной инициализации mongodb
	time.Sleep(3 * time.Second)

	port, err := mongoContainer.MappedPort(ctx, "27017")
	require.NoError(t, err, "Failed to get port")

	url := fmt.Sprintf("mongodb://localhost:%s", port.Port())

	// Пробуем подключиться несколько раз с ретраями,
	// New сам проверяет соединение ping-ом
	var storage *Storage
	for range 10 {
		storage, err = New(ctx, url, "testdb", time.UTC)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	cleanup := func() {
		if storage != nil {
			_ = storage.Close(ctx)
		}
		if mongoContainer != nil {
			_ = mongoContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
