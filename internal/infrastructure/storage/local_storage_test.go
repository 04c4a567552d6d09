package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inmobiliaria/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestLocalReportStorage_UploadAndURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports-root")
	s, err := NewLocalReportStorage(dir)
	require.NoError(t, err)

	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	key := "reports/sales-by-agent/20260504T120000Z.csv"
	require.NoError(t, s.Upload(ctx, key, []byte("agent_id,sales\n"), "text/csv"))

	data, err := os.ReadFile(filepath.Join(dir, "reports", "sales-by-agent", "20260504T120000Z.csv"))
	require.NoError(t, err)
	assert.Equal(t, "agent_id,sales\n", string(data))

	u, expiresAt, err := s.GenerateDownloadURL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "/files/"+key, u)
	assert.Equal(t, now.Add(time.Minute), expiresAt)
}

func TestLocalReportStorage_RejectsBadKeys(t *testing.T) {
	s, err := NewLocalReportStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../outside.csv", "reports/../../x"} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, s.Upload(ctx, key, []byte("x"), "text/csv"))
		})
	}
}

func TestLocalReportStorage_URLForMissingFile(t *testing.T) {
	s, err := NewLocalReportStorage(t.TempDir())
	require.NoError(t, err)

	_, _, err = s.GenerateDownloadURL(context.Background(), "reports/none.csv", time.Minute)
	assert.Error(t, err)
}

func TestNewLocalReportStorage_RequiresDir(t *testing.T) {
	_, err := NewLocalReportStorage("")
	assert.Error(t, err)
}

func TestNewReportStorage(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	t.Run("local", func(t *testing.T) {
		s, err := NewReportStorage(ctx, &config.StorageConfig{Backend: "local", LocalDir: t.TempDir()}, logger)
		require.NoError(t, err)
		assert.IsType(t, &LocalReportStorage{}, s)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewReportStorage(ctx, &config.StorageConfig{Backend: "ftp"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported storage backend "ftp"`)
	})
}
