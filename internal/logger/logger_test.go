package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToRotatingFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "app.log")
	Setup(path, "debug")

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.Info("✅ ログ出力テスト")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ログ出力テスト")
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	out := Setup("", "verbose")

	assert.Equal(t, os.Stdout, out)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
