package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/infile"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inmemory"
)

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	cfg := config.NewDefaultConfiguration()
	cfg.LogLevel = "debug"
	require.NoError(t, ConfigureLogging(cfg))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	cfg.LogLevel = "loud"
	assert.Error(t, ConfigureLogging(cfg))
}

func TestInitStorage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	cfg := config.NewDefaultConfiguration()
	st, err := InitStorage(ctx, wg, cfg)
	require.NoError(t, err)
	assert.IsType(t, &inmemory.Storage{}, st)

	cfg.FileStoragePath = filepath.Join(t.TempDir(), "journal.json")
	st, err = InitStorage(ctx, wg, cfg)
	require.NoError(t, err)
	assert.IsType(t, &infile.Storage{}, st)

	cancel()
	wg.Wait()
}

func TestInitStorageFailureReleasesWaitGroup(t *testing.T) {
	wg := &sync.WaitGroup{}
	cfg := config.NewDefaultConfiguration()
	cfg.FileStoragePath = filepath.Join(t.TempDir(), "missing", "journal.json")
	_, err := InitStorage(context.Background(), wg, cfg)
	require.Error(t, err)
	wg.Wait()
}

func TestInitAssistant(t *testing.T) {
	cfg := config.NewDefaultConfiguration()
	cfg.GeminiKey = ""
	cfg.OpenAIKey = "sk-test"
	cfg.OpenAIModel = "gpt-4"
	router, err := InitAssistant(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"openai"}, router.Providers())
}

func TestInitExtractor(t *testing.T) {
	ext := InitExtractor(config.NewDefaultConfiguration())
	assert.True(t, ext.Supports("pdf"))
}
