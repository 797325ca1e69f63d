// Package app wires the storage, extractor and language model shared by the study helper binaries.
package app

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/danilovkiri/dk_go_study_helper/internal/config"
	extractor "github.com/danilovkiri/dk_go_study_helper/internal/service/extractor/v1"
	llm "github.com/danilovkiri/dk_go_study_helper/internal/service/llm/v1"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/infile"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_study_helper/internal/storage/inpsql"
)

// ConfigureLogging sets the logrus level and formatter.
func ConfigureLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

// InitStorage selects the storage: PostgreSQL when a DSN is set, the file journal when a path is set,
// memory otherwise. Persistent storages register themselves on wg and close once ctx is done.
func InitStorage(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config) (storage.StudyStorage, error) {
	switch {
	case cfg.DatabaseDSN != "":
		wg.Add(1)
		st, err := inpsql.InitStorage(ctx, wg, cfg)
		if err != nil {
			wg.Done()
			return nil, err
		}
		log.Info("using PostgreSQL storage")
		return st, nil
	case cfg.FileStoragePath != "":
		wg.Add(1)
		st, err := infile.InitStorage(ctx, wg, cfg)
		if err != nil {
			wg.Done()
			return nil, err
		}
		log.WithField("path", cfg.FileStoragePath).Info("using file storage")
		return st, nil
	default:
		log.Info("using in-memory storage")
		return inmemory.InitStorage(), nil
	}
}

// InitExtractor builds the document extractor with the registered OCR engine.
func InitExtractor(cfg *config.Config) *extractor.Extractor {
	ext := extractor.InitExtractor(nil, cfg.OCRLanguages)
	log.WithField("ocr", ext.OCREnabled()).Info("document extractor ready")
	return ext
}

// InitAssistant builds the provider fallback router.
func InitAssistant(ctx context.Context, cfg *config.Config) (*llm.Router, error) {
	router, err := llm.NewRouter(ctx, cfg, nil)
	if err != nil {
		return nil, err
	}
	providers := router.Providers()
	if len(providers) == 0 {
		log.Warn("no language model provider is configured, model-backed endpoints will fail")
	} else {
		log.WithField("providers", providers).Info("language model router ready")
	}
	return router, nil
}
