// Package backend wires a dictionary repository and the optional event
// publisher from configuration.
package backend

import (
	"fmt"
	"log/slog"

	"finboard/internal/amqp"
	"finboard/internal/config"
	"finboard/internal/dictionary"
	"finboard/internal/filestore"
	"finboard/internal/storage"
)

type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

func (t Type) IsValid() bool {
	return t == FileBackend || t == SQLiteBackend
}

// Result bundles the repository with its optional publisher and cleanup.
type Result struct {
	Repo      dictionary.Repository
	Publisher *amqp.Client // nil when AMQP is not configured
	Cleanup   func() error
}

// New builds the persistence backend selected by cfg. The AMQP publisher is
// best-effort: a failed connection logs a warning and the application runs
// without event publishing, matching its optional role.
func New(logger *slog.Logger, cfg *config.Config) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backendType := Type(cfg.DataBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	var publisher *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		publisher, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
			publisher = nil
		} else {
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	switch backendType {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend",
			"db_path", cfg.SQLiteDBPath,
			"amqp_enabled", publisher != nil)
		return &Result{Repo: repo, Publisher: publisher, Cleanup: repo.Close}, nil

	default:
		repo := filestore.New(cfg.StorePath)
		logger.Info("Initialized file backend",
			"store_path", cfg.StorePath,
			"amqp_enabled", publisher != nil)
		return &Result{Repo: repo, Publisher: publisher, Cleanup: nil}, nil
	}
}
