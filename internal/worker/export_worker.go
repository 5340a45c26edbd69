// Package worker consumes keyword-learned events and mirrors them to the
// Google Sheets audit sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finboard/internal/amqp"
)

// KeywordAppender is the slice of the export client the worker needs.
type KeywordAppender interface {
	AppendKeyword(ctx context.Context, category, keyword string, learnedAt time.Time) error
}

type ExportWorker struct {
	appender KeywordAppender
}

func NewExportWorker(appender KeywordAppender) *ExportWorker {
	return &ExportWorker{appender: appender}
}

// HandleKeywordMessage processes one keyword-learned event. Errors bubble
// up so the AMQP consumer requeues the delivery.
func (w *ExportWorker) HandleKeywordMessage(ctx context.Context, msg *amqp.KeywordLearnedMessage) error {
	if err := w.appender.AppendKeyword(ctx, msg.Category, msg.Keyword, msg.Timestamp); err != nil {
		return fmt.Errorf("append keyword to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Keyword mirrored to audit sheet",
		"category", msg.Category,
		"keyword", msg.Keyword)
	return nil
}
