package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"finboard/internal/amqp"
)

type fakeAppender struct {
	calls []string
	err   error
}

func (f *fakeAppender) AppendKeyword(_ context.Context, category, keyword string, _ time.Time) error {
	f.calls = append(f.calls, category+"/"+keyword)
	return f.err
}

func TestHandleKeywordMessage(t *testing.T) {
	appender := &fakeAppender{}
	w := NewExportWorker(appender)

	msg := amqp.NewKeywordLearnedMessage("Dining", "coffee shop")
	if err := w.HandleKeywordMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(appender.calls) != 1 || appender.calls[0] != "Dining/coffee shop" {
		t.Fatalf("unexpected calls: %v", appender.calls)
	}
}

func TestHandleKeywordMessagePropagatesError(t *testing.T) {
	appender := &fakeAppender{err: errors.New("quota")}
	w := NewExportWorker(appender)

	msg := amqp.NewKeywordLearnedMessage("Dining", "coffee shop")
	if err := w.HandleKeywordMessage(context.Background(), msg); err == nil {
		t.Fatalf("expected error for requeue")
	}
}
