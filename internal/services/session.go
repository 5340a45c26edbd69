// Package services orchestrates the session lifecycle: statement uploads,
// dictionary mutations, the feedback loop and the derived read views.
package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"finboard/internal/core"
	"finboard/internal/dictionary"
	"finboard/internal/log"
	"finboard/internal/statement"
)

// KeywordEventPublisher publishes keyword-learned events. Nil disables
// publishing; failures never block the feedback loop.
type KeywordEventPublisher interface {
	PublishKeywordLearned(ctx context.Context, category, keyword string) error
}

// Session is the application context: it owns the live dictionary, its
// repository, and the currently loaded statement. Transactions live only
// for the session; the dictionary persists across sessions.
//
// A single mutex serializes everything. This is a single-user tool: two
// processes mutating the same store race as last-writer-wins.
type Session struct {
	mu        sync.Mutex
	dict      *dictionary.Dictionary
	repo      dictionary.Repository
	publisher KeywordEventPublisher
	logger    *log.Logger

	txs         []core.Transaction
	hasUpload   bool
	lastSaveErr error
}

// NewSession loads the dictionary and returns a ready session.
func NewSession(ctx context.Context, repo dictionary.Repository, publisher KeywordEventPublisher, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	dict, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return &Session{
		dict:      dict,
		repo:      repo,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentSession),
	}, nil
}

// Upload parses a statement and categorizes it from a dictionary snapshot.
// A parse failure leaves the previously loaded statement untouched.
func (s *Session) Upload(ctx context.Context, r io.Reader) (int, error) {
	txs, err := statement.Parse(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	dictionary.Categorize(s.dict.Snapshot(), txs)
	s.txs = txs
	s.hasUpload = true

	s.logger.InfoContext(ctx, "Statement uploaded",
		log.FieldOperation, log.OpUpload,
		log.FieldRows, len(txs))
	return len(txs), nil
}

// AddCategory creates a category and persists the store.
func (s *Session) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dict.AddCategory(name); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

// ApplyEdits runs the feedback loop for user category overrides.
//
// edits maps transaction index to the chosen category, which must already
// exist. Two phases: first every changed row's details text is learned as
// a keyword under the chosen category (persisting the store per mutation
// and emitting an event), then the whole statement is re-categorized from
// a fresh snapshot and the explicit user choices are re-applied on top, so
// an override is never undone by the tie-break within its own session.
// Returns the number of keywords learned.
func (s *Session) ApplyEdits(ctx context.Context, edits map[int]string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, category := range edits {
		if !s.dict.Has(category) {
			return 0, fmt.Errorf("%w: %q", dictionary.ErrUnknownCategory, category)
		}
	}

	indices := make([]int, 0, len(edits))
	for idx := range edits {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	learned := 0
	for _, idx := range indices {
		category := edits[idx]
		if idx < 0 || idx >= len(s.txs) {
			continue
		}
		tx := s.txs[idx]
		if tx.Category == category || category == core.Uncategorized {
			continue
		}

		changed, err := s.dict.AddKeyword(category, tx.Details)
		if err != nil {
			return learned, fmt.Errorf("learn keyword: %w", err)
		}
		if !changed {
			continue
		}
		learned++
		s.save(ctx)
		s.publish(ctx, category, tx.Details)

		s.logger.InfoContext(ctx, "Keyword learned from edit",
			log.FieldOperation, log.OpLearn,
			log.FieldCategory, category,
			log.FieldKeyword, tx.Details)
	}

	dictionary.Categorize(s.dict.Snapshot(), s.txs)
	for idx, category := range edits {
		if idx >= 0 && idx < len(s.txs) {
			s.txs[idx].Category = category
		}
	}
	return learned, nil
}

// save persists the whole dictionary. Failures are reportable, not fatal:
// the in-memory state stays usable and LastSaveError exposes the problem.
func (s *Session) save(ctx context.Context) {
	if err := s.repo.Save(ctx, s.dict); err != nil {
		s.lastSaveErr = err
		s.logger.WarnContext(ctx, "Failed to persist category store",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
		return
	}
	s.lastSaveErr = nil
}

func (s *Session) publish(ctx context.Context, category, keyword string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishKeywordLearned(ctx, category, keyword); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish keyword event",
			log.FieldCategory, category,
			log.FieldError, err)
	}
}

// HasStatement reports whether an upload is loaded.
func (s *Session) HasStatement() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasUpload
}

// CategoryNames returns the dictionary's category names in order.
func (s *Session) CategoryNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Names()
}

// Transactions returns a copy of the current statement in row order. The
// slice index is the row identity that ApplyEdits expects back.
func (s *Session) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Debits returns the expense rows of the current statement.
func (s *Session) Debits() []core.Transaction {
	return s.filtered(core.Debit)
}

// Credits returns the income/refund rows of the current statement.
func (s *Session) Credits() []core.Transaction {
	return s.filtered(core.Credit)
}

func (s *Session) filtered(flow core.Flow) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.txs {
		if t.Flow == flow {
			out = append(out, t)
		}
	}
	return out
}

// ExpenseSummary aggregates the current debit rows by category.
func (s *Session) ExpenseSummary() []core.CategorySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.SummarizeDebits(s.txs)
}

// CreditTotal sums the current credit rows.
func (s *Session) CreditTotal() core.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.CreditTotal(s.txs)
}

// LastSaveError reports the most recent persistence failure, nil after a
// successful save.
func (s *Session) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}
