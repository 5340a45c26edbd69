package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"finboard/internal/core"
	"finboard/internal/dictionary"
	"finboard/internal/filestore"
	"finboard/internal/statement"
)

const sampleStatement = `Date,Details,Amount,Debit/Credit
01 Jan 2024,Coffee Shop,4.50,Debit
02 Jan 2024,Coffee Shop,5.00,Debit
03 Jan 2024,Refund Correction,-15.00,Debit
04 Jan 2024,Salary,"1,250.00",Credit
`

type capturingPublisher struct {
	events []string
	err    error
}

func (p *capturingPublisher) PublishKeywordLearned(_ context.Context, category, keyword string) error {
	p.events = append(p.events, category+"/"+keyword)
	return p.err
}

func newTestSession(t *testing.T) (*Session, *filestore.Repository, *capturingPublisher) {
	t.Helper()
	repo := filestore.New(filepath.Join(t.TempDir(), "categories.json"))
	pub := &capturingPublisher{}
	sess, err := NewSession(context.Background(), repo, pub, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return sess, repo, pub
}

func TestUploadCategorizesFromStore(t *testing.T) {
	sess, _, _ := newTestSession(t)
	ctx := context.Background()

	if err := sess.AddCategory(ctx, "Food"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	// Seed a keyword the way the feedback loop would.
	n, err := sess.Upload(ctx, strings.NewReader(sampleStatement))
	if err != nil || n != 4 {
		t.Fatalf("upload: n=%d err=%v", n, err)
	}
	if _, err := sess.ApplyEdits(ctx, map[int]string{0: "Food"}); err != nil {
		t.Fatalf("apply edits: %v", err)
	}

	// A fresh identical upload now auto-categorizes both coffee rows.
	if _, err := sess.Upload(ctx, strings.NewReader(sampleStatement)); err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	debits := sess.Debits()
	if debits[0].Category != "Food" || debits[1].Category != "Food" {
		t.Fatalf("expected Food for both coffee rows, got %q %q",
			debits[0].Category, debits[1].Category)
	}
	if debits[2].Category != core.Uncategorized {
		t.Fatalf("unmatched row must stay uncategorized, got %q", debits[2].Category)
	}

	summary := sess.ExpenseSummary()
	if len(summary) != 1 || summary[0].Category != "Food" || summary[0].Total.Cents != 950 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestApplyEditsLearnsAndRecategorizes(t *testing.T) {
	sess, repo, pub := newTestSession(t)
	ctx := context.Background()

	for _, name := range []string{"Food", "Dining"} {
		if err := sess.AddCategory(ctx, name); err != nil {
			t.Fatalf("add category: %v", err)
		}
	}
	if _, err := sess.Upload(ctx, strings.NewReader(sampleStatement)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := sess.ApplyEdits(ctx, map[int]string{0: "Food"}); err != nil {
		t.Fatalf("seed edit: %v", err)
	}

	// Reassign row 1 to Dining: "coffee shop" is learned under Dining too.
	learned, err := sess.ApplyEdits(ctx, map[int]string{1: "Dining"})
	if err != nil || learned != 1 {
		t.Fatalf("apply edits: learned=%d err=%v", learned, err)
	}

	// The override sticks for the edited row even though re-categorization
	// also ran.
	debits := sess.Debits()
	if debits[1].Category != "Dining" {
		t.Fatalf("override lost: %q", debits[1].Category)
	}

	// Fresh identical statement: Dining was defined after Food, so the
	// last-match tie-break sends coffee rows to Dining.
	if _, err := sess.Upload(ctx, strings.NewReader(sampleStatement)); err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if got := sess.Debits()[1].Category; got != "Dining" {
		t.Fatalf("expected Dining via last-match, got %q", got)
	}

	// The learned keywords reached the persistent store.
	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	if kws := loaded.Keywords("Dining"); len(kws) != 1 || dictionary.Normalize(kws[0]) != "coffee shop" {
		t.Fatalf("unexpected Dining keywords: %v", kws)
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected 2 published events, got %v", pub.events)
	}
}

func TestApplyEditsRejectsUnknownCategory(t *testing.T) {
	sess, _, _ := newTestSession(t)
	ctx := context.Background()
	if _, err := sess.Upload(ctx, strings.NewReader(sampleStatement)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := sess.ApplyEdits(ctx, map[int]string{0: "Nope"}); !errors.Is(err, dictionary.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestNegativeDebitExcludedFromSummaryButListed(t *testing.T) {
	sess, _, _ := newTestSession(t)
	ctx := context.Background()
	if _, err := sess.Upload(ctx, strings.NewReader(sampleStatement)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	debits := sess.Debits()
	if len(debits) != 3 {
		t.Fatalf("refund row must stay in the table: %v", debits)
	}
	for _, s := range sess.ExpenseSummary() {
		if s.Total.Cents < 0 {
			t.Fatalf("negative amount leaked into summary: %v", s)
		}
	}
	if got := sess.CreditTotal(); got.Cents != 125000 {
		t.Fatalf("unexpected credit total: %+v", got)
	}
}

func TestUploadFailureKeepsPreviousStatement(t *testing.T) {
	sess, _, _ := newTestSession(t)
	ctx := context.Background()
	if _, err := sess.Upload(ctx, strings.NewReader(sampleStatement)); err != nil {
		t.Fatalf("upload: %v", err)
	}

	_, err := sess.Upload(ctx, strings.NewReader("Date,Details\nbroken"))
	var perr *statement.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if len(sess.Debits()) != 3 {
		t.Fatalf("previous statement lost after failed upload")
	}
}

type failingRepo struct {
	dictionary.Repository
	fail bool
}

func (r *failingRepo) Save(ctx context.Context, d *dictionary.Dictionary) error {
	if r.fail {
		return errors.New("disk full")
	}
	return r.Repository.Save(ctx, d)
}

func TestSaveFailureIsReportableNotFatal(t *testing.T) {
	inner := filestore.New(filepath.Join(t.TempDir(), "categories.json"))
	repo := &failingRepo{Repository: inner, fail: true}
	sess, err := NewSession(context.Background(), repo, nil, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	ctx := context.Background()

	if err := sess.AddCategory(ctx, "Food"); err != nil {
		t.Fatalf("add category must survive save failure: %v", err)
	}
	if sess.LastSaveError() == nil {
		t.Fatalf("expected reportable save error")
	}
	// In-memory state is still usable.
	if !contains(sess.CategoryNames(), "Food") {
		t.Fatalf("category missing from in-memory store")
	}

	repo.fail = false
	if err := sess.AddCategory(ctx, "Travel"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if sess.LastSaveError() != nil {
		t.Fatalf("save error should clear after success: %v", sess.LastSaveError())
	}
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
