package core

import "testing"

func tx(details string, cents int64, flow Flow, category string) Transaction {
	return Transaction{
		Date:     NewDate(2024, 1, 15),
		Details:  details,
		Amount:   Amount{Cents: cents, Valid: true},
		Flow:     flow,
		Category: category,
	}
}

func TestSummarizeDebitsGroupsAndSorts(t *testing.T) {
	txs := []Transaction{
		tx("coffee shop", 450, Debit, "Food"),
		tx("coffee shop", 500, Debit, "Food"),
		tx("train ticket", 1200, Debit, "Travel"),
		tx("salary", 100000, Credit, Uncategorized),
	}
	got := SummarizeDebits(txs)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d: %v", len(got), got)
	}
	if got[0].Category != "Travel" || got[0].Total.Cents != 1200 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Category != "Food" || got[1].Total.Cents != 950 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestSummarizeDebitsExcludesNonPositiveAndInvalid(t *testing.T) {
	refund := tx("returned item", -1500, Debit, "Shopping")
	zero := tx("zero", 0, Debit, "Shopping")
	missing := Transaction{
		Date:     NewDate(2024, 1, 2),
		Details:  "unreadable amount",
		Flow:     Debit,
		Category: "Shopping",
	}
	got := SummarizeDebits([]Transaction{refund, zero, missing})
	if len(got) != 0 {
		t.Fatalf("expected empty summary, got %v", got)
	}
}

func TestSummarizeDebitsTieBrokenByName(t *testing.T) {
	got := SummarizeDebits([]Transaction{
		tx("b", 100, Debit, "Beta"),
		tx("a", 100, Debit, "Alpha"),
	})
	if len(got) != 2 || got[0].Category != "Alpha" || got[1].Category != "Beta" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestCreditTotalIncludesAllValidAmounts(t *testing.T) {
	txs := []Transaction{
		tx("salary", 100000, Credit, Uncategorized),
		tx("refund reversal", -500, Credit, Uncategorized),
		tx("groceries", 2000, Debit, "Food"),
		{Date: NewDate(2024, 1, 3), Details: "bad cell", Flow: Credit},
	}
	got := CreditTotal(txs)
	if !got.Valid || got.Cents != 99500 {
		t.Fatalf("expected 99500, got %+v", got)
	}
}
