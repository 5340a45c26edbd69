package core

import (
	"testing"
	"time"
)

func TestParseFlow(t *testing.T) {
	cases := []struct {
		in   string
		flow Flow
		ok   bool
	}{
		{"Debit", Debit, true},
		{" Credit ", Credit, true},
		{"debit", "", false},
		{"Transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFlow(tc.in)
		if tc.ok && (err != nil || got != tc.flow) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.flow, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:     NewDate(2024, 1, 15),
		Details:  "coffee shop",
		Amount:   Amount{Cents: 450, Valid: true},
		Flow:     Debit,
		Category: Uncategorized,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{Time: time.Time{}}, Details: "a", Flow: Debit},
		{Date: NewDate(2024, 1, 1), Details: "  ", Flow: Debit},
		{Date: NewDate(2024, 1, 1), Details: "a", Flow: "Transfer"},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
