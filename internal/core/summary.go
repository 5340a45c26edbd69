package core

import "sort"

// CategorySummary is one row of the expense overview: a category and the
// sum of its qualifying debit amounts.
type CategorySummary struct {
	Category string
	Total    Amount
}

// SummarizeDebits aggregates debit transactions by category.
//
// Only rows with a valid amount strictly greater than zero count toward a
// total: negative debits are refunds or corrections and would pollute the
// expense picture. Categories with no qualifying rows are omitted. The
// result is sorted descending by total, name ascending on equal totals.
func SummarizeDebits(txs []Transaction) []CategorySummary {
	totals := make(map[string]int64)
	for _, t := range txs {
		if t.Flow != Debit {
			continue
		}
		if !t.Amount.Valid || t.Amount.Cents <= 0 {
			continue
		}
		totals[t.Category] += t.Amount.Cents
	}

	out := make([]CategorySummary, 0, len(totals))
	for name, cents := range totals {
		out = append(out, CategorySummary{
			Category: name,
			Total:    Amount{Cents: cents, Valid: true},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CreditTotal sums every valid credit amount, sign included. Unlike the
// debit summary there is no positivity filter: payments and refunds both
// belong in the income figure.
func CreditTotal(txs []Transaction) Amount {
	var cents int64
	for _, t := range txs {
		if t.Flow != Credit || !t.Amount.Valid {
			continue
		}
		cents += t.Amount.Cents
	}
	return Amount{Cents: cents, Valid: true}
}
