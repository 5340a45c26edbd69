package dictionary

import "finboard/internal/core"

// Categorize assigns a category to every transaction in place.
//
// A transaction matches a category when its normalized details text exactly
// equals one of the category's normalized keywords. When the text matches
// keywords in more than one category, the category appearing LAST in the
// dictionary's insertion order wins. That tie-break is deliberate and
// deterministic: later category definitions overwrite earlier ones.
// Transactions matching nothing keep Uncategorized.
//
// This is a full re-scan on every call. With statement sizes in the
// hundreds of rows and dictionaries in the tens of categories there is no
// need for an index.
func Categorize(cats []Category, txs []core.Transaction) {
	for i := range txs {
		txs[i].Category = core.Uncategorized
		details := Normalize(txs[i].Details)
		for _, c := range cats {
			if c.Name == core.Uncategorized || len(c.Keywords) == 0 {
				continue
			}
			for _, kw := range c.Keywords {
				if Normalize(kw) == details {
					txs[i].Category = c.Name
					break
				}
			}
		}
	}
}
