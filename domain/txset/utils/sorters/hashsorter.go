package sorters

import (
	"sort"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
)

// SortTransactionsByHash sorts transactions in place into canonical order:
// ascending transaction hash.
func SortTransactionsByHash(transactions []*externalapi.TransactionRef) {
	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Hash.Less(&transactions[j].Hash)
	})
}

// FirstNonCanonicalIndex returns the index of the first transaction whose
// hash is not strictly greater than its predecessor's, or -1 if the slice
// is in canonical order with no duplicates.
func FirstNonCanonicalIndex(transactions []*externalapi.TransactionRef) int {
	for i := 1; i < len(transactions); i++ {
		if !transactions[i-1].Hash.Less(&transactions[i].Hash) {
			return i
		}
	}
	return -1
}
