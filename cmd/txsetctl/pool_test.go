package main

import (
	"strings"
	"testing"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/utils/txsethashing"
)

const testAccount = "0101010101010101010101010101010101010101010101010101010101010101"

func TestParsePool(t *testing.T) {
	explicitHash := strings.Repeat("ab", externalapi.DomainHashSize)
	pool := `[
		{"sourceAccount": "` + testAccount + `", "sequenceNumber": 7, "operationCount": 3, "maxFeeBid": 500,
		 "touchesOrderBook": true, "envelope": "beef"},
		{"hash": "` + explicitHash + `", "sourceAccount": "` + testAccount + `", "sequenceNumber": 8,
		 "operationCount": 1, "maxFeeBid": 100}
	]`

	transactions, err := parsePool([]byte(pool))
	if err != nil {
		t.Fatalf("TestParsePool: %+v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("TestParsePool: expected 2 transactions, got %d", len(transactions))
	}

	first := transactions[0]
	if first.SequenceNumber != 7 || first.OperationCount != 3 || first.MaxFeeBid != 500 ||
		!first.TouchesOrderBook || string(first.Envelope) != "\xbe\xef" {

		t.Fatalf("TestParsePool: unexpected first transaction %s", first)
	}
	if !first.Hash.Equal(txsethashing.TransactionHash(first)) {
		t.Fatalf("TestParsePool: expected the first transaction's hash to be derived from its fields")
	}

	if transactions[1].Hash.String() != explicitHash {
		t.Fatalf("TestParsePool: expected hash %s, got %s", explicitHash, transactions[1].Hash)
	}
	if len(transactions[1].Envelope) != 0 {
		t.Fatalf("TestParsePool: expected an empty envelope, got %x", transactions[1].Envelope)
	}
}

func TestParsePoolErrors(t *testing.T) {
	tests := []struct {
		name string
		pool string
	}{
		{"not JSON", `{`},
		{"short account", `[{"sourceAccount": "0101", "operationCount": 1}]`},
		{"bad envelope", `[{"sourceAccount": "` + testAccount + `", "envelope": "xyz"}]`},
		{"bad hash", `[{"hash": "00", "sourceAccount": "` + testAccount + `"}]`},
	}
	for _, test := range tests {
		_, err := parsePool([]byte(test.pool))
		if err == nil {
			t.Fatalf("TestParsePoolErrors: %s: expected an error", test.name)
		}
	}
}

func TestNewCandidateJSON(t *testing.T) {
	transactions, err := parsePool([]byte(`[{"sourceAccount": "` + testAccount + `", "sequenceNumber": 1,
		"operationCount": 2, "maxFeeBid": 300, "touchesOrderBook": true}]`))
	if err != nil {
		t.Fatalf("TestNewCandidateJSON: %+v", err)
	}
	set := &externalapi.TransactionSetV1{
		TxSet: externalapi.TransactionSetCore{Transactions: transactions},
		Properties: []externalapi.Property{
			&externalapi.DefaultBaseFeeProperty{Fee: 150},
			&externalapi.GroupBaseFeeProperty{Fee: 200, Indices: []int32{0}},
		},
	}

	decoded := newCandidateJSON(txsethashing.TransactionSetHash(set), set)
	if decoded.Version != 1 || decoded.OperationCount != 2 || len(decoded.Transactions) != 1 {
		t.Fatalf("TestNewCandidateJSON: unexpected candidate %+v", decoded)
	}
	if len(decoded.Properties) != 2 ||
		decoded.Properties[0].Type != "DefaultBaseFee" || decoded.Properties[0].Fee != 150 ||
		decoded.Properties[1].Type != "GroupBaseFee" || len(decoded.Properties[1].Indices) != 1 {

		t.Fatalf("TestNewCandidateJSON: unexpected properties %+v", decoded.Properties)
	}

	roundTripped, err := decoded.Transactions[0].toTransaction()
	if err != nil {
		t.Fatalf("TestNewCandidateJSON: toTransaction: %+v", err)
	}
	if !roundTripped.Equal(transactions[0]) {
		t.Fatalf("TestNewCandidateJSON: expected %s, got %s", transactions[0], roundTripped)
	}
}
