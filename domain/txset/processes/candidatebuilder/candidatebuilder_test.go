package candidatebuilder

import (
	"context"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/gentxset/domain/txset/model"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/processes/feeresolver"
	"github.com/kaspanet/gentxset/domain/txset/processes/legacysetchecker"
	"github.com/kaspanet/gentxset/domain/txset/processes/txsetvalidator"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/kaspanet/gentxset/domain/txset/utils/testutils"
	"github.com/pkg/errors"
)

func build(t *testing.T, testName string, ledgerContext *externalapi.LedgerContext,
	pending model.PendingTransactionIterator) *externalapi.TransactionSetV1 {

	set := New().BuildCandidate(context.Background(), ledgerContext, pending)
	err := txsetvalidator.New(legacysetchecker.New()).ValidateTransactionSet(set, ledgerContext)
	if err != nil {
		t.Fatalf("%s: the built candidate is invalid: %+v\n%s", testName, err, spew.Sdump(set))
	}
	return set
}

func TestBuildCandidateEmptyPool(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	set := build(t, "TestBuildCandidateEmptyPool", ledgerContext, testutils.NewSliceIterator())

	if len(set.TxSet.Transactions) != 0 || len(set.Properties) != 0 {
		t.Fatalf("TestBuildCandidateEmptyPool: expected an empty set, got %s", spew.Sdump(set))
	}
	if !set.TxSet.PreviousLedgerHash.Equal(&ledgerContext.PreviousLedgerHash) {
		t.Fatalf("TestBuildCandidateEmptyPool: unexpected previous ledger hash %s", set.TxSet.PreviousLedgerHash)
	}
}

func TestBuildCandidateUncongested(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	pending := []*externalapi.TransactionRef{
		testutils.NewTransaction(1, 1, 3, 500, false),
		testutils.NewTransaction(2, 1, 2, 400, false),
		testutils.NewTransaction(3, 1, 1, 300, false),
	}
	set := build(t, "TestBuildCandidateUncongested", ledgerContext, testutils.NewSliceIterator(pending...))

	if !set.Equal(testutils.NewTransactionSetV1(ledgerContext, pending)) {
		t.Fatalf("TestBuildCandidateUncongested: unexpected candidate %s", spew.Sdump(set))
	}
	resolver := feeresolver.New()
	for i := range set.TxSet.Transactions {
		if fee := resolver.EffectiveFee(set, ledgerContext, i); fee != 100 {
			t.Fatalf("TestBuildCandidateUncongested: expected transaction %d to pay 100, got %d", i, fee)
		}
	}
}

func TestBuildCandidateSurgePricing(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 200)
	pending := make([]*externalapi.TransactionRef, 13)
	for i := range pending {
		pending[i] = testutils.NewTransaction(byte(i+1), 1, 20, int64(1500-100*i), false)
	}
	set := build(t, "TestBuildCandidateSurgePricing", ledgerContext, testutils.NewSliceIterator(pending...))

	if !set.Equal(testutils.NewTransactionSetV1(ledgerContext, pending[:10],
		&externalapi.DefaultBaseFeeProperty{Fee: 500})) {
		t.Fatalf("TestBuildCandidateSurgePricing: unexpected candidate %s", spew.Sdump(set))
	}
	if set.TxSet.OperationCount() != 200 {
		t.Fatalf("TestBuildCandidateSurgePricing: expected 200 operations, got %d", set.TxSet.OperationCount())
	}
	resolver := feeresolver.New()
	for i := range set.TxSet.Transactions {
		if fee := resolver.EffectiveFee(set, ledgerContext, i); fee != 500 {
			t.Fatalf("TestBuildCandidateSurgePricing: expected transaction %d to pay 500, got %d", i, fee)
		}
	}
}

func TestBuildCandidateSurgePricingBelowLedgerFee(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 10)
	pending := []*externalapi.TransactionRef{
		testutils.NewTransaction(1, 1, 8, 300, false),
		testutils.NewTransaction(2, 1, 8, 50, false),
	}
	set := build(t, "TestBuildCandidateSurgePricingBelowLedgerFee", ledgerContext,
		testutils.NewSliceIterator(pending...))

	if !set.Equal(testutils.NewTransactionSetV1(ledgerContext, pending[:1])) {
		t.Fatalf("TestBuildCandidateSurgePricingBelowLedgerFee: unexpected candidate %s", spew.Sdump(set))
	}
}

// TestBuildCandidateSurgePricingAfterCheaperTransactions covers a cap that
// triggers on a bid higher than bids already included, as happens when an
// account's expensive transaction waits behind its own cheap head.
func TestBuildCandidateSurgePricingAfterCheaperTransactions(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(5, 10)
	accountB1 := testutils.NewTransaction(2, 1, 3, 500, false)
	accountA1 := testutils.NewTransaction(1, 1, 3, 10, false)
	accountA2 := testutils.NewTransaction(1, 2, 8, 1000, false)

	set := build(t, "TestBuildCandidateSurgePricingAfterCheaperTransactions", ledgerContext,
		testutils.NewSliceIterator(accountB1, accountA1, accountA2))

	expected := testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{accountB1, accountA1},
		&externalapi.DefaultBaseFeeProperty{Fee: 10})
	if !set.Equal(expected) {
		t.Fatalf("TestBuildCandidateSurgePricingAfterCheaperTransactions: expected %s, got %s",
			spew.Sdump(expected), spew.Sdump(set))
	}
	resolver := feeresolver.New()
	for i, tx := range set.TxSet.Transactions {
		fee := resolver.EffectiveFee(set, ledgerContext, i)
		if fee > tx.MaxFeeBid {
			t.Fatalf("TestBuildCandidateSurgePricingAfterCheaperTransactions: transaction with bid %d "+
				"resolves to fee %d", tx.MaxFeeBid, fee)
		}
	}
}

// TestBuildCandidateSurgePricingOmittedGroup covers a cap whose default fee
// must also respect the bids of order-book members whose group fee is omitted.
func TestBuildCandidateSurgePricingOmittedGroup(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(5, 10)
	orderBook := testutils.NewTransaction(1, 1, 3, 50, true)
	regular := testutils.NewTransaction(2, 1, 3, 700, false)
	capping := testutils.NewTransaction(3, 1, 8, 600, false)

	set := build(t, "TestBuildCandidateSurgePricingOmittedGroup", ledgerContext,
		testutils.NewSliceIterator(regular, orderBook, capping))

	expected := testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{regular, orderBook},
		&externalapi.DefaultBaseFeeProperty{Fee: 50})
	if !set.Equal(expected) {
		t.Fatalf("TestBuildCandidateSurgePricingOmittedGroup: expected %s, got %s",
			spew.Sdump(expected), spew.Sdump(set))
	}
}

func TestBuildCandidateOrderBookGroup(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	first := testutils.NewTransaction(1, 1, 60, 1000, true)
	second := testutils.NewTransaction(2, 1, 41, 900, true)
	closing := testutils.NewTransaction(3, 1, 10, 800, true)
	closingAccountFollowUp := testutils.NewTransaction(3, 2, 1, 800, false)
	regular := testutils.NewTransaction(4, 1, 5, 700, false)

	set := build(t, "TestBuildCandidateOrderBookGroup", ledgerContext,
		testutils.NewSliceIterator(first, second, closing, closingAccountFollowUp, regular))

	expected := testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{first, second, regular})
	indices := []int32{testutils.IndexOf(expected, first), testutils.IndexOf(expected, second)}
	if indices[0] > indices[1] {
		indices[0], indices[1] = indices[1], indices[0]
	}
	expected.Properties = []externalapi.Property{&externalapi.GroupBaseFeeProperty{Fee: 800, Indices: indices}}
	if !set.Equal(expected) {
		t.Fatalf("TestBuildCandidateOrderBookGroup: expected %s, got %s", spew.Sdump(expected), spew.Sdump(set))
	}

	resolver := feeresolver.New()
	expectedFees := map[externalapi.DomainHash]int64{first.Hash: 800, second.Hash: 800, regular.Hash: 100}
	for i, tx := range set.TxSet.Transactions {
		if fee := resolver.EffectiveFee(set, ledgerContext, i); fee != expectedFees[tx.Hash] {
			t.Fatalf("TestBuildCandidateOrderBookGroup: expected %s to pay %d, got %d",
				tx.Hash, expectedFees[tx.Hash], fee)
		}
	}
}

func TestBuildCandidateNoOrderBookTransactions(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	pending := make([]*externalapi.TransactionRef, 50)
	for i := range pending {
		pending[i] = testutils.NewTransaction(byte(i+1), 1, 10, 1000, false)
	}
	set := build(t, "TestBuildCandidateNoOrderBookTransactions", ledgerContext, testutils.NewSliceIterator(pending...))

	for _, property := range set.Properties {
		if _, ok := property.(*externalapi.GroupBaseFeeProperty); ok {
			t.Fatalf("TestBuildCandidateNoOrderBookTransactions: unexpected group property")
		}
	}
}

// TestOrderBookGroupClosingBelowLedgerFee follows a pool whose order-book
// group closes at a bid that does not exceed the ledger base fee.
func TestOrderBookGroupClosingBelowLedgerFee(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	first := testutils.NewTransaction(1, 1, 50, 10, true)
	second := testutils.NewTransaction(2, 1, 60, 20, true)
	third := testutils.NewTransaction(3, 1, 40, 5, true)

	accumulator := newCandidateAccumulator(1000, 1000*4096, 101)
	expectedResults := []stepResult{stepIncluded, stepSkippedOrderBook, stepSkippedOrderBook}
	for i, tx := range []*externalapi.TransactionRef{first, second, third} {
		if result := accumulator.step(tx); result != expectedResults[i] {
			t.Fatalf("TestOrderBookGroupClosingBelowLedgerFee: step %d: expected %d, got %d",
				i, expectedResults[i], result)
		}
	}
	if accumulator.state != stateOrderBookClosed {
		t.Fatalf("TestOrderBookGroupClosingBelowLedgerFee: expected state %s, got %s",
			stateOrderBookClosed, accumulator.state)
	}
	if accumulator.orderBookGroupFee != 20 {
		t.Fatalf("TestOrderBookGroupClosingBelowLedgerFee: expected group fee 20, got %d",
			accumulator.orderBookGroupFee)
	}

	transactions := accumulator.sortedTransactions()
	raw := &externalapi.TransactionSetV1{
		TxSet: externalapi.TransactionSetCore{
			PreviousLedgerHash: ledgerContext.PreviousLedgerHash,
			Transactions:       transactions,
		},
		Properties: accumulator.rawProperties(transactions),
	}
	err := txsetvalidator.New(legacysetchecker.New()).ValidateTransactionSet(raw, ledgerContext)
	if !errors.Is(err, ruleerrors.ErrGroupFeeNotAboveDefault) {
		t.Fatalf("TestOrderBookGroupClosingBelowLedgerFee: expected ErrGroupFeeNotAboveDefault, got %+v", err)
	}

	set := build(t, "TestOrderBookGroupClosingBelowLedgerFee", ledgerContext,
		testutils.NewSliceIterator(first, second, third))
	if !set.Equal(testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{first})) {
		t.Fatalf("TestOrderBookGroupClosingBelowLedgerFee: unexpected candidate %s", spew.Sdump(set))
	}
}

func TestBuildCandidateSkipsUnfitTransactions(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 2)
	tooLarge := testutils.NewTransaction(1, 1, 1, 1000, false)
	tooLarge.Envelope = make([]byte, 2*4096)
	tooLargeFollowUp := testutils.NewTransaction(1, 2, 1, 1000, false)
	noOperations := testutils.NewTransaction(2, 1, 0, 1000, false)
	fit := testutils.NewTransaction(3, 1, 1, 900, false)

	set := build(t, "TestBuildCandidateSkipsUnfitTransactions", ledgerContext,
		testutils.NewSliceIterator(tooLarge, tooLargeFollowUp, noOperations, fit, fit))

	if !set.Equal(testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{fit})) {
		t.Fatalf("TestBuildCandidateSkipsUnfitTransactions: unexpected candidate %s", spew.Sdump(set))
	}
}

func TestBuildCandidateIsDeterministic(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 300)
	pending := make([]*externalapi.TransactionRef, 40)
	for i := range pending {
		pending[i] = testutils.NewTransaction(byte(i%7), int64(i), uint32(i%13+1), int64(2000-i*10), i%3 == 0)
	}

	first := build(t, "TestBuildCandidateIsDeterministic", ledgerContext, testutils.NewSliceIterator(pending...))
	second := build(t, "TestBuildCandidateIsDeterministic", ledgerContext, testutils.NewSliceIterator(pending...))
	if !first.Equal(second) {
		t.Fatalf("TestBuildCandidateIsDeterministic: builds differ:\n%s\n%s", spew.Sdump(first), spew.Sdump(second))
	}
}

func TestBuildCandidateTerminatesOnEndlessInput(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 50)
	pending := &testutils.EndlessIterator{}
	set := build(t, "TestBuildCandidateTerminatesOnEndlessInput", ledgerContext, pending)

	if set.TxSet.OperationCount() != 50 {
		t.Fatalf("TestBuildCandidateTerminatesOnEndlessInput: expected 50 operations, got %d",
			set.TxSet.OperationCount())
	}
	if pending.Yielded != 51 {
		t.Fatalf("TestBuildCandidateTerminatesOnEndlessInput: expected 51 transactions consumed, got %d",
			pending.Yielded)
	}
	if len(set.Properties) != 1 || !set.Properties[0].Equal(&externalapi.DefaultBaseFeeProperty{Fee: 1000}) {
		t.Fatalf("TestBuildCandidateTerminatesOnEndlessInput: unexpected properties %s", spew.Sdump(set.Properties))
	}
}

type cancellingIterator struct {
	inner  model.PendingTransactionIterator
	cancel context.CancelFunc
	after  int
	count  int
}

func (it *cancellingIterator) Next() (*externalapi.TransactionRef, bool) {
	it.count++
	if it.count == it.after {
		it.cancel()
	}
	return it.inner.Next()
}

func TestBuildCandidateInterrupted(t *testing.T) {
	ledgerContext := testutils.NewLedgerContext(100, 1000)
	validator := txsetvalidator.New(legacysetchecker.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	set := New().BuildCandidate(ctx, ledgerContext, &testutils.EndlessIterator{})
	if len(set.TxSet.Transactions) != 0 || len(set.Properties) != 0 {
		t.Fatalf("TestBuildCandidateInterrupted: expected an empty set, got %s", spew.Sdump(set))
	}

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	pending := &cancellingIterator{inner: &testutils.EndlessIterator{}, cancel: cancel, after: 10}
	set = New().BuildCandidate(ctx, ledgerContext, pending)
	if len(set.TxSet.Transactions) != 10 || len(set.Properties) != 0 {
		t.Fatalf("TestBuildCandidateInterrupted: expected 10 transactions and no properties, got %s",
			spew.Sdump(set))
	}
	err := validator.ValidateTransactionSet(set, ledgerContext)
	if err != nil {
		t.Fatalf("TestBuildCandidateInterrupted: the interrupted candidate is invalid: %+v", err)
	}
}
