package txset_test

import (
	"context"
	"os"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/gentxset/domain/txset"
	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/domain/txset/ruleerrors"
	"github.com/kaspanet/gentxset/domain/txset/utils/testutils"
	"github.com/kaspanet/gentxset/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

func prepareEngineForTest(t *testing.T, testName string) (engine txset.TxSetEngine, teardownFunc func()) {
	path, err := os.MkdirTemp("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly failed: %s", testName, err)
	}
	db, err := ldb.NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly failed: %s", testName, err)
	}
	engine, err = txset.NewFactory().NewTxSetEngine(db)
	if err != nil {
		t.Fatalf("%s: NewTxSetEngine unexpectedly failed: %s", testName, err)
	}
	teardownFunc = func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly failed: %s", testName, err)
		}
		os.RemoveAll(path)
	}
	return engine, teardownFunc
}

func TestBuildValidateAndStore(t *testing.T) {
	engine, teardown := prepareEngineForTest(t, "TestBuildValidateAndStore")
	defer teardown()

	ledgerContext := testutils.NewLedgerContext(100, 40)
	var pending []*externalapi.TransactionRef
	for i := 0; i < 6; i++ {
		pending = append(pending, testutils.NewTransaction(byte(i), 1, 10, int64(1000-100*i), false))
	}

	candidate := engine.BuildCandidate(context.Background(), ledgerContext, testutils.NewSliceIterator(pending...))
	err := engine.ValidateCandidate(candidate, ledgerContext)
	if err != nil {
		t.Fatalf("TestBuildValidateAndStore: built candidate is invalid: %+v\n%s", err, spew.Sdump(candidate))
	}
	if candidate.TxSet.OperationCount() != 40 {
		t.Fatalf("TestBuildValidateAndStore: expected 40 operations, got %d", candidate.TxSet.OperationCount())
	}
	// The fifth transaction bid 600 and did not fit
	for i := range candidate.TxSet.Transactions {
		fee := engine.EffectiveFee(candidate, ledgerContext, i)
		if fee != 600 {
			t.Fatalf("TestBuildValidateAndStore: expected transaction %d to pay 600, got %d", i, fee)
		}
	}
	if engine.TotalFees(candidate, ledgerContext).Uint64() != 4*600 {
		t.Fatalf("TestBuildValidateAndStore: unexpected total fees %s", engine.TotalFees(candidate, ledgerContext).ToBig())
	}

	hash, err := engine.StageCandidate(candidate)
	if err != nil {
		t.Fatalf("TestBuildValidateAndStore: StageCandidate: %+v", err)
	}
	if !hash.Equal(engine.CandidateHash(candidate)) {
		t.Fatalf("TestBuildValidateAndStore: staged hash %s differs from the candidate hash %s",
			hash, engine.CandidateHash(candidate))
	}
	stored, err := engine.Candidate(hash)
	if err != nil {
		t.Fatalf("TestBuildValidateAndStore: Candidate: %+v", err)
	}
	if !stored.Equal(candidate) {
		t.Fatalf("TestBuildValidateAndStore: stored candidate differs: %s", spew.Sdump(stored))
	}

	onLedger, err := engine.CandidateHashes(&ledgerContext.PreviousLedgerHash)
	if err != nil {
		t.Fatalf("TestBuildValidateAndStore: CandidateHashes: %+v", err)
	}
	if len(onLedger) != 1 || !onLedger[0].Equal(hash) {
		t.Fatalf("TestBuildValidateAndStore: unexpected hashes on ledger %v", onLedger)
	}

	err = engine.DeleteCandidate(hash)
	if err != nil {
		t.Fatalf("TestBuildValidateAndStore: DeleteCandidate: %+v", err)
	}
	all, err := engine.CandidateHashes(nil)
	if err != nil {
		t.Fatalf("TestBuildValidateAndStore: CandidateHashes: %+v", err)
	}
	if len(all) != 0 {
		t.Fatalf("TestBuildValidateAndStore: expected no stored candidates, got %d", len(all))
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	engine, teardown := prepareEngineForTest(t, "TestSerializeRoundTrip")
	defer teardown()

	ledgerContext := testutils.NewLedgerContext(100, 100)
	candidate := testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{
		testutils.NewTransaction(1, 1, 1, 300, false),
		testutils.NewTransaction(2, 1, 1, 300, true),
	}, &externalapi.DefaultBaseFeeProperty{Fee: 200})

	serialized, err := engine.SerializeCandidate(candidate)
	if err != nil {
		t.Fatalf("TestSerializeRoundTrip: SerializeCandidate: %+v", err)
	}
	deserialized, err := engine.DeserializeCandidate(serialized)
	if err != nil {
		t.Fatalf("TestSerializeRoundTrip: DeserializeCandidate: %+v", err)
	}
	if !deserialized.Equal(candidate) {
		t.Fatalf("TestSerializeRoundTrip: got %s, want %s", spew.Sdump(deserialized), spew.Sdump(candidate))
	}
}

func TestRejectionCounts(t *testing.T) {
	engine, teardown := prepareEngineForTest(t, "TestRejectionCounts")
	defer teardown()

	ledgerContext := testutils.NewLedgerContext(100, 100)
	transactions := []*externalapi.TransactionRef{testutils.NewTransaction(1, 1, 1, 300, false)}
	lowDefault := testutils.NewTransactionSetV1(ledgerContext, transactions,
		&externalapi.DefaultBaseFeeProperty{Fee: 100})
	valid := testutils.NewTransactionSetV1(ledgerContext, transactions,
		&externalapi.DefaultBaseFeeProperty{Fee: 200})

	for i := 0; i < 2; i++ {
		err := engine.ValidateCandidate(lowDefault, ledgerContext)
		if !errors.Is(err, ruleerrors.ErrDefaultFeeNotAboveLedgerFee) {
			t.Fatalf("TestRejectionCounts: expected ErrDefaultFeeNotAboveLedgerFee, got %+v", err)
		}
	}

	result, err := engine.SelectBest(context.Background(),
		[]externalapi.GeneralizedTransactionSet{lowDefault, valid}, ledgerContext)
	if err != nil {
		t.Fatalf("TestRejectionCounts: SelectBest: %+v", err)
	}
	if result.BestIndex != 1 {
		t.Fatalf("TestRejectionCounts: expected candidate 1 to be selected, got %d", result.BestIndex)
	}

	counts := engine.RejectionCounts()
	if len(counts) != 1 || counts[ruleerrors.ErrDefaultFeeNotAboveLedgerFee.Kind()] != 3 {
		t.Fatalf("TestRejectionCounts: unexpected rejection counts %v", counts)
	}
}

func TestCompareCandidates(t *testing.T) {
	engine, teardown := prepareEngineForTest(t, "TestCompareCandidates")
	defer teardown()

	ledgerContext := testutils.NewLedgerContext(100, 100)
	small := testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{
		testutils.NewTransaction(1, 1, 1, 300, false),
	})
	large := testutils.NewTransactionSetV1(ledgerContext, []*externalapi.TransactionRef{
		testutils.NewTransaction(1, 1, 1, 300, false),
		testutils.NewTransaction(2, 1, 1, 300, false),
	})
	if engine.CompareCandidates(large, small, ledgerContext) <= 0 {
		t.Fatalf("TestCompareCandidates: expected the set with more operations to win")
	}
	if engine.CompareCandidates(small, large, ledgerContext) >= 0 {
		t.Fatalf("TestCompareCandidates: expected the comparison to be antisymmetric")
	}
}
