package hashes

import "testing"

func TestHashWriterDomainSeparation(t *testing.T) {
	data := []byte("the same bytes")

	setWriter := NewTransactionSetHashWriter()
	setWriter.InfallibleWrite(data)
	setHash := setWriter.Finalize()

	txWriter := NewTransactionHashWriter()
	txWriter.InfallibleWrite(data)
	txHash := txWriter.Finalize()

	if setHash.Equal(txHash) {
		t.Fatalf("TestHashWriterDomainSeparation: hashes of different domains should differ")
	}

	againWriter := NewTransactionSetHashWriter()
	againWriter.InfallibleWrite(data[:4])
	againWriter.InfallibleWrite(data[4:])
	if !againWriter.Finalize().Equal(setHash) {
		t.Fatalf("TestHashWriterDomainSeparation: incremental writes should hash like a single write")
	}
}
