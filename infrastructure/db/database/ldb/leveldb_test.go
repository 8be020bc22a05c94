package ldb

import (
	"os"
	"reflect"
	"testing"

	"github.com/kaspanet/gentxset/infrastructure/db/database"
)

func prepareDatabaseForTest(t *testing.T, testName string) (ldb *LevelDB, teardownFunc func()) {
	// Create a temp db to run tests against
	path, err := os.MkdirTemp("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir unexpectedly "+
			"failed: %s", testName, err)
	}
	ldb, err = NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB unexpectedly "+
			"failed: %s", testName, err)
	}
	teardownFunc = func() {
		err = ldb.Close()
		if err != nil {
			t.Fatalf("%s: Close unexpectedly "+
				"failed: %s", testName, err)
		}
		os.RemoveAll(path)
	}
	return ldb, teardownFunc
}

func TestLevelDBSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBSanity")
	defer teardownFunc()

	key := database.MakeBucket([]byte("bucket")).Key([]byte("key"))
	putData := []byte("Hello world!")
	err := ldb.Put(key, putData)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Put returned "+
			"unexpected error: %s", err)
	}

	getData, err := ldb.Get(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Get returned "+
			"unexpected error: %s", err)
	}
	if !reflect.DeepEqual(getData, putData) {
		t.Fatalf("TestLevelDBSanity: get data and "+
			"put data are not equal. Put: %s, got: %s",
			string(putData), string(getData))
	}

	err = ldb.Delete(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Delete returned "+
			"unexpected error: %s", err)
	}
	exists, err := ldb.Has(key)
	if err != nil {
		t.Fatalf("TestLevelDBSanity: Has returned "+
			"unexpected error: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBSanity: key still exists after Delete")
	}
	_, err = ldb.Get(key)
	if !database.IsNotFoundError(err) {
		t.Fatalf("TestLevelDBSanity: Get of a deleted key "+
			"returned wrong error: %s", err)
	}
}

func TestLevelDBTransactionSanity(t *testing.T) {
	ldb, teardownFunc := prepareDatabaseForTest(t, "TestLevelDBTransactionSanity")
	defer teardownFunc()

	bucket := database.MakeBucket([]byte("bucket"))
	committedKey := bucket.Key([]byte("committed"))
	rolledBackKey := bucket.Key([]byte("rolledBack"))

	dbTx, err := ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin "+
			"unexpectedly failed: %s", err)
	}
	err = dbTx.Put(committedKey, []byte("value"))
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put "+
			"unexpectedly failed: %s", err)
	}
	exists, err := ldb.Has(committedKey)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Has "+
			"unexpectedly failed: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBTransactionSanity: uncommitted data is visible")
	}
	err = dbTx.Commit()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Commit "+
			"unexpectedly failed: %s", err)
	}
	exists, err = ldb.Has(committedKey)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Has "+
			"unexpectedly failed: %s", err)
	}
	if !exists {
		t.Fatalf("TestLevelDBTransactionSanity: committed data is missing")
	}

	dbTx, err = ldb.Begin()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Begin "+
			"unexpectedly failed: %s", err)
	}
	err = dbTx.Put(rolledBackKey, []byte("value"))
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Put "+
			"unexpectedly failed: %s", err)
	}
	err = dbTx.Rollback()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Rollback "+
			"unexpectedly failed: %s", err)
	}
	err = dbTx.RollbackUnlessClosed()
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: RollbackUnlessClosed "+
			"unexpectedly failed: %s", err)
	}
	err = dbTx.Commit()
	if err == nil {
		t.Fatalf("TestLevelDBTransactionSanity: Commit of a closed " +
			"transaction unexpectedly succeeded")
	}
	exists, err = ldb.Has(rolledBackKey)
	if err != nil {
		t.Fatalf("TestLevelDBTransactionSanity: Has "+
			"unexpectedly failed: %s", err)
	}
	if exists {
		t.Fatalf("TestLevelDBTransactionSanity: rolled back data is visible")
	}
}
