//go:build integration

// Package testdb provides database helpers for integration tests.
//
// Each test runs in its own transaction that is rolled back when the test
// completes, so tests can share one database without cleanup:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        drafts := postgres.NewPostgresDraftStore(tx, nil)
//	        // ...
//	    })
//	}
//
// Tests are skipped when DATABASE_URL is not set.
package testdb
