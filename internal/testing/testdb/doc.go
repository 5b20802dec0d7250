// Package testdb provides test database utilities for the catalog.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//	}
//
// The catalog schema is applied on setup. Tests are skipped when run with
// -short or when no SurrealDB answers at TEST_DB_HOST:TEST_DB_PORT.
//
// # Isolation
//
// Each test gets an isolated database namespace, removed by Close.
//
// # Timeout Context
//
//	ctx := tdb.Ctx() // 10 second timeout
package testdb
