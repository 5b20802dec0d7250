// Package helpers provides test utility functions for the catalog.
//
// # Assertion Helpers
//
//	helpers.AssertRecordExists(t, db, "book", book.ID)
//	helpers.AssertRecordNotExists(t, db, "book", "missing")
//
// # Time Helpers
//
//	born := helpers.TimePtr(helpers.Date(1947, time.September, 21))
package helpers
