package helpers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/forgo/library/internal/database"
)

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that a record exists in the database
func AssertRecordExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()

	found, err := recordExists(db, table, id)
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}
	if !found {
		t.Errorf("expected record %s:%s to exist, but it doesn't", table, id)
	}
}

// AssertRecordNotExists checks that a record does not exist
func AssertRecordNotExists(t *testing.T, db database.Database, table, id string) {
	t.Helper()

	found, err := recordExists(db, table, id)
	if err != nil {
		t.Fatalf("failed to query for record: %v", err)
	}
	if found {
		t.Errorf("expected record %s:%s to not exist, but it does", table, id)
	}
}

func recordExists(db database.Database, table, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Accept either the bare key or a full table:key id
	if _, key, ok := strings.Cut(id, ":"); ok {
		id = key
	}

	results, err := db.Query(ctx, "SELECT id FROM type::thing($table, $id)", map[string]interface{}{
		"table": table,
		"id":    id,
	})
	if err != nil {
		return false, err
	}
	return hasResults(results), nil
}

// hasResults checks if a SurrealDB query returned any rows
func hasResults(results []interface{}) bool {
	if len(results) == 0 {
		return false
	}

	resp, ok := results[0].(map[string]interface{})
	if !ok {
		return false
	}
	rows, ok := resp["result"].([]interface{})
	return ok && len(rows) > 0
}

// ============================================================================
// Time Helpers
// ============================================================================

// TimePtr returns a pointer to t
func TimePtr(t time.Time) *time.Time {
	return &t
}

// Date returns midnight UTC on the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
