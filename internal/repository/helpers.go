package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forgo/library/internal/database"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Table names
const (
	tableAuthor       = "author"
	tableBook         = "book"
	tableGenre        = "genre"
	tableBookInstance = "bookinstance"
)

// SurrealDB CBOR tags that may reach us undecoded
const (
	cborTagRecordID = 8
	cborTagDatetime = 12
)

// queryRecord runs a lookup and returns its first record, or nil when it found nothing
func queryRecord(ctx context.Context, db database.Database, query string, vars map[string]interface{}) (map[string]interface{}, error) {
	result, err := db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: unexpected record format %T", database.ErrQuery, result)
	}
	return data, nil
}

// queryRecords runs a select and returns the records of its first statement
func queryRecords(ctx context.Context, db database.Database, query string, vars map[string]interface{}) ([]map[string]interface{}, error) {
	results, err := db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return extractQueryResults(results), nil
}

// queryCount runs a "SELECT count() ... GROUP ALL" query
func queryCount(ctx context.Context, db database.Database, query string, vars map[string]interface{}) (int, error) {
	results, err := db.Query(ctx, query, vars)
	if err != nil {
		return 0, err
	}
	return extractCount(results), nil
}

// replaceRecord runs an "UPDATE ... RETURN AFTER" and reports a record that
// does not exist as database.ErrNotFound
func replaceRecord(ctx context.Context, db database.Database, query string, vars map[string]interface{}) error {
	_, err := db.QueryOne(ctx, query+" RETURN AFTER", vars)
	return err
}

// newKey generates the key for a new record
func newKey() string {
	return uuid.NewString()
}

// recordRef builds a record link for use as a query variable
func recordRef(table, key string) *models.RecordID {
	rid := models.NewRecordID(table, key)
	return &rid
}

// recordRefs builds a list of record links
func recordRefs(table string, keys []string) []*models.RecordID {
	refs := make([]*models.RecordID, 0, len(keys))
	for _, key := range keys {
		refs = append(refs, recordRef(table, key))
	}
	return refs
}

// dateValue converts an optional time for storage; nil is stored as NONE
func dateValue(t *time.Time) *models.CustomDateTime {
	if t == nil {
		return &models.CustomDateTime{}
	}
	return &models.CustomDateTime{Time: t.UTC()}
}

// recordKey extracts the key part of a SurrealDB record id:
// "author:abc" -> "abc"
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case string:
		if _, key, ok := strings.Cut(v, ":"); ok {
			return strings.Trim(key, "`⟨⟩")
		}
		return v
	case models.RecordID:
		return fmt.Sprint(v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprint(v.ID)
		}
	case cbor.Tag:
		if v.Number == cborTagRecordID {
			if parts, ok := v.Content.([]interface{}); ok && len(parts) == 2 {
				return fmt.Sprint(parts[1])
			}
			if s, ok := v.Content.(string); ok {
				return recordKey(s)
			}
		}
	case map[string]interface{}:
		// Handle {"tb": "table", "id": "xxx"} and fetched documents
		for _, k := range []string{"id", "ID"} {
			if inner, ok := v[k]; ok {
				return recordKey(inner)
			}
		}
	}
	return ""
}

// recordKeys extracts the keys of a list of record ids
func recordKeys(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if key := recordKey(item); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// parseTime parses time from the formats the client may deliver, in UTC
func parseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), !t.IsZero()
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC(), true
		}
	case models.CustomDateTime:
		return t.Time.UTC(), !t.Time.IsZero()
	case *models.CustomDateTime:
		if t != nil {
			return t.Time.UTC(), !t.Time.IsZero()
		}
	case cbor.Tag:
		if t.Number == cborTagDatetime {
			if parts, ok := t.Content.([]interface{}); ok && len(parts) == 2 {
				s, _ := toInt64(parts[0])
				ns, _ := toInt64(parts[1])
				return time.Unix(s, ns).UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// extractQueryResults extracts the records of the first statement result
func extractQueryResults(results []interface{}) []map[string]interface{} {
	if len(results) == 0 {
		return nil
	}

	rows, ok := results[0].([]interface{})
	if first, isMap := results[0].(map[string]interface{}); isMap {
		rows, ok = first["result"].([]interface{})
	}
	if !ok {
		return nil
	}

	records := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			records = append(records, m)
		}
	}
	return records
}

// extractCount extracts count from a "SELECT count() ... GROUP ALL" result.
// An empty table yields no rows, which counts as zero.
func extractCount(results []interface{}) int {
	rows := extractQueryResults(results)
	if len(rows) == 0 {
		return 0
	}
	return extractCountValue(rows[0]["count"])
}

// extractCountValue converts various numeric types to int
func extractCountValue(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getTime extracts an optional time value from a map
func getTime(m map[string]interface{}, key string) *time.Time {
	if t, ok := parseTime(m[key]); ok {
		return &t
	}
	return nil
}

// getDocument returns a fetched linked document, or nil when the link was not fetched
func getDocument(m map[string]interface{}, key string) map[string]interface{} {
	doc, _ := m[key].(map[string]interface{})
	return doc
}

// getDocuments returns the fetched documents of a list of links
func getDocuments(m map[string]interface{}, key string) []map[string]interface{} {
	items, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	docs := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if doc, ok := item.(map[string]interface{}); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}
