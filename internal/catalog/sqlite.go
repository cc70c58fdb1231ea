package catalog

import (
	"context"
	"database/sql"
	"fmt"

	// modernc.org/sqlite registers the "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/ruminaider/tagpick/internal/multiselect"
)

// DefaultQuery lists items from a table named "items".
const DefaultQuery = "SELECT key, text FROM items ORDER BY rowid"

// FromSQLite runs query against the database at dbPath. The first column is
// the key and the second the text; a single-column result uses the key as
// text.
func FromSQLite(ctx context.Context, dbPath, query string) (Catalog, error) {
	if query == "" {
		query = DefaultQuery
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return Catalog{}, fmt.Errorf("opening catalog database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA query_only=ON;"); err != nil {
		return Catalog{}, fmt.Errorf("opening catalog database: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return Catalog{}, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Catalog{}, fmt.Errorf("querying catalog: %w", err)
	}
	if len(cols) == 0 {
		return Catalog{}, fmt.Errorf("querying catalog: no columns")
	}

	var items []multiselect.Item
	for rows.Next() {
		dest := make([]any, len(cols))
		var key, text sql.NullString
		dest[0] = &key
		if len(cols) > 1 {
			dest[1] = &text
		}
		for i := 2; i < len(cols); i++ {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return Catalog{}, fmt.Errorf("scanning catalog row: %w", err)
		}
		items = append(items, multiselect.Item{Key: key.String, Text: text.String})
	}
	if err := rows.Err(); err != nil {
		return Catalog{}, fmt.Errorf("querying catalog: %w", err)
	}

	items, err = Validate(items)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{Items: items}, nil
}
