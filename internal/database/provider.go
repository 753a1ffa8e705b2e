// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bookstar/bookstar/internal/metrics"
	"github.com/bookstar/bookstar/internal/models"
	"github.com/bookstar/bookstar/internal/recommend"
)

// DB implements recommend.DataProvider. Book ids in member_book and in the
// engine are the external catalog ids (book.aladin_book_id), not the
// surrogate primary key.

// GetMemberReadingLists returns the member's book ids partitioned by reading
// status: READED and READING form the read list, WANT_TO_READ the want list.
func (db *DB) GetMemberReadingLists(ctx context.Context, memberID int64) (recommend.ReadingLists, error) {
	defer metrics.ObserveQuery("reading_lists")()
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT book_id, status FROM member_book WHERE member_id = ? ORDER BY id`,
		memberID)
	if err != nil {
		return recommend.ReadingLists{}, fmt.Errorf("query reading lists: %w", err)
	}
	defer rows.Close()

	var lists recommend.ReadingLists
	for rows.Next() {
		var bookID int64
		var status string
		if err := rows.Scan(&bookID, &status); err != nil {
			return recommend.ReadingLists{}, fmt.Errorf("scan reading list row: %w", err)
		}
		if models.ReadingStatus(status).IsRead() {
			lists.ReadIDs = append(lists.ReadIDs, bookID)
		} else {
			lists.WantIDs = append(lists.WantIDs, bookID)
		}
	}
	return lists, rows.Err()
}

// GetBookAttributes returns category and author for the given book ids in a
// single batched lookup. Unknown ids are silently absent from the result.
func (db *DB) GetBookAttributes(ctx context.Context, bookIDs []int64) ([]recommend.BookAttribute, error) {
	defer metrics.ObserveQuery("book_attributes")()
	if len(bookIDs) == 0 {
		return nil, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	placeholders, args := inClause(bookIDs)
	query := fmt.Sprintf(
		`SELECT aladin_book_id, COALESCE(book_category, ''), COALESCE(author, '')
		 FROM book WHERE aladin_book_id IN (%s)`, placeholders)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query book attributes: %w", err)
	}
	defer rows.Close()

	var attrs []recommend.BookAttribute
	for rows.Next() {
		var attr recommend.BookAttribute
		if err := rows.Scan(&attr.BookID, &attr.Category, &attr.Author); err != nil {
			return nil, fmt.Errorf("scan book attribute row: %w", err)
		}
		attrs = append(attrs, attr)
	}
	return attrs, rows.Err()
}

// GetCatalog returns catalog rows excluding the given book ids, ordered by
// book id for deterministic scoring input.
func (db *DB) GetCatalog(ctx context.Context, excludeIDs []int64) ([]recommend.BookRow, error) {
	defer metrics.ObserveQuery("catalog")()
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT aladin_book_id, title, COALESCE(author, ''),
	                 COALESCE(book_category, ''), COALESCE(image_url, '')
	          FROM book`
	var args []any
	if len(excludeIDs) > 0 {
		placeholders, exArgs := inClause(excludeIDs)
		query += fmt.Sprintf(" WHERE aladin_book_id NOT IN (%s)", placeholders)
		args = exArgs
	}
	query += " ORDER BY aladin_book_id"

	return db.queryBookRows(ctx, query, args...)
}

// GetBooksByIDs returns catalog rows for the given book ids preserving the
// input order, capped at limit.
func (db *DB) GetBooksByIDs(ctx context.Context, bookIDs []int64, limit int) ([]recommend.BookRow, error) {
	defer metrics.ObserveQuery("books_by_ids")()
	if len(bookIDs) == 0 || limit <= 0 {
		return nil, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	placeholders, args := inClause(bookIDs)
	query := fmt.Sprintf(
		`SELECT aladin_book_id, title, COALESCE(author, ''),
		        COALESCE(book_category, ''), COALESCE(image_url, '')
		 FROM book WHERE aladin_book_id IN (%s)`, placeholders)

	rows, err := db.queryBookRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	// Re-order to match the caller's ranking before applying the cap.
	byID := make(map[int64]recommend.BookRow, len(rows))
	for _, row := range rows {
		byID[row.BookID] = row
	}
	ordered := make([]recommend.BookRow, 0, limit)
	for _, id := range bookIDs {
		if len(ordered) >= limit {
			break
		}
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// GetAllMemberBookPairs returns every member-book relation system-wide in
// insertion order.
func (db *DB) GetAllMemberBookPairs(ctx context.Context) ([]recommend.MemberBookPair, error) {
	defer metrics.ObserveQuery("member_book_pairs")()
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT member_id, book_id FROM member_book ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query member-book pairs: %w", err)
	}
	defer rows.Close()

	var pairs []recommend.MemberBookPair
	for rows.Next() {
		var pair recommend.MemberBookPair
		if err := rows.Scan(&pair.MemberID, &pair.BookID); err != nil {
			return nil, fmt.Errorf("scan member-book pair: %w", err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, rows.Err()
}

// GetRandomBooks returns up to n uniformly sampled catalog rows.
func (db *DB) GetRandomBooks(ctx context.Context, n int) ([]recommend.BookRow, error) {
	defer metrics.ObserveQuery("random_books")()
	if n <= 0 {
		return nil, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return db.queryBookRows(ctx,
		`SELECT aladin_book_id, title, COALESCE(author, ''),
		        COALESCE(book_category, ''), COALESCE(image_url, '')
		 FROM book ORDER BY random() LIMIT ?`, n)
}

func (db *DB) queryBookRows(ctx context.Context, query string, args ...any) ([]recommend.BookRow, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var result []recommend.BookRow
	for rows.Next() {
		var row recommend.BookRow
		if err := rows.Scan(&row.BookID, &row.Title, &row.Author, &row.Category, &row.ImageURL); err != nil {
			return nil, fmt.Errorf("scan book row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// inClause builds a placeholder list and argument slice for an IN clause.
func inClause(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}

// nullIfEmpty maps empty strings to SQL NULL on insert.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
