// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookstar/bookstar/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// InsertBook adds a catalog book. The external catalog id must be unique.
func (db *DB) InsertBook(ctx context.Context, book *models.Book) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`INSERT INTO book (aladin_book_id, title, author, book_category, image_url,
		                   isbn, isbn13, publisher, description, page, published_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING id`,
		book.AladinBookID, book.Title, nullIfEmpty(book.Author),
		nullIfEmpty(string(book.Category)), nullIfEmpty(book.ImageURL),
		nullIfEmpty(book.ISBN), nullIfEmpty(book.ISBN13),
		nullIfEmpty(book.Publisher), nullIfEmpty(book.Description),
		book.Page, sql.NullTime{Time: book.PublishedDate, Valid: !book.PublishedDate.IsZero()})
	if err := row.Scan(&book.ID); err != nil {
		return fmt.Errorf("insert book %d: %w", book.AladinBookID, err)
	}
	return nil
}

// InsertMember adds a member.
func (db *DB) InsertMember(ctx context.Context, member *models.Member) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`INSERT INTO member (email, nick_name, profile_image, privacy)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		member.Email, nullIfEmpty(member.NickName),
		nullIfEmpty(member.ProfileImage), member.Privacy)
	if err := row.Scan(&member.ID); err != nil {
		return fmt.Errorf("insert member %s: %w", member.Email, err)
	}
	return nil
}

// InsertMemberBook adds a member-book relation. BookID is the external
// catalog id.
func (db *DB) InsertMemberBook(ctx context.Context, rel *models.MemberBook) error {
	if !rel.Status.Valid() {
		return fmt.Errorf("invalid reading status %q", rel.Status)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`INSERT INTO member_book (member_id, book_id, status, content, count)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		rel.MemberID, rel.BookID, string(rel.Status),
		nullIfEmpty(rel.Content), rel.Count)
	if err := row.Scan(&rel.ID); err != nil {
		return fmt.Errorf("insert member_book %d/%d: %w", rel.MemberID, rel.BookID, err)
	}
	return nil
}

// GetMember fetches a member by id.
func (db *DB) GetMember(ctx context.Context, memberID int64) (*models.Member, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var member models.Member
	var nickName, profileImage sql.NullString
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, email, nick_name, profile_image, privacy
		 FROM member WHERE id = ?`, memberID).
		Scan(&member.ID, &member.Email, &nickName, &profileImage, &member.Privacy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member %d: %w", memberID, err)
	}
	member.NickName = nickName.String
	member.ProfileImage = profileImage.String
	return &member, nil
}

// CountBooks returns the catalog size.
func (db *DB) CountBooks(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM book`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}
