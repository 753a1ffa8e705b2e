// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"fmt"
)

// initSchema creates the tables and indexes if they do not exist. Schema
// mirrors the production service: book metadata keyed by the external
// catalog id, members, and the member-book relation with a reading status.
func (db *DB) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_book_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_member_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_member_book_id START 1`,
		`CREATE TABLE IF NOT EXISTS book (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_book_id'),
			aladin_book_id BIGINT NOT NULL UNIQUE,
			title VARCHAR NOT NULL,
			author VARCHAR,
			book_category VARCHAR,
			image_url VARCHAR,
			isbn VARCHAR,
			isbn13 VARCHAR,
			publisher VARCHAR,
			description VARCHAR,
			page INTEGER,
			published_date DATE,
			created_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS member (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_member_id'),
			email VARCHAR NOT NULL UNIQUE,
			nick_name VARCHAR,
			profile_image VARCHAR,
			privacy BOOLEAN DEFAULT true,
			created_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS member_book (
			id BIGINT PRIMARY KEY DEFAULT nextval('seq_member_book_id'),
			member_id BIGINT NOT NULL,
			book_id BIGINT NOT NULL,
			status VARCHAR NOT NULL,
			content VARCHAR,
			count DOUBLE DEFAULT 0,
			created_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (member_id, book_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_member_book_member ON member_book(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_member_book_book ON member_book(book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_book_category ON book(book_category)`,
		`CREATE INDEX IF NOT EXISTS idx_book_author ON book(author)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
