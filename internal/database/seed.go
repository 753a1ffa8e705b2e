// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"fmt"

	"github.com/bookstar/bookstar/internal/logging"
	"github.com/bookstar/bookstar/internal/models"
)

// Seed loads a small sample library for local development. No-op when the
// catalog already has rows.
func (db *DB) Seed(ctx context.Context) error {
	count, err := db.CountBooks(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logging.Debug().Int64("books", count).Msg("Seed skipped, catalog not empty")
		return nil
	}

	books := []models.Book{
		{AladinBookID: 1001, Title: "The Vegetarian", Author: "Han Kang", Category: models.CategoryNovel},
		{AladinBookID: 1002, Title: "Human Acts", Author: "Han Kang", Category: models.CategoryNovel},
		{AladinBookID: 1003, Title: "Pachinko", Author: "Min Jin Lee", Category: models.CategoryNovel},
		{AladinBookID: 1004, Title: "Cosmos", Author: "Carl Sagan", Category: models.CategoryScience},
		{AladinBookID: 1005, Title: "A Brief History of Time", Author: "Stephen Hawking", Category: models.CategoryScience},
		{AladinBookID: 1006, Title: "Sapiens", Author: "Yuval Noah Harari", Category: models.CategoryHistory},
		{AladinBookID: 1007, Title: "The Power of Habit", Author: "Charles Duhigg", Category: models.CategorySelfHelp},
		{AladinBookID: 1008, Title: "Thinking, Fast and Slow", Author: "Daniel Kahneman", Category: models.CategoryPhilosophy},
		{AladinBookID: 1009, Title: "Clean Code", Author: "Robert C. Martin", Category: models.CategoryTechnology},
		{AladinBookID: 1010, Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Category: models.CategoryTechnology},
		{AladinBookID: 1011, Title: "Justice", Author: "Michael Sandel", Category: models.CategoryPolitics},
		{AladinBookID: 1012, Title: "The Little Prince", Author: "Antoine de Saint-Exupery", Category: models.CategoryNovel},
	}
	for i := range books {
		if err := db.InsertBook(ctx, &books[i]); err != nil {
			return fmt.Errorf("seed book: %w", err)
		}
	}

	members := []models.Member{
		{Email: "reader1@bookstar.dev", NickName: "novel_lover", Privacy: true},
		{Email: "reader2@bookstar.dev", NickName: "science_fan", Privacy: true},
		{Email: "reader3@bookstar.dev", NickName: "dev_reader", Privacy: false},
	}
	for i := range members {
		if err := db.InsertMember(ctx, &members[i]); err != nil {
			return fmt.Errorf("seed member: %w", err)
		}
	}

	relations := []models.MemberBook{
		{MemberID: members[0].ID, BookID: 1001, Status: models.StatusReaded},
		{MemberID: members[0].ID, BookID: 1003, Status: models.StatusReading},
		{MemberID: members[0].ID, BookID: 1006, Status: models.StatusWantToRead},
		{MemberID: members[1].ID, BookID: 1004, Status: models.StatusReaded},
		{MemberID: members[1].ID, BookID: 1005, Status: models.StatusWantToRead},
		{MemberID: members[1].ID, BookID: 1006, Status: models.StatusReaded},
		{MemberID: members[2].ID, BookID: 1009, Status: models.StatusReaded},
		{MemberID: members[2].ID, BookID: 1010, Status: models.StatusWantToRead},
		{MemberID: members[2].ID, BookID: 1004, Status: models.StatusReading},
	}
	for i := range relations {
		if err := db.InsertMemberBook(ctx, &relations[i]); err != nil {
			return fmt.Errorf("seed relation: %w", err)
		}
	}

	logging.Info().
		Int("books", len(books)).
		Int("members", len(members)).
		Int("relations", len(relations)).
		Msg("Seed data loaded")
	return nil
}
