// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package models defines the persistent entities shared between the database
// layer and the API: books, members, and member-book reading records.
package models

import "time"

// ReadingStatus classifies a member's relationship with a book.
type ReadingStatus string

const (
	// StatusReaded marks a book the member has finished.
	StatusReaded ReadingStatus = "READED"
	// StatusReading marks a book the member is currently reading.
	StatusReading ReadingStatus = "READING"
	// StatusWantToRead marks a book on the member's wish list.
	StatusWantToRead ReadingStatus = "WANT_TO_READ"
)

// Valid reports whether s is one of the known reading statuses.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusReaded, StatusReading, StatusWantToRead:
		return true
	default:
		return false
	}
}

// IsRead reports whether the status counts toward the member's read list.
// READED and READING both do; WANT_TO_READ forms the want list.
func (s ReadingStatus) IsRead() bool {
	return s == StatusReaded || s == StatusReading
}

// BookCategory is the fixed catalog classification for books.
type BookCategory string

// Catalog categories.
const (
	CategoryArt        BookCategory = "ART"
	CategoryChildren   BookCategory = "CHILDREN"
	CategoryComics     BookCategory = "COMICS"
	CategoryCooking    BookCategory = "COOKING"
	CategoryEconomics  BookCategory = "ECONOMICS"
	CategoryEducation  BookCategory = "EDUCATION"
	CategoryEssay      BookCategory = "ESSAY"
	CategoryHealth     BookCategory = "HEALTH"
	CategoryHistory    BookCategory = "HISTORY"
	CategoryLiterature BookCategory = "LITERATURE"
	CategoryMusic      BookCategory = "MUSIC"
	CategoryNovel      BookCategory = "NOVEL"
	CategoryOther      BookCategory = "OTHER"
	CategoryPhilosophy BookCategory = "PHILOSOPHY"
	CategoryPoetry     BookCategory = "POETRY"
	CategoryPolitics   BookCategory = "POLITICS"
	CategoryReligion   BookCategory = "RELIGION"
	CategoryScience    BookCategory = "SCIENCE"
	CategorySelfHelp   BookCategory = "SELF_HELP"
	CategoryTechnology BookCategory = "TECHNOLOGY"
	CategoryTravel     BookCategory = "TRAVEL"
)

// AllCategories lists every catalog category in declaration order.
var AllCategories = []BookCategory{
	CategoryArt, CategoryChildren, CategoryComics, CategoryCooking,
	CategoryEconomics, CategoryEducation, CategoryEssay, CategoryHealth,
	CategoryHistory, CategoryLiterature, CategoryMusic, CategoryNovel,
	CategoryOther, CategoryPhilosophy, CategoryPoetry, CategoryPolitics,
	CategoryReligion, CategoryScience, CategorySelfHelp, CategoryTechnology,
	CategoryTravel,
}

// Valid reports whether c is one of the known catalog categories.
func (c BookCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Book is a catalog entry. AladinBookID is the stable external identifier
// used as the join key everywhere; the surrogate ID exists only for storage.
type Book struct {
	ID            int64         `json:"id"`
	AladinBookID  int64         `json:"aladin_book_id"`
	Title         string        `json:"title"`
	Author        string        `json:"author,omitempty"`
	Category      BookCategory  `json:"book_category,omitempty"`
	ImageURL      string        `json:"image_url,omitempty"`
	ISBN          string        `json:"isbn,omitempty"`
	ISBN13        string        `json:"isbn13,omitempty"`
	Publisher     string        `json:"publisher,omitempty"`
	Description   string        `json:"description,omitempty"`
	Page          int           `json:"page,omitempty"`
	PublishedDate time.Time     `json:"published_date,omitempty"`
	CreatedDate   time.Time     `json:"created_date,omitempty"`
	UpdatedDate   time.Time     `json:"updated_date,omitempty"`
}

// Member is a registered user. Only the ID matters to the recommendation
// engine; the remaining fields exist for seed data and debugging queries.
type Member struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email,omitempty"`
	NickName     string    `json:"nick_name,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Privacy      bool      `json:"privacy"`
	CreatedDate  time.Time `json:"created_date,omitempty"`
	UpdatedDate  time.Time `json:"updated_date,omitempty"`
}

// MemberBook links a member to a book with a reading status. BookID refers to
// Book.AladinBookID, not the surrogate key. Uniqueness of (member, book) is
// not enforced here; the engine tolerates duplicates.
type MemberBook struct {
	ID          int64         `json:"id"`
	MemberID    int64         `json:"member_id"`
	BookID      int64         `json:"book_id"`
	Status      ReadingStatus `json:"reading_status"`
	Content     string        `json:"content,omitempty"`
	Count       float64       `json:"count,omitempty"`
	CreatedDate time.Time     `json:"created_date,omitempty"`
	UpdatedDate time.Time     `json:"updated_date,omitempty"`
}
