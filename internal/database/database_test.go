// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bookstar/bookstar/internal/config"
	"github.com/bookstar/bookstar/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:      filepath.Join(t.TempDir(), "test.db"),
		MaxMemory: "256MB",
		Threads:   2,
	}
	db, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

// seedSmallLibrary inserts three members and five books with known statuses.
func seedSmallLibrary(t *testing.T, db *DB) (memberIDs []int64) {
	t.Helper()
	ctx := context.Background()

	books := []models.Book{
		{AladinBookID: 10, Title: "Alpha", Author: "Kim", Category: models.CategoryNovel},
		{AladinBookID: 20, Title: "Beta", Author: "Lee", Category: models.CategoryScience},
		{AladinBookID: 30, Title: "Gamma", Author: "Kim", Category: models.CategoryNovel},
		{AladinBookID: 40, Title: "Delta", Author: "Park", Category: models.CategoryHistory},
		{AladinBookID: 50, Title: "Epsilon", Author: "Choi", Category: models.CategoryEssay},
	}
	for i := range books {
		if err := db.InsertBook(ctx, &books[i]); err != nil {
			t.Fatalf("insert book: %v", err)
		}
	}

	members := []models.Member{
		{Email: "a@test.dev", Privacy: true},
		{Email: "b@test.dev", Privacy: true},
		{Email: "c@test.dev", Privacy: false},
	}
	for i := range members {
		if err := db.InsertMember(ctx, &members[i]); err != nil {
			t.Fatalf("insert member: %v", err)
		}
		memberIDs = append(memberIDs, members[i].ID)
	}

	relations := []models.MemberBook{
		{MemberID: memberIDs[0], BookID: 10, Status: models.StatusReaded},
		{MemberID: memberIDs[0], BookID: 20, Status: models.StatusWantToRead},
		{MemberID: memberIDs[1], BookID: 10, Status: models.StatusReading},
		{MemberID: memberIDs[1], BookID: 30, Status: models.StatusReaded},
		{MemberID: memberIDs[2], BookID: 40, Status: models.StatusWantToRead},
	}
	for i := range relations {
		if err := db.InsertMemberBook(ctx, &relations[i]); err != nil {
			t.Fatalf("insert relation: %v", err)
		}
	}
	return memberIDs
}

func TestGetMemberReadingLists(t *testing.T) {
	db := testDB(t)
	memberIDs := seedSmallLibrary(t, db)
	ctx := context.Background()

	lists, err := db.GetMemberReadingLists(ctx, memberIDs[0])
	if err != nil {
		t.Fatalf("GetMemberReadingLists failed: %v", err)
	}
	if len(lists.ReadIDs) != 1 || lists.ReadIDs[0] != 10 {
		t.Errorf("read list wrong: %v", lists.ReadIDs)
	}
	if len(lists.WantIDs) != 1 || lists.WantIDs[0] != 20 {
		t.Errorf("want list wrong: %v", lists.WantIDs)
	}

	// READING counts as read.
	lists, err = db.GetMemberReadingLists(ctx, memberIDs[1])
	if err != nil {
		t.Fatalf("GetMemberReadingLists failed: %v", err)
	}
	if len(lists.ReadIDs) != 2 {
		t.Errorf("expected READING in read list: %v", lists.ReadIDs)
	}

	// Unknown member yields empty lists, not an error.
	lists, err = db.GetMemberReadingLists(ctx, 9999)
	if err != nil {
		t.Fatalf("GetMemberReadingLists for unknown member failed: %v", err)
	}
	if !lists.Empty() {
		t.Errorf("expected empty lists for unknown member: %+v", lists)
	}
}

func TestGetBookAttributes(t *testing.T) {
	db := testDB(t)
	seedSmallLibrary(t, db)
	ctx := context.Background()

	attrs, err := db.GetBookAttributes(ctx, []int64{10, 20, 9999})
	if err != nil {
		t.Fatalf("GetBookAttributes failed: %v", err)
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attributes, got %d", len(attrs))
	}
	byID := make(map[int64]string, len(attrs))
	for _, attr := range attrs {
		byID[attr.BookID] = attr.Category
	}
	if byID[10] != "NOVEL" || byID[20] != "SCIENCE" {
		t.Errorf("attribute categories wrong: %v", byID)
	}

	attrs, err = db.GetBookAttributes(ctx, nil)
	if err != nil || attrs != nil {
		t.Errorf("empty id list should return nothing: %v %v", attrs, err)
	}
}

func TestGetCatalogExcludes(t *testing.T) {
	db := testDB(t)
	seedSmallLibrary(t, db)
	ctx := context.Background()

	rows, err := db.GetCatalog(ctx, []int64{10, 20})
	if err != nil {
		t.Fatalf("GetCatalog failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.BookID == 10 || row.BookID == 20 {
			t.Errorf("excluded book %d returned", row.BookID)
		}
	}
	// Ordered by book id.
	for i := 1; i < len(rows); i++ {
		if rows[i].BookID < rows[i-1].BookID {
			t.Errorf("catalog not ordered: %v before %v", rows[i-1].BookID, rows[i].BookID)
		}
	}

	all, err := db.GetCatalog(ctx, nil)
	if err != nil {
		t.Fatalf("GetCatalog without exclusions failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected full catalog, got %d", len(all))
	}
}

func TestGetBooksByIDsPreservesOrderAndLimit(t *testing.T) {
	db := testDB(t)
	seedSmallLibrary(t, db)
	ctx := context.Background()

	rows, err := db.GetBooksByIDs(ctx, []int64{30, 10, 50}, 2)
	if err != nil {
		t.Fatalf("GetBooksByIDs failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(rows))
	}
	if rows[0].BookID != 30 || rows[1].BookID != 10 {
		t.Errorf("input order not preserved: %v %v", rows[0].BookID, rows[1].BookID)
	}
}

func TestGetAllMemberBookPairs(t *testing.T) {
	db := testDB(t)
	memberIDs := seedSmallLibrary(t, db)
	ctx := context.Background()

	pairs, err := db.GetAllMemberBookPairs(ctx)
	if err != nil {
		t.Fatalf("GetAllMemberBookPairs failed: %v", err)
	}
	if len(pairs) != 5 {
		t.Fatalf("expected 5 pairs, got %d", len(pairs))
	}
	if pairs[0].MemberID != memberIDs[0] || pairs[0].BookID != 10 {
		t.Errorf("insertion order not preserved: %+v", pairs[0])
	}
}

func TestGetRandomBooks(t *testing.T) {
	db := testDB(t)
	seedSmallLibrary(t, db)
	ctx := context.Background()

	rows, err := db.GetRandomBooks(ctx, 3)
	if err != nil {
		t.Fatalf("GetRandomBooks failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	seen := make(map[int64]struct{})
	for _, row := range rows {
		if _, dup := seen[row.BookID]; dup {
			t.Errorf("duplicate book %d in random sample", row.BookID)
		}
		seen[row.BookID] = struct{}{}
	}

	// Asking for more than the catalog holds returns everything.
	rows, err = db.GetRandomBooks(ctx, 100)
	if err != nil {
		t.Fatalf("GetRandomBooks failed: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected whole catalog, got %d", len(rows))
	}
}

func TestGetMember(t *testing.T) {
	db := testDB(t)
	memberIDs := seedSmallLibrary(t, db)
	ctx := context.Background()

	member, err := db.GetMember(ctx, memberIDs[0])
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if member.Email != "a@test.dev" {
		t.Errorf("wrong member: %+v", member)
	}

	if _, err := db.GetMember(ctx, 9999); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertMemberBookRejectsBadStatus(t *testing.T) {
	db := testDB(t)
	memberIDs := seedSmallLibrary(t, db)

	rel := models.MemberBook{MemberID: memberIDs[0], BookID: 50, Status: "BOGUS"}
	if err := db.InsertMemberBook(context.Background(), &rel); err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestSeedIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	count, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks failed: %v", err)
	}
	if count == 0 {
		t.Fatal("seed inserted nothing")
	}

	if err := db.Seed(ctx); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	again, err := db.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks failed: %v", err)
	}
	if again != count {
		t.Fatalf("seed not idempotent: %d then %d books", count, again)
	}
}
