// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "testing"

func TestReadingStatusValid(t *testing.T) {
	tests := []struct {
		status ReadingStatus
		want   bool
	}{
		{StatusReaded, true},
		{StatusReading, true},
		{StatusWantToRead, true},
		{ReadingStatus(""), false},
		{ReadingStatus("FINISHED"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("ReadingStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestReadingStatusIsRead(t *testing.T) {
	if !StatusReaded.IsRead() {
		t.Error("READED should count as read")
	}
	if !StatusReading.IsRead() {
		t.Error("READING should count as read")
	}
	if StatusWantToRead.IsRead() {
		t.Error("WANT_TO_READ should not count as read")
	}
}

func TestBookCategoryValid(t *testing.T) {
	for _, c := range AllCategories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}

	if BookCategory("FICTION").Valid() {
		t.Error("unknown category should be invalid")
	}
	if BookCategory("").Valid() {
		t.Error("empty category should be invalid")
	}
}

func TestAllCategoriesCount(t *testing.T) {
	if len(AllCategories) != 21 {
		t.Errorf("expected 21 catalog categories, got %d", len(AllCategories))
	}
}
