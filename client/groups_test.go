package client

import (
	"testing"
	"time"
)

func entryAt(id int64, t time.Time) Entry {
	return Entry{Message: Message{ID: id, Content: "m", CreatedAt: t}}
}

func TestGroupByDaySplitsAcrossMidnight(t *testing.T) {
	// 23:59 and 00:01 two minutes apart must land in different groups.
	dayN := time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local)
	dayN1 := time.Date(2024, 3, 11, 0, 1, 0, 0, time.Local)

	groups := GroupByDay([]Entry{entryAt(1, dayN), entryAt(2, dayN1)}, dayN1)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if len(groups[0].Entries) != 1 || len(groups[1].Entries) != 1 {
		t.Fatalf("unexpected group sizes: %d, %d", len(groups[0].Entries), len(groups[1].Entries))
	}
}

func TestGroupByDayKeepsSameLocalDateTogether(t *testing.T) {
	// 00:01 and 23:58 are almost a day apart but share a local date.
	early := time.Date(2024, 3, 10, 0, 1, 0, 0, time.Local)
	late := time.Date(2024, 3, 10, 23, 58, 0, 0, time.Local)

	groups := GroupByDay([]Entry{entryAt(1, early), entryAt(2, late)}, late)
	if len(groups) != 1 {
		t.Fatalf("expected 1 day group, got %d", len(groups))
	}
	if len(groups[0].Entries) != 2 {
		t.Fatalf("expected both messages in one group, got %d", len(groups[0].Entries))
	}
}

func TestGroupByDayPreservesOrderWithinDay(t *testing.T) {
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	entries := []Entry{
		entryAt(1, base),
		entryAt(2, base.Add(time.Minute)),
		entryAt(3, base.Add(2*time.Minute)),
	}

	groups := GroupByDay(entries, base)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	for i, entry := range groups[0].Entries {
		if entry.ID != int64(i+1) {
			t.Fatalf("order not preserved: position %d has id %d", i, entry.ID)
		}
	}
}

func TestDayLabels(t *testing.T) {
	now := time.Date(2024, 3, 11, 12, 0, 0, 0, time.Local)

	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, 3, 11, 0, 1, 0, 0, time.Local), "Today"},
		{time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local), "Yesterday"},
		{time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local), "January 5, 2024"},
	}

	for _, tc := range cases {
		if got := dayLabel(tc.at, now); got != tc.want {
			t.Errorf("dayLabel(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil, time.Now()); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}
