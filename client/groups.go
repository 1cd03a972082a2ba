package client

import (
	"time"
)

// DayGroup is one calendar day's slice of the conversation, rendered under
// a single date header.
type DayGroup struct {
	// Date is the local calendar date in 2006-01-02 form.
	Date string
	// Label is the header text: Today, Yesterday, or the long date.
	Label string
	Entries []Entry
}

// localDate formats the local calendar date of a timestamp. Day equality
// compares these strings, not timestamp differences, so messages twenty
// hours apart on the same local date share a group and messages minutes
// apart across midnight do not.
func localDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

func dayLabel(t time.Time, now time.Time) string {
	date := localDate(t)
	if date == localDate(now) {
		return "Today"
	}
	if date == localDate(now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Local().Format("January 2, 2006")
}

// GroupByDay partitions an ordered view by local calendar day, one group
// per day in encounter order. Within a group the server's chronological
// order is preserved verbatim.
func GroupByDay(entries []Entry, now time.Time) []DayGroup {
	var groups []DayGroup
	for _, entry := range entries {
		date := localDate(entry.CreatedAt)
		if len(groups) == 0 || groups[len(groups)-1].Date != date {
			groups = append(groups, DayGroup{
				Date:  date,
				Label: dayLabel(entry.CreatedAt, now),
			})
		}
		last := &groups[len(groups)-1]
		last.Entries = append(last.Entries, entry)
	}
	return groups
}
