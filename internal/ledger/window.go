package ledger

import "time"

const dateLayout = "2006-01-02"

// Supported aggregation buckets. The match is case-sensitive: anything
// outside this set means "no date filter" and yields all-time totals.
const (
	BucketDay   = "Day"
	BucketWeek  = "Week"
	BucketMonth = "Month"
	BucketYear  = "Year"
)

type dateFilter struct {
	Exact bool   // date must equal Date rather than be >= Date
	Date  string // YYYY-MM-DD
}

// bucketFilter resolves a bucket to a lower bound relative to now.
// Dates are compared as YYYY-MM-DD text, which orders correctly.
func bucketFilter(bucket string, now time.Time) *dateFilter {
	switch bucket {
	case BucketDay:
		return &dateFilter{Exact: true, Date: now.Format(dateLayout)}
	case BucketWeek:
		// start of the ISO week (most recent Monday)
		offset := (int(now.Weekday()) + 6) % 7
		return &dateFilter{Date: now.AddDate(0, 0, -offset).Format(dateLayout)}
	case BucketMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &dateFilter{Date: first.Format(dateLayout)}
	case BucketYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return &dateFilter{Date: first.Format(dateLayout)}
	default:
		return nil
	}
}
