package ledger

import (
	"testing"
	"time"
)

func TestBucketFilter(t *testing.T) {
	// 2024-07-10 is a Wednesday
	wednesday := time.Date(2024, time.July, 10, 15, 4, 5, 0, time.UTC)

	cases := []struct {
		name   string
		bucket string
		now    time.Time
		want   *dateFilter
	}{
		{
			name:   "day is an exact match on today",
			bucket: BucketDay,
			now:    wednesday,
			want:   &dateFilter{Exact: true, Date: "2024-07-10"},
		},
		{
			name:   "week starts on the most recent monday",
			bucket: BucketWeek,
			now:    wednesday,
			want:   &dateFilter{Date: "2024-07-08"},
		},
		{
			name:   "week on a monday starts the same day",
			bucket: BucketWeek,
			now:    time.Date(2024, time.July, 8, 0, 0, 0, 0, time.UTC),
			want:   &dateFilter{Date: "2024-07-08"},
		},
		{
			name:   "week on a sunday reaches back six days",
			bucket: BucketWeek,
			now:    time.Date(2024, time.July, 14, 23, 59, 0, 0, time.UTC),
			want:   &dateFilter{Date: "2024-07-08"},
		},
		{
			name:   "month starts on the first",
			bucket: BucketMonth,
			now:    wednesday,
			want:   &dateFilter{Date: "2024-07-01"},
		},
		{
			name:   "year starts on january first",
			bucket: BucketYear,
			now:    wednesday,
			want:   &dateFilter{Date: "2024-01-01"},
		},
		{
			name:   "lowercase day is not a bucket",
			bucket: "day",
			now:    wednesday,
			want:   nil,
		},
		{
			name:   "unknown bucket means no filter",
			bucket: "Quarter",
			now:    wednesday,
			want:   nil,
		},
		{
			name:   "empty bucket means no filter",
			bucket: "",
			now:    wednesday,
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := bucketFilter(tc.bucket, tc.now)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("bucketFilter(%q) = %+v, want nil", tc.bucket, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("bucketFilter(%q) = nil, want %+v", tc.bucket, tc.want)
			}
			if got.Exact != tc.want.Exact || got.Date != tc.want.Date {
				t.Fatalf("bucketFilter(%q) = %+v, want %+v", tc.bucket, got, tc.want)
			}
		})
	}
}
