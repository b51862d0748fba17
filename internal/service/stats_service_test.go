package service

import (
	"errors"
	"testing"
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/models"
)

func TestResolveRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		rangeName string
		wantStart time.Time
		wantErr   error
	}{
		{"past hour", "past_hour", now.Add(-time.Hour), nil},
		{"past day", "past_day", now.Add(-24 * time.Hour), nil},
		{"past week", "past_week", now.Add(-7 * 24 * time.Hour), nil},
		{"since 2004", "since_2004", time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC), nil},
		{"unknown", "past_century", time.Time{}, ErrUnknownRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := ResolveRange(tt.rangeName, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResolveRange(%q) error = %v, want %v", tt.rangeName, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(now) {
				t.Errorf("end = %v, want %v", end, now)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	// 2026-03-15 is a Sunday; its week starts Monday 2026-03-09
	at := time.Date(2026, 3, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		interval string
		want     time.Time
	}{
		{"day", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"week", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			if got := truncate(at, tt.interval); !got.Equal(tt.want) {
				t.Errorf("truncate(%s) = %v, want %v", tt.interval, got, tt.want)
			}
		})
	}

	// A Monday is its own week start
	monday := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	if got := truncate(monday, "week"); !got.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("truncate(monday, week) = %v", got)
	}
}

func TestBucketize(t *testing.T) {
	times := []time.Time{
		time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
	}

	buckets := bucketize(times, "day")
	if len(buckets) != 2 {
		t.Fatalf("bucketize returned %d buckets, want 2", len(buckets))
	}
	if buckets[0].Count != 2 || buckets[1].Count != 1 {
		t.Errorf("counts = %d, %d, want 2, 1", buckets[0].Count, buckets[1].Count)
	}
	if !buckets[0].Start.Before(buckets[1].Start) {
		t.Error("buckets are not in ascending order")
	}

	if got := bucketize(nil, "day"); len(got) != 0 {
		t.Errorf("bucketize(nil) = %v, want empty", got)
	}
}

func TestAggregateValidation(t *testing.T) {
	s := NewStatsService(nil, nil, nil, nil)
	actor := authz.Actor{UserID: 1, Role: models.RoleSuperadmin}
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	if _, err := s.Aggregate(actor, "unicorns", start, end, "day"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("unknown model = %v, want ErrUnknownModel", err)
	}
	if _, err := s.Aggregate(actor, "meals", start, end, "fortnight"); !errors.Is(err, ErrUnknownInterval) {
		t.Errorf("unknown interval = %v, want ErrUnknownInterval", err)
	}
	if _, err := s.Aggregate(actor, "meals", end, start, "day"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("inverted range = %v, want ErrEmptyRange", err)
	}
}
