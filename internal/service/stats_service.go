package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/cache"
	"kinderpost/internal/models"
	"kinderpost/internal/repository"
)

var (
	ErrUnknownModel    = errors.New("unknown statistics model")
	ErrUnknownInterval = errors.New("unknown statistics interval")
	ErrUnknownRange    = errors.New("unknown time range")
	ErrEmptyRange      = errors.New("start must be before end")
)

// Bucket is one time-bucketed count in a statistics series
type Bucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// Totals is the dashboard summary, shaped by the actor's visibility
type Totals struct {
	Kindergartens int `json:"kindergartens,omitempty"`
	Classes       int `json:"classes,omitempty"`
	Teachers      int `json:"teachers,omitempty"`
	Parents       int `json:"parents,omitempty"`
	Children      int `json:"children"`
}

// StatsService computes time-bucketed creation counts over the domain
// models. Results are cached for a bounded window; the cache key includes
// the actor's scope so actors with different visibility never share an
// entry. A miss and a hit always agree because the cache holds exactly the
// computed series.
type StatsService struct {
	statsRepo        *repository.StatsRepository
	kindergartenRepo *repository.KindergartenRepository
	childRepo        *repository.ChildRepository
	userRepo         *repository.UserRepository
	cache            *cache.Cache
}

// NewStatsService creates a stats service with a 10 minute result cache
func NewStatsService(statsRepo *repository.StatsRepository, kindergartenRepo *repository.KindergartenRepository, childRepo *repository.ChildRepository, userRepo *repository.UserRepository) *StatsService {
	return &StatsService{
		statsRepo:        statsRepo,
		kindergartenRepo: kindergartenRepo,
		childRepo:        childRepo,
		userRepo:         userRepo,
		cache:            cache.New(10 * time.Minute),
	}
}

// timeRanges are the predefined windows, measured back from now
var timeRanges = map[string]time.Duration{
	"past_hour":     time.Hour,
	"past_day":      24 * time.Hour,
	"past_week":     7 * 24 * time.Hour,
	"past_month":    30 * 24 * time.Hour,
	"past_3_months": 90 * 24 * time.Hour,
	"past_6_months": 180 * 24 * time.Hour,
	"past_year":     365 * 24 * time.Hour,
	"past_5_years":  5 * 365 * 24 * time.Hour,
}

// ResolveRange turns a predefined range name into a concrete window.
// "since_2004" is the catch-all that covers the full history.
func ResolveRange(name string, now time.Time) (time.Time, time.Time, error) {
	if name == "since_2004" {
		return time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC), now, nil
	}
	d, ok := timeRanges[name]
	if !ok {
		return time.Time{}, time.Time{}, ErrUnknownRange
	}
	return now.Add(-d), now, nil
}

// Aggregate returns the ordered series of (bucket start, count) for the
// named model between start and end at the given granularity
func (s *StatsService) Aggregate(actor authz.Actor, model string, start, end time.Time, interval string) ([]Bucket, error) {
	if !repository.KnownModel(model) {
		return nil, ErrUnknownModel
	}
	if !validInterval(interval) {
		return nil, ErrUnknownInterval
	}
	if !start.Before(end) {
		return nil, ErrEmptyRange
	}

	scope := actor.Scope()
	key := fmt.Sprintf("agg:%s:%s:%d:%d:%s", model, scope.CacheKey(), start.Unix(), end.Unix(), interval)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]Bucket), nil
	}

	times, err := s.statsRepo.ListCreationTimes(model, scope, start, end)
	if err != nil {
		return nil, err
	}
	buckets := bucketize(times, interval)

	s.cache.Set(key, buckets)
	return buckets, nil
}

func validInterval(interval string) bool {
	switch interval {
	case "day", "week", "month", "year":
		return true
	}
	return false
}

// bucketize groups timestamps into calendar buckets and returns them in
// ascending order. Weeks start on Monday.
func bucketize(times []time.Time, interval string) []Bucket {
	counts := make(map[time.Time]int)
	for _, t := range times {
		counts[truncate(t.UTC(), interval)]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for start, count := range counts {
		buckets = append(buckets, Bucket{Start: start, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Start.Before(buckets[j].Start) })
	return buckets
}

func truncate(t time.Time, interval string) time.Time {
	switch interval {
	case "day":
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case "week":
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case "month":
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "year":
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// DashboardTotals returns the role-shaped entity counts. Superadmins see
// global counts; admins the counts of their kindergarten; everyone else
// just the children they can see.
func (s *StatsService) DashboardTotals(actor authz.Actor) (*Totals, error) {
	scope := actor.Scope()
	key := "totals:" + scope.CacheKey()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*Totals), nil
	}

	totals := &Totals{}

	children, err := s.childRepo.CountChildren(scope)
	if err != nil {
		return nil, err
	}
	totals.Children = children

	switch actor.Role {
	case models.RoleSuperadmin:
		if totals.Kindergartens, err = s.kindergartenRepo.CountKindergartens(); err != nil {
			return nil, err
		}
		if totals.Classes, err = s.kindergartenRepo.CountClasses(); err != nil {
			return nil, err
		}
		if totals.Teachers, err = s.kindergartenRepo.CountTeachers(); err != nil {
			return nil, err
		}
		if totals.Parents, err = s.userRepo.CountUsersByRole(models.RoleParent); err != nil {
			return nil, err
		}

	case models.RoleAdmin:
		if actor.KindergartenID != 0 {
			classes, err := s.kindergartenRepo.ListClassesByKindergarten(actor.KindergartenID)
			if err != nil {
				return nil, err
			}
			totals.Classes = len(classes)
			teachers, err := s.kindergartenRepo.ListTeachersByKindergarten(actor.KindergartenID)
			if err != nil {
				return nil, err
			}
			totals.Teachers = len(teachers)
		}
	}

	s.cache.Set(key, totals)
	return totals, nil
}
