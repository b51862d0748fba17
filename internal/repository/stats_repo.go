package repository

import (
	"fmt"
	"time"

	"kinderpost/internal/authz"
	"kinderpost/internal/database"
)

// StatsRepository reads creation timestamps for aggregation. Bucketing
// happens in Go so the queries stay identical across dialects; the row sets
// are bounded by the time range the caller asks for.
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// childRecordTables are the statistics models whose rows hang off a child
var childRecordTables = map[string]string{
	"attendance": "attendance",
	"meals":      "meals",
	"naps":       "naps",
	"hygiene":    "hygiene",
	"moods":      "moods",
}

// KnownModel reports whether name is a model statistics can be computed for
func KnownModel(name string) bool {
	switch name {
	case "children", "posts", "comments", "users":
		return true
	}
	_, ok := childRecordTables[name]
	return ok
}

// ListCreationTimes returns the created_at timestamps of the named model's
// rows visible to the scope, restricted to [start, end].
func (r *StatsRepository) ListCreationTimes(model string, scope authz.Scope, start, end time.Time) ([]time.Time, error) {
	query, args, err := r.creationTimesQuery(model, scope)
	if err != nil {
		return nil, err
	}
	args = append(args, start, end)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s timestamps: %w", model, err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan timestamp: %w", err)
		}
		times = append(times, t)
	}
	return times, nil
}

func (r *StatsRepository) creationTimesQuery(model string, scope authz.Scope) (string, []interface{}, error) {
	if table, ok := childRecordTables[model]; ok {
		clause, args := childScopeClause(scope, "c")
		query := "SELECT r.created_at FROM " + table + " r JOIN children c ON c.id = r.child_id WHERE " +
			clause + " AND r.created_at BETWEEN ? AND ?"
		return query, args, nil
	}

	switch model {
	case "children":
		clause, args := childScopeClause(scope, "c")
		return "SELECT c.created_at FROM children c WHERE " + clause + " AND c.created_at BETWEEN ? AND ?", args, nil
	case "posts":
		clause, args := postScopeClause(scope)
		return "SELECT p.created_at FROM posts p WHERE " + clause + " AND p.created_at BETWEEN ? AND ?", args, nil
	case "comments":
		clause, args := postScopeClause(scope)
		query := "SELECT cm.created_at FROM comments cm JOIN posts p ON p.id = cm.post_id WHERE " +
			clause + " AND cm.created_at BETWEEN ? AND ?"
		return query, args, nil
	case "users":
		// account rows have no hierarchy path; only the unrestricted scope
		// may aggregate them
		if scope.Kind != authz.ScopeAll {
			return "SELECT created_at FROM users WHERE 1 = 0 AND created_at BETWEEN ? AND ?", nil, nil
		}
		return "SELECT created_at FROM users WHERE created_at BETWEEN ? AND ?", nil, nil
	}
	return "", nil, fmt.Errorf("unknown statistics model %q", model)
}
