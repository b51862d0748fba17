package repository

import (
	"strings"

	"kinderpost/internal/authz"
)

// childScopeClause translates a visibility scope into a WHERE fragment over
// a children table aliased as alias. Callers AND it with their own filters.
// A scope that can match nothing compiles to "1 = 0" so the composed query
// returns an empty set rather than failing.
func childScopeClause(s authz.Scope, alias string) (string, []interface{}) {
	switch s.Kind {
	case authz.ScopeAll:
		return "1 = 1", nil
	case authz.ScopeKindergarten:
		return alias + ".kindergarten_id = ?", []interface{}{s.KindergartenID}
	case authz.ScopeClasses:
		placeholders, args := inClause(s.ClassIDs)
		return alias + ".class_id IN (" + placeholders + ")", args
	case authz.ScopeParent:
		return alias + ".parent_id = ?", []interface{}{s.ParentID}
	}
	return "1 = 0", nil
}

// inClause builds the placeholder list and argument slice for an IN (...)
func inClause(ids []int64) (string, []interface{}) {
	if len(ids) == 0 {
		// IN () is invalid SQL; an impossible value keeps the query well-formed
		return "?", []interface{}{int64(-1)}
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

// RecordFilter carries the caller-supplied list filters for daily records.
// Zero values mean "no filter"; Date and the From/To range are exclusive of
// each other (Date wins if both are set).
type RecordFilter struct {
	ChildID int64
	Date    string
	From    string
	To      string
}

// clause renders the filter against a record table aliased as alias
func (f RecordFilter) clause(alias string) (string, []interface{}) {
	var parts []string
	var args []interface{}

	if f.ChildID != 0 {
		parts = append(parts, alias+".child_id = ?")
		args = append(args, f.ChildID)
	}
	switch {
	case f.Date != "":
		parts = append(parts, alias+".date = ?")
		args = append(args, f.Date)
	case f.From != "" && f.To != "":
		parts = append(parts, alias+".date BETWEEN ? AND ?")
		args = append(args, f.From, f.To)
	case f.From != "":
		parts = append(parts, alias+".date >= ?")
		args = append(args, f.From)
	case f.To != "":
		parts = append(parts, alias+".date <= ?")
		args = append(args, f.To)
	}

	if len(parts) == 0 {
		return "1 = 1", nil
	}
	return strings.Join(parts, " AND "), args
}
