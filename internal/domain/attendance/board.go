package attendance

import (
	"sort"
	"strings"
)

// Filter values shared by the dashboards.
const (
	FilterAll          = "all"
	FilterNoDepartment = "no-dept"
	FilterLate         = "kechikkan"
)

// EmployeeView is one dashboard row: who the employee is plus their derived view.
type EmployeeView struct {
	ID             string  `json:"id"`
	EmployeeCode   string  `json:"employee_code"`
	FullName       string  `json:"full_name"`
	Username       string  `json:"username"`
	Position       string  `json:"position"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	Level          *int    `json:"level,omitempty"`
	LastLogID      *string `json:"last_log_id,omitempty"`
	View
}

// SortByLevel orders items by ascending level. Items without a level go last
// and keep their input order.
func SortByLevel[T any](items []T, level func(T) *int) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := level(items[i]), level(items[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

// BoardFilter is the filter state of one dashboard session. It is a plain
// value owned by the caller.
type BoardFilter struct {
	Search       string
	DepartmentID string
	Status       string
}

func (f BoardFilter) matchesSearch(row EmployeeView) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{row.FullName, row.Position, row.Username, row.EmployeeCode} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (f BoardFilter) matchesDepartment(row EmployeeView) bool {
	switch f.DepartmentID {
	case "", FilterAll:
		return true
	case FilterNoDepartment:
		return row.DepartmentID == nil || *row.DepartmentID == ""
	default:
		return row.DepartmentID != nil && *row.DepartmentID == f.DepartmentID
	}
}

func (f BoardFilter) matchesStatus(row EmployeeView) bool {
	switch f.Status {
	case "", FilterAll:
		return true
	case FilterLate:
		return row.IsLate
	default:
		return string(row.Status) == f.Status
	}
}

// Matches reports whether row passes every criterion of f.
func (f BoardFilter) Matches(row EmployeeView) bool {
	return f.matchesSearch(row) && f.matchesDepartment(row) && f.matchesStatus(row)
}

// Apply returns the rows that match f, preserving order.
func (f BoardFilter) Apply(rows []EmployeeView) []EmployeeView {
	out := make([]EmployeeView, 0, len(rows))
	for _, row := range rows {
		if f.Matches(row) {
			out = append(out, row)
		}
	}
	return out
}

// Views extracts the derived views from rows.
func Views(rows []EmployeeView) []View {
	out := make([]View, len(rows))
	for i, row := range rows {
		out[i] = row.View
	}
	return out
}
