package class

import (
	"math"
	"strconv"
	"strings"
)

// Grade decorations.
const (
	DecorationNone   = "none"
	DecorationSilver = "silver" // N+
	DecorationGold   = "gold"   // N++
)

// SolvedSet holds the public numbers of the problems a user has solved.
type SolvedSet map[int]struct{}

func NewSolvedSet(ids ...int) SolvedSet {
	set := make(SolvedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s SolvedSet) Add(id int) { s[id] = struct{}{} }

func (s SolvedSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// ProgressRow is a user's progress in one class.
type ProgressRow struct {
	Level           int    `json:"level"`
	Percent         int    `json:"percent"`
	SolvedTotal     int    `json:"solvedTotal"`
	Total           int    `json:"total"`
	SolvedEssential int    `json:"solvedEssential"`
	EssentialTotal  int    `json:"essentialTotal"`
	Grade           string `json:"grade"`
	FullyCleared    bool   `json:"fullyCleared"`
}

// Progress computes one ProgressRow per group.
func Progress(groups []Group, solved SolvedSet) []ProgressRow {
	rows := make([]ProgressRow, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, progressRow(group, solved))
	}
	return rows
}

func progressRow(group Group, solved SolvedSet) ProgressRow {
	var solvedTotal, solvedEssential, essentialTotal int
	for _, p := range group.Problems {
		isSolved := solved.Has(p.ID)
		if isSolved {
			solvedTotal++
		}
		if p.Essential {
			essentialTotal++
			if isSolved {
				solvedEssential++
			}
		}
	}
	total := len(group.Problems)

	// each satisfied condition overrides the previous one
	var grade string
	level := strconv.Itoa(group.Level)
	if solvedTotal >= group.BaseRequired {
		grade = level
	}
	if essentialTotal > 0 && solvedEssential >= essentialTotal {
		grade = level + "+"
	}
	if total > 0 && solvedTotal >= total {
		grade = level + "++"
	}

	var percent int
	if total > 0 {
		percent = int(math.Round(float64(solvedTotal) / float64(total) * 100))
	}

	return ProgressRow{
		Level:           group.Level,
		Percent:         percent,
		SolvedTotal:     solvedTotal,
		Total:           total,
		SolvedEssential: solvedEssential,
		EssentialTotal:  essentialTotal,
		Grade:           grade,
		FullyCleared:    solvedTotal >= total, // vacuously true for empty groups
	}
}

// RecommendedClass is the level right after the highest consecutively cleared one, capped at len(rows).
func RecommendedClass(rows []ProgressRow) int {
	next := 1
	for _, row := range rows {
		if !row.FullyCleared {
			break
		}
		next = row.Level + 1
	}
	if next > len(rows) {
		return len(rows)
	}
	return next
}

// HighestGraded returns the last row, in level order, holding a grade.
func HighestGraded(rows []ProgressRow) (ProgressRow, bool) {
	var best ProgressRow
	var found bool
	for _, row := range rows {
		if row.Grade != "" {
			best = row
			found = true
		}
	}
	return best, found
}

// Decoration returns the decoration of a grade string such as "3++".
func Decoration(grade string) string {
	switch {
	case strings.HasSuffix(grade, "++"):
		return DecorationGold
	case strings.HasSuffix(grade, "+"):
		return DecorationSilver
	default:
		return DecorationNone
	}
}
