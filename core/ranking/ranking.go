// Package ranking composes the leaderboard: class standings and division-local ranks.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/berrycrepe/choco-chip/core/class"
)

const (
	// UnrankedDivision buckets users without a division.
	UnrankedDivision = "Unranked"
	// UnrankedGrade is the class grade of users without any graded class.
	UnrankedGrade = "Unranked"
)

// Row is a leaderboard entry as stored, ordered by rating then solved count.
type Row struct {
	ID          string `json:"id" db:"id"`
	Rank        int    `json:"rank" db:"-"`
	Name        string `json:"name" db:"name"`
	Division    string `json:"division" db:"division"`
	Rating      int    `json:"rating" db:"rating"`
	SolvedCount int    `json:"solvedCount" db:"solvedCount"`
	Wins        int    `json:"wins" db:"wins"`
	Losses      int    `json:"losses" db:"losses"`
	Draws       int    `json:"draws" db:"draws"`
}

type Entry struct {
	Row
	ClassLevel   int    `json:"classLevel"`
	ClassGrade   string `json:"classGrade"`
	ClassPercent int    `json:"classPercent"`
	DivisionRank int    `json:"divisionRank"`
}

// Compose enriches rows with their class standing and division rank.
// Entries keep the order of rows.
func Compose(rows []Row, solved map[string]class.SolvedSet, groups []class.Group) []Entry {
	entries := make([]Entry, len(rows))
	buckets := make(map[string][]int)
	for i, r := range rows {
		e := Entry{Row: r, ClassGrade: UnrankedGrade}
		if row, ok := class.HighestGraded(class.Progress(groups, solved[r.ID])); ok {
			e.ClassLevel = row.Level
			e.ClassGrade = "CLASS " + row.Grade
			e.ClassPercent = row.Percent
		}
		entries[i] = e

		division := r.Division
		if division == "" {
			division = UnrankedDivision
		}
		buckets[division] = append(buckets[division], i)
	}

	col := collate.New(language.Und)
	for _, idx := range buckets {
		sort.SliceStable(idx, func(a, b int) bool {
			x, y := entries[idx[a]], entries[idx[b]]
			if x.Rating != y.Rating {
				return x.Rating > y.Rating
			}
			if x.SolvedCount != y.SolvedCount {
				return x.SolvedCount > y.SolvedCount
			}
			return col.CompareString(x.Name, y.Name) < 0
		})
		for rank, i := range idx {
			entries[i].DivisionRank = rank + 1
		}
	}
	return entries
}

// Ranked assigns global ranks by position.
func Ranked(rows []Row) []Row {
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}
