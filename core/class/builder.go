// Package class builds the CLASS progression groups and grades users against them.
package class

import (
	"sort"
	"strconv"
)

const (
	MaxPerClass = 8
	MinPerClass = 4
)

// Range is the tier range a CLASS level draws its problems from.
type Range struct {
	Level   int
	MinTier int
	MaxTier int
}

// Ranges are processed in ascending level order: lower levels claim problems first.
var Ranges = []Range{
	{Level: 1, MinTier: 1, MaxTier: 3},
	{Level: 2, MinTier: 4, MaxTier: 5},
	{Level: 3, MinTier: 6, MaxTier: 8},
	{Level: 4, MinTier: 9, MaxTier: 10},
	{Level: 5, MinTier: 11, MaxTier: 12},
	{Level: 6, MinTier: 13, MaxTier: 14},
	{Level: 7, MinTier: 15, MaxTier: 16},
	{Level: 8, MinTier: 17, MaxTier: 18},
	{Level: 9, MinTier: 19, MaxTier: 20},
	{Level: 10, MinTier: 21, MaxTier: 25},
}

type (
	// Candidate is a catalog problem eligible for a class.
	Candidate struct {
		ID          int
		Title       string
		Tier        int
		SolvedCount int
	}

	Problem struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		Tier       int    `json:"tier"`
		ClassLevel int    `json:"classLevel"`
		Essential  bool   `json:"essential"`
	}

	Group struct {
		Level        int       `json:"level"`
		Title        string    `json:"title"`
		Problems     []Problem `json:"problems"`
		BaseRequired int       `json:"baseRequired"`
	}
)

// EssentialCount is the number of leading problems required for the "+" grade.
func EssentialCount(size int) int {
	return (size + 2) / 3 // ceil(size / 3)
}

// BaseRequired is the number of solved problems required for the base grade: 75%, at least 1.
func BaseRequired(size int) int {
	req := (3*size + 3) / 4 // ceil(size * 0.75)
	if req < 1 {
		return 1
	}
	return req
}

// BuildGroups partitions the pool into one Group per Range.
// A problem is assigned to at most one group: ids claimed by a level are never reused by later levels.
func BuildGroups(pool []Candidate) []Group {
	used := make(map[int]struct{}, len(pool))
	groups := make([]Group, 0, len(Ranges))
	for _, rng := range Ranges {
		groups = append(groups, buildGroup(pool, rng, used))
	}
	return groups
}

func buildGroup(pool []Candidate, rng Range, used map[int]struct{}) Group {
	selected := make([]Candidate, 0, MaxPerClass)
	for _, p := range pool {
		if p.Tier < rng.MinTier || p.Tier > rng.MaxTier {
			continue
		}
		if _, ok := used[p.ID]; ok {
			continue
		}
		selected = append(selected, p)
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].SolvedCount > selected[j].SolvedCount })
	if len(selected) > MaxPerClass {
		selected = selected[:MaxPerClass]
	}
	for _, p := range selected {
		used[p.ID] = struct{}{}
	}

	if len(selected) < MinPerClass {
		selected = append(selected, pickFallback(pool, used, rng.Level, MinPerClass-len(selected))...)
	}
	selected = unique(selected)
	if len(selected) > MaxPerClass {
		selected = selected[:MaxPerClass]
	}

	essentials := EssentialCount(len(selected))
	problems := make([]Problem, 0, len(selected))
	for i, p := range selected {
		problems = append(problems, Problem{
			ID:         p.ID,
			Title:      p.Title,
			Tier:       p.Tier,
			ClassLevel: rng.Level,
			Essential:  i < essentials,
		})
	}

	return Group{
		Level:        rng.Level,
		Title:        "CLASS " + strconv.Itoa(rng.Level),
		Problems:     problems,
		BaseRequired: BaseRequired(len(selected)),
	}
}

// pickFallback takes up to `need` unused problems from the whole pool,
// closest to the ideal tier (level*2 + 1) first, most solved first on ties.
func pickFallback(pool []Candidate, used map[int]struct{}, level, need int) []Candidate {
	ideal := level*2 + 1
	sorted := make([]Candidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := abs(sorted[i].Tier-ideal), abs(sorted[j].Tier-ideal)
		if di != dj {
			return di < dj
		}
		return sorted[i].SolvedCount > sorted[j].SolvedCount
	})

	picked := make([]Candidate, 0, need)
	for _, p := range sorted {
		if len(picked) >= need {
			break
		}
		if _, ok := used[p.ID]; ok {
			continue
		}
		picked = append(picked, p)
		used[p.ID] = struct{}{}
	}
	return picked
}

func unique(problems []Candidate) []Candidate {
	seen := make(map[int]struct{}, len(problems))
	res := problems[:0]
	for _, p := range problems {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		res = append(res, p)
	}
	return res
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
