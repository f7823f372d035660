package class

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// group returns a group of `size` problems numbered from 1, with the standard essential and base rules.
func group(level, size int) Group {
	problems := make([]Problem, 0, size)
	essentials := EssentialCount(size)
	for i := 0; i < size; i++ {
		problems = append(problems, Problem{ID: level*100 + i + 1, Tier: level, ClassLevel: level, Essential: i < essentials})
	}
	return Group{Level: level, Title: "CLASS", Problems: problems, BaseRequired: BaseRequired(size)}
}

func solvedOf(g Group, idx ...int) []int {
	ids := make([]int, 0, len(idx))
	for _, i := range idx {
		ids = append(ids, g.Problems[i].ID)
	}
	return ids
}

func TestProgress_Grades(t *testing.T) {
	g := group(3, 8) // 3 essentials, base 6

	tests := []struct {
		name        string
		solved      []int
		wantGrade   string
		wantPercent int
		wantCleared bool
	}{
		{name: "nothing", solved: nil, wantGrade: "", wantPercent: 0},
		{name: "below base", solved: solvedOf(g, 3, 4, 5, 6, 7), wantGrade: "", wantPercent: 63},
		{name: "essentials only", solved: solvedOf(g, 0, 1, 2), wantGrade: "3+", wantPercent: 38},
		{name: "base without essentials", solved: solvedOf(g, 0, 1, 3, 4, 5, 6), wantGrade: "3", wantPercent: 75},
		{name: "base with essentials", solved: solvedOf(g, 0, 1, 2, 3, 4, 5), wantGrade: "3+", wantPercent: 75},
		{name: "all", solved: solvedOf(g, 0, 1, 2, 3, 4, 5, 6, 7), wantGrade: "3++", wantPercent: 100, wantCleared: true},
		{name: "foreign ids ignored", solved: []int{1, 2, 3}, wantGrade: "", wantPercent: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Progress([]Group{g}, NewSolvedSet(tt.solved...))
			if assert.Len(t, rows, 1) {
				row := rows[0]
				assert.Equal(t, tt.wantGrade, row.Grade)
				assert.Equal(t, tt.wantPercent, row.Percent)
				assert.Equal(t, tt.wantCleared, row.FullyCleared)
				assert.Equal(t, 8, row.Total)
				assert.Equal(t, 3, row.EssentialTotal)
				assert.Equal(t, 3, row.Level)
			}
		})
	}
}

func TestProgress_SolvedCounts(t *testing.T) {
	g := group(1, 6)
	row := Progress([]Group{g}, NewSolvedSet(solvedOf(g, 0, 4, 5)...))[0]
	assert.Equal(t, 3, row.SolvedTotal)
	assert.Equal(t, 1, row.SolvedEssential)
	assert.Equal(t, 2, row.EssentialTotal)
	assert.Equal(t, 50, row.Percent)
}

func TestProgress_EmptyGroup(t *testing.T) {
	row := Progress([]Group{group(7, 0)}, NewSolvedSet(1, 2))[0]
	assert.Equal(t, 0, row.Total)
	assert.Equal(t, 0, row.Percent)
	assert.Equal(t, "", row.Grade)
	assert.True(t, row.FullyCleared)
}

func TestRecommendedClass(t *testing.T) {
	groups := []Group{group(1, 4), group(2, 4), group(3, 4)}
	all := func(levels ...int) SolvedSet {
		set := NewSolvedSet()
		for _, lvl := range levels {
			for _, id := range solvedOf(groups[lvl-1], 0, 1, 2, 3) {
				set.Add(id)
			}
		}
		return set
	}

	tests := []struct {
		name   string
		solved SolvedSet
		want   int
	}{
		{name: "nothing cleared", solved: all(), want: 1},
		{name: "class 1 cleared", solved: all(1), want: 2},
		{name: "gap", solved: all(1, 3), want: 2},
		{name: "everything cleared is capped", solved: all(1, 2, 3), want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendedClass(Progress(groups, tt.solved)); got != tt.want {
				t.Errorf("RecommendedClass() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHighestGraded(t *testing.T) {
	rows := []ProgressRow{
		{Level: 1, Grade: "1++"},
		{Level: 2, Grade: ""},
		{Level: 3, Grade: "3"},
		{Level: 4, Grade: ""},
	}
	row, ok := HighestGraded(rows)
	assert.True(t, ok)
	assert.Equal(t, 3, row.Level)

	_, ok = HighestGraded([]ProgressRow{{Level: 1}})
	assert.False(t, ok)
}

func TestDecoration(t *testing.T) {
	assert.Equal(t, DecorationGold, Decoration("4++"))
	assert.Equal(t, DecorationSilver, Decoration("4+"))
	assert.Equal(t, DecorationNone, Decoration("4"))
	assert.Equal(t, DecorationNone, Decoration(""))
}
