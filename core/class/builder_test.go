package class

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalog returns `perTier` problems for every tier in [1, 25], numbered from 1000.
func catalog(perTier int) []Candidate {
	pool := make([]Candidate, 0, 25*perTier)
	id := 1000
	for t := 1; t <= 25; t++ {
		for i := 0; i < perTier; i++ {
			pool = append(pool, Candidate{ID: id, Title: "P", Tier: t, SolvedCount: i})
			id++
		}
	}
	return pool
}

func TestEssentialCount(t *testing.T) {
	for size, want := range map[int]int{0: 0, 1: 1, 3: 1, 4: 2, 6: 2, 7: 3, 8: 3} {
		if got := EssentialCount(size); got != want {
			t.Errorf("EssentialCount(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestBaseRequired(t *testing.T) {
	for size, want := range map[int]int{0: 1, 1: 1, 2: 2, 4: 3, 5: 4, 6: 5, 7: 6, 8: 6} {
		if got := BaseRequired(size); got != want {
			t.Errorf("BaseRequired(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestBuildGroups_FullCatalog(t *testing.T) {
	groups := BuildGroups(catalog(4))
	require.Len(t, groups, len(Ranges))

	seen := make(map[int]int)
	for i, g := range groups {
		assert.Equal(t, i+1, g.Level)
		assert.Equal(t, "CLASS "+strconv.Itoa(g.Level), g.Title)
		assert.GreaterOrEqual(t, len(g.Problems), MinPerClass, "level %d", g.Level)
		assert.LessOrEqual(t, len(g.Problems), MaxPerClass, "level %d", g.Level)
		assert.Equal(t, BaseRequired(len(g.Problems)), g.BaseRequired)

		var essentials int
		for j, p := range g.Problems {
			rng := Ranges[i]
			assert.True(t, p.Tier >= rng.MinTier && p.Tier <= rng.MaxTier, "problem %d out of range", p.ID)
			assert.Equal(t, g.Level, p.ClassLevel)
			if p.Essential {
				essentials++
				assert.Less(t, j, EssentialCount(len(g.Problems)), "essentials must lead the list")
			}
			if lvl, dup := seen[p.ID]; dup {
				t.Errorf("problem %d in levels %d and %d", p.ID, lvl, g.Level)
			}
			seen[p.ID] = g.Level
		}
		assert.Equal(t, EssentialCount(len(g.Problems)), essentials)
	}
}

func TestBuildGroups_CapAndOrder(t *testing.T) {
	// 10 tier-1 problems: level 1 keeps the 8 most solved
	pool := make([]Candidate, 0, 10)
	for i := 0; i < 10; i++ {
		pool = append(pool, Candidate{ID: i + 1, Tier: 1, SolvedCount: i})
	}
	groups := BuildGroups(pool)

	lvl1 := groups[0]
	require.Len(t, lvl1.Problems, MaxPerClass)
	ids := make([]int, 0, len(lvl1.Problems))
	for _, p := range lvl1.Problems {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3}, ids)
	assert.True(t, lvl1.Problems[0].Essential)
	assert.True(t, lvl1.Problems[2].Essential)
	assert.False(t, lvl1.Problems[3].Essential)
	assert.Equal(t, 6, lvl1.BaseRequired)

	// the two leftovers are drawn by level 2 as fallback
	lvl2 := groups[1]
	require.Len(t, lvl2.Problems, 2)
	assert.ElementsMatch(t, []int{1, 2}, []int{lvl2.Problems[0].ID, lvl2.Problems[1].ID})
	assert.Equal(t, 2, lvl2.BaseRequired)

	// nothing left for the remaining levels
	for _, g := range groups[2:] {
		assert.Empty(t, g.Problems, "level %d", g.Level)
		assert.Equal(t, 1, g.BaseRequired)
	}
}

func TestBuildGroups_FallbackByDistance(t *testing.T) {
	// level 1 (tiers 1-3) only has one match; ideal tier for level 1 is 3
	pool := []Candidate{
		{ID: 1, Tier: 2, SolvedCount: 5},
		{ID: 2, Tier: 4, SolvedCount: 1},  // distance 1
		{ID: 3, Tier: 5, SolvedCount: 50}, // distance 2
		{ID: 4, Tier: 4, SolvedCount: 9},  // distance 1, more solved
		{ID: 5, Tier: 9, SolvedCount: 99}, // distance 6
		{ID: 6, Tier: 0, SolvedCount: 99}, // distance 3
	}
	groups := BuildGroups(pool)

	var ids []int
	for _, p := range groups[0].Problems {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int{1, 4, 2, 3}, ids)
	// fallback problems keep their own tier but belong to the class
	assert.Equal(t, 5, groups[0].Problems[3].Tier)
	assert.Equal(t, 1, groups[0].Problems[3].ClassLevel)

	// level 2 (tiers 4-5) already lost its problems to level 1
	for _, p := range groups[1].Problems {
		assert.NotContains(t, []int{1, 2, 3, 4}, p.ID)
	}
}

func TestBuildGroups_Deterministic(t *testing.T) {
	pool := catalog(3)
	assert.Equal(t, BuildGroups(pool), BuildGroups(pool))
}

func TestBuildGroups_Empty(t *testing.T) {
	groups := BuildGroups(nil)
	require.Len(t, groups, len(Ranges))
	for _, g := range groups {
		assert.Empty(t, g.Problems)
		assert.Equal(t, 1, g.BaseRequired)
	}
}
