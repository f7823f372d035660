package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopDifficultySum(t *testing.T) {
	assert.Equal(t, 0, TopDifficultySum(nil))
	assert.Equal(t, 38, TopDifficultySum([]int{13, 25, 0}))

	tiers := make([]int, 150)
	for i := range tiers {
		tiers[i] = 1
	}
	for i := 0; i < 10; i++ {
		tiers[140+i] = 20
	}
	// ten 20s plus ninety 1s
	assert.Equal(t, 290, TopDifficultySum(tiers))
	assert.Equal(t, 1, tiers[149-10], "input must not be reordered")
}

func TestClassBonus(t *testing.T) {
	assert.Equal(t, 0, ClassBonus(0))
	assert.Equal(t, 25, ClassBonus(1))
	assert.Equal(t, 200, ClassBonus(5))
	assert.Equal(t, 250, ClassBonus(10))
	assert.Equal(t, 0, ClassBonus(11))
	assert.Equal(t, 0, ClassBonus(-1))
}

func TestRating(t *testing.T) {
	tests := []struct {
		name                          string
		topSum, solvedCount, classLvl int
		want                          ACRating
	}{
		{"difficulty only", 100, 0, 0, ACRating{100, "Bronze III"}},
		{"nothing", 0, 0, 0, ACRating{0, "Unrated"}},
		{"solved bonus", 0, 100, 0, ACRating{51, "Bronze V"}},
		{"class bonus", 0, 100, 5, ACRating{251, "Silver V"}},
		{"many solved", 0, 1000, 0, ACRating{190, "Bronze I"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rating(tt.topSum, tt.solvedCount, tt.classLvl))
		})
	}
}

func TestRatingLabel(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{-5, "Unrated"},
		{0, "Unrated"},
		{29, "Unrated"},
		{30, "Bronze V"},
		{150, "Bronze I"},
		{1599, "Gold I"},
		{1600, "Platinum V"},
		{2700, "Ruby V"},
		{2999, "Ruby I"},
		{3000, "Master"},
		{4200, "Master"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RatingLabel(tt.rating), tt.rating)
	}
}
