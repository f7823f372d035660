package stats

import (
	"math"
	"sort"
)

// TopDifficultyLimit is the number of hardest solved problems summed into the AC rating.
const TopDifficultyLimit = 100

var classBonus = [...]int{0, 25, 50, 100, 150, 200, 210, 220, 230, 240, 250}

type acTier struct {
	label string
	min   int
}

// highest first
var acTiers = []acTier{
	{"Master", 3000},
	{"Ruby I", 2950}, {"Ruby II", 2900}, {"Ruby III", 2850}, {"Ruby IV", 2800}, {"Ruby V", 2700},
	{"Diamond I", 2600}, {"Diamond II", 2500}, {"Diamond III", 2400}, {"Diamond IV", 2300}, {"Diamond V", 2200},
	{"Platinum I", 2100}, {"Platinum II", 2000}, {"Platinum III", 1900}, {"Platinum IV", 1750}, {"Platinum V", 1600},
	{"Gold I", 1400}, {"Gold II", 1250}, {"Gold III", 1100}, {"Gold IV", 950}, {"Gold V", 800},
	{"Silver I", 650}, {"Silver II", 500}, {"Silver III", 400}, {"Silver IV", 300}, {"Silver V", 200},
	{"Bronze I", 150}, {"Bronze II", 120}, {"Bronze III", 90}, {"Bronze IV", 60}, {"Bronze V", 30},
	{"Unrated", 0},
}

type ACRating struct {
	Rating int    `json:"rating"`
	Label  string `json:"label"`
}

// TopDifficultySum sums the TopDifficultyLimit highest tiers.
func TopDifficultySum(tiers []int) int {
	sorted := append([]int(nil), tiers...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if len(sorted) > TopDifficultyLimit {
		sorted = sorted[:TopDifficultyLimit]
	}
	var sum int
	for _, t := range sorted {
		sum += t
	}
	return sum
}

// ClassBonus is the rating bonus for a CLASS level. Out of range levels get nothing.
func ClassBonus(level int) int {
	if level < 0 || level >= len(classBonus) {
		return 0
	}
	return classBonus[level]
}

// Rating computes the AC rating.
func Rating(topDifficultySum, solvedCount, classLevel int) ACRating {
	solvedBonus := int(math.Floor(200 * (1 - math.Pow(0.997, float64(solvedCount)))))
	rating := topDifficultySum + ClassBonus(classLevel) + solvedBonus
	return ACRating{Rating: rating, Label: RatingLabel(rating)}
}

func RatingLabel(rating int) string {
	for _, t := range acTiers {
		if rating >= t.min {
			return t.label
		}
	}
	return "Unrated"
}
