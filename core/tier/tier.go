// Package tier maps problem difficulty labels to numeric tiers.
//
// Tiers go from 0 (unrated) to 25: five bands (Bronze, Silver, Gold, Platinum, Diamond)
// of five sub-ranks each, sub-rank 5 being the easiest of its band.
package tier

import (
	"regexp"
	"strings"
)

const (
	Unrated = 0
	Max     = 25
)

var (
	difficulties = map[string]int{
		"UNRATED":  0,
		"BRONZE_5": 1, "BRONZE_4": 2, "BRONZE_3": 3, "BRONZE_2": 4, "BRONZE_1": 5,
		"SILVER_5": 6, "SILVER_4": 7, "SILVER_3": 8, "SILVER_2": 9, "SILVER_1": 10,
		"GOLD_5": 11, "GOLD_4": 12, "GOLD_3": 13, "GOLD_2": 14, "GOLD_1": 15,
		"PLATINUM_5": 16, "PLATINUM_4": 17, "PLATINUM_3": 18, "PLATINUM_2": 19, "PLATINUM_1": 20,
		"DIAMOND_5": 21, "DIAMOND_4": 22, "DIAMOND_3": 23, "DIAMOND_2": 24, "DIAMOND_1": 25,
	}

	labels = [Max + 1]string{
		"Unrated",
		"Bronze V", "Bronze IV", "Bronze III", "Bronze II", "Bronze I",
		"Silver V", "Silver IV", "Silver III", "Silver II", "Silver I",
		"Gold V", "Gold IV", "Gold III", "Gold II", "Gold I",
		"Platinum V", "Platinum IV", "Platinum III", "Platinum II", "Platinum I",
		"Diamond V", "Diamond IV", "Diamond III", "Diamond II", "Diamond I",
	}

	bands = []string{"Bronze", "Silver", "Gold", "Platinum", "Diamond"}

	separators = regexp.MustCompile(`[\s-]+`)

	romanRanks = map[string]string{"V": "5", "IV": "4", "III": "3", "II": "2", "I": "1"}
)

// FromDifficulty converts a difficulty label such as "gold-3" or "Gold 3" to its tier.
// As an extension to the canonical "GOLD_3" table, display labels with roman sub-ranks ("Gold III")
// are accepted too, so every Label maps back to its tier. Unknown labels map to Unrated.
func FromDifficulty(difficulty string) int {
	normalized := separators.ReplaceAllString(strings.ToUpper(strings.TrimSpace(difficulty)), "_")
	if i := strings.LastIndexByte(normalized, '_'); i >= 0 {
		if rank, ok := romanRanks[normalized[i+1:]]; ok {
			normalized = normalized[:i+1] + rank
		}
	}
	return difficulties[normalized]
}

// Label returns the display label of a tier, eg. "Gold III". Out of range tiers are "Unrated".
func Label(t int) string {
	if t < Unrated || t > Max {
		return labels[Unrated]
	}
	return labels[t]
}

// Band returns the band name of a tier, eg. "Gold", or "Unrated".
func Band(t int) string {
	if t <= Unrated || t > Max {
		return labels[Unrated]
	}
	return bands[(t-1)/5]
}
