package problem

import (
	"strings"

	"github.com/berrycrepe/choco-chip/core/class"
	"github.com/berrycrepe/choco-chip/core/tier"
)

type Problem struct {
	ID          int      `json:"id"`   // public problem number
	DBID        string   `json:"dbId"` // surrogate key
	Title       string   `json:"title"`
	Difficulty  string   `json:"difficulty"`
	Tier        int      `json:"tier"`
	Tags        []string `json:"tags"`
	SolvedCount int      `json:"solvedCount"`
}

type Detail struct {
	Problem
	Description string `json:"description"`
	InputDesc   string `json:"inputDesc"`
	OutputDesc  string `json:"outputDesc"`
	TimeLimit   int    `json:"timeLimit"`
	MemoryLimit int    `json:"memoryLimit"`
}

// Row is a catalog entry as stored.
type Row struct {
	Number      int
	DBID        string
	Title       string
	Difficulty  string
	Tags        string // comma separated
	SolvedCount int
}

type DetailRow struct {
	Row
	Description string
	InputDesc   string
	OutputDesc  string
	TimeLimit   int
	MemoryLimit int
}

func FromRow(r Row) Problem {
	return Problem{
		ID:          r.Number,
		DBID:        r.DBID,
		Title:       r.Title,
		Difficulty:  r.Difficulty,
		Tier:        tier.FromDifficulty(r.Difficulty),
		Tags:        SplitTags(r.Tags),
		SolvedCount: r.SolvedCount,
	}
}

func DetailFromRow(r DetailRow) Detail {
	return Detail{
		Problem:     FromRow(r.Row),
		Description: r.Description,
		InputDesc:   r.InputDesc,
		OutputDesc:  r.OutputDesc,
		TimeLimit:   r.TimeLimit,
		MemoryLimit: r.MemoryLimit,
	}
}

// SplitTags splits a comma separated tag list, dropping empty entries.
func SplitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (p Problem) Candidate() class.Candidate {
	return class.Candidate{ID: p.ID, Title: p.Title, Tier: p.Tier, SolvedCount: p.SolvedCount}
}

func Candidates(problems []Problem) []class.Candidate {
	pool := make([]class.Candidate, len(problems))
	for i, p := range problems {
		pool[i] = p.Candidate()
	}
	return pool
}
