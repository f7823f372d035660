package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/berrycrepe/choco-chip/core/stats"
)

type statsRepository struct {
	db *DB
}

var _ stats.Repository = (*statsRepository)(nil)

func NewStatsRepository(db *DB) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) solvedProblems(userID string) map[int]struct{} {
	solved := make(map[int]struct{})
	for _, s := range repo.db.accepted(userID) {
		if _, ok := repo.db.problems[s.ProblemID]; ok {
			solved[s.ProblemID] = struct{}{}
		}
	}
	return solved
}

func (repo *statsRepository) SolvedProblemNumbers(_ context.Context, userID string) ([]int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	numbers := make([]int, 0)
	for n := range repo.solvedProblems(userID) {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

func (repo *statsRepository) SolvedDays(_ context.Context, userID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	seen := make(map[string]struct{})
	days := make([]string, 0)
	for _, s := range repo.db.accepted(userID) {
		day := s.CreatedAt.Format(stats.DateLayout)
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}
	sort.Strings(days)
	return days, nil
}

func (repo *statsRepository) DailySolveCounts(_ context.Context, userID string, since time.Time) ([]stats.DailyCount, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	perDay := make(map[string]map[int]struct{})
	for _, s := range repo.db.accepted(userID) {
		if s.CreatedAt.Before(since) {
			continue
		}
		day := s.CreatedAt.Format(stats.DateLayout)
		if perDay[day] == nil {
			perDay[day] = make(map[int]struct{})
		}
		perDay[day][s.ProblemID] = struct{}{}
	}

	counts := make([]stats.DailyCount, 0, len(perDay))
	for day, problems := range perDay {
		counts = append(counts, stats.DailyCount{Date: day, Count: len(problems)})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date < counts[j].Date })
	return counts, nil
}

func (repo *statsRepository) SolvedDifficulties(_ context.Context, userID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	difficulties := make([]string, 0)
	for n := range repo.solvedProblems(userID) {
		difficulties = append(difficulties, repo.db.problems[n].Difficulty)
	}
	sort.Strings(difficulties)
	return difficulties, nil
}

func (repo *statsRepository) SiteStats(_ context.Context) (stats.SiteStats, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return stats.SiteStats{
		ProblemCount:    len(repo.db.problems),
		UserCount:       len(repo.db.users),
		SubmissionCount: len(repo.db.submissions),
	}, nil
}
