package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/berrycrepe/choco-chip/core/class"
	"github.com/berrycrepe/choco-chip/core/problem"
	"github.com/berrycrepe/choco-chip/core/tier"
)

var nowFunc = time.Now // mockable

type (
	Streak struct {
		Streak      int  `json:"streak"`
		SolvedToday bool `json:"solvedToday"`
	}

	// Standing is a user's highest graded CLASS, Level 0 when none.
	Standing struct {
		Level   int    `json:"level"`
		Grade   string `json:"grade"`
		Percent int    `json:"percent"`
	}

	UserStats struct {
		SolvedProblemIDs []int        `json:"solvedProblemIds"`
		Heatmap          []HeatmapDay `json:"heatmap"`
		CurrentStreak    int          `json:"currentStreak"`
		LongestStreak    int          `json:"longestStreak"`
		TopDifficultySum int          `json:"topDifficultySum"`
		Class            Standing     `json:"class"`
		ACRating         ACRating     `json:"acRating"`
	}

	SiteStats struct {
		ProblemCount    int `json:"problemCount" db:"problem_count"`
		UserCount       int `json:"userCount" db:"user_count"`
		SubmissionCount int `json:"submissionCount" db:"submission_count"`
	}
)

type (
	Repository interface {
		// SolvedProblemNumbers returns the distinct accepted problem numbers, ascending.
		SolvedProblemNumbers(ctx context.Context, userID string) ([]int, error)
		// SolvedDays returns the distinct UTC days with an accepted submission, ascending.
		SolvedDays(ctx context.Context, userID string) ([]string, error)
		// DailySolveCounts returns distinct accepted problems per day since the given time.
		DailySolveCounts(ctx context.Context, userID string, since time.Time) ([]DailyCount, error)
		// SolvedDifficulties returns the difficulty label of every distinct accepted problem.
		SolvedDifficulties(ctx context.Context, userID string) ([]string, error)
		SiteStats(ctx context.Context) (SiteStats, error)
	}

	Service interface {
		Streak(ctx context.Context, userID string) (Streak, error)
		SolvedProblemNumbers(ctx context.Context, userID string) ([]int, error)
		// Standing computes the user's highest graded CLASS.
		Standing(ctx context.Context, userID string) (Standing, error)
		UserStats(ctx context.Context, userID string, solvedCount int) (UserStats, error)
		SiteStats(ctx context.Context) (SiteStats, error)
	}

	service struct {
		repo     Repository
		problems problem.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, problems problem.Service) Service {
	return &service{repo: repo, problems: problems}
}

func (svc *service) Streak(ctx context.Context, userID string) (Streak, error) {
	days, err := svc.repo.SolvedDays(ctx, userID)
	if err != nil {
		return Streak{}, err
	}
	streak, solvedToday := CurrentStreak(days, nowFunc())
	return Streak{Streak: streak, SolvedToday: solvedToday}, nil
}

func (svc *service) SolvedProblemNumbers(ctx context.Context, userID string) ([]int, error) {
	return svc.repo.SolvedProblemNumbers(ctx, userID)
}

func (svc *service) Standing(ctx context.Context, userID string) (Standing, error) {
	var groups []class.Group
	var solved []int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		groups, err = svc.problems.ClassGroups(gctx)
		return
	})
	g.Go(func() (err error) {
		solved, err = svc.repo.SolvedProblemNumbers(gctx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return Standing{}, err
	}
	return standingOf(groups, class.NewSolvedSet(solved...)), nil
}

func standingOf(groups []class.Group, solved class.SolvedSet) Standing {
	row, ok := class.HighestGraded(class.Progress(groups, solved))
	if !ok {
		return Standing{}
	}
	return Standing{Level: row.Level, Grade: row.Grade, Percent: row.Percent}
}

func (svc *service) UserStats(ctx context.Context, userID string, solvedCount int) (UserStats, error) {
	now := nowFunc()
	var (
		groups       []class.Group
		solved       []int
		days         []string
		counts       []DailyCount
		difficulties []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		groups, err = svc.problems.ClassGroups(gctx)
		return
	})
	g.Go(func() (err error) {
		solved, err = svc.repo.SolvedProblemNumbers(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		days, err = svc.repo.SolvedDays(gctx, userID)
		return
	})
	g.Go(func() (err error) {
		counts, err = svc.repo.DailySolveCounts(gctx, userID, HeatmapGridStart(now))
		return
	})
	g.Go(func() (err error) {
		difficulties, err = svc.repo.SolvedDifficulties(gctx, userID)
		return
	})
	if err := g.Wait(); err != nil {
		return UserStats{}, err
	}

	tiers := make([]int, len(difficulties))
	for i, d := range difficulties {
		tiers[i] = tier.FromDifficulty(d)
	}
	if solved == nil {
		solved = []int{}
	}

	standing := standingOf(groups, class.NewSolvedSet(solved...))
	streak, _ := CurrentStreak(days, now)
	topSum := TopDifficultySum(tiers)
	return UserStats{
		SolvedProblemIDs: solved,
		Heatmap:          Heatmap(counts, now),
		CurrentStreak:    streak,
		LongestStreak:    LongestStreak(days),
		TopDifficultySum: topSum,
		Class:            standing,
		ACRating:         Rating(topSum, solvedCount, standing.Level),
	}, nil
}

func (svc *service) SiteStats(ctx context.Context) (SiteStats, error) {
	return svc.repo.SiteStats(ctx)
}
