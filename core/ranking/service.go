package ranking

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/class"
	"github.com/berrycrepe/choco-chip/core/problem"
)

// CacheKey is where composed rankings are cached.
const CacheKey = "rankings:composed"

type (
	Repository interface {
		// QueryRankings returns every user ordered by rating desc, solved count desc.
		QueryRankings(ctx context.Context) ([]Row, error)
		// QuerySolvedSets returns the accepted problem numbers of every user, keyed by user id.
		QuerySolvedSets(ctx context.Context) (map[string]class.SolvedSet, error)
	}

	Service interface {
		Query(ctx context.Context) ([]Entry, error)
		// Invalidate drops cached rankings.
		Invalidate(ctx context.Context) error
	}

	service struct {
		repo     Repository
		problems problem.Service
		cache    core.Cache
		ttl      time.Duration
		logger   core.Logger
	}
)

var _ Service = (*service)(nil)

// NewService returns a Service caching composed rankings for ttl. A nil cache or a zero ttl disables caching.
func NewService(repo Repository, problems problem.Service, cache core.Cache, ttl time.Duration, logger core.Logger) Service {
	return &service{repo: repo, problems: problems, cache: cache, ttl: ttl, logger: logger}
}

func (svc *service) cacheEnabled() bool {
	return svc.cache != nil && svc.ttl > 0
}

func (svc *service) Query(ctx context.Context) ([]Entry, error) {
	if svc.cacheEnabled() {
		var cached []Entry
		found, err := svc.cache.Get(ctx, CacheKey, &cached)
		if err != nil {
			svc.logger.Warn("reading cached rankings", err)
		} else if found {
			return cached, nil
		}
	}

	entries, err := svc.compose(ctx)
	if err != nil {
		return nil, err
	}

	if svc.cacheEnabled() {
		if err = svc.cache.Set(ctx, CacheKey, entries, svc.ttl); err != nil {
			svc.logger.Warn("caching rankings", err)
		}
	}
	return entries, nil
}

func (svc *service) compose(ctx context.Context) ([]Entry, error) {
	var (
		rows   []Row
		solved map[string]class.SolvedSet
		groups []class.Group
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows, err = svc.repo.QueryRankings(gctx)
		return
	})
	g.Go(func() (err error) {
		solved, err = svc.repo.QuerySolvedSets(gctx)
		return
	})
	g.Go(func() (err error) {
		groups, err = svc.problems.ClassGroups(gctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Compose(Ranked(rows), solved, groups), nil
}

func (svc *service) Invalidate(ctx context.Context) error {
	if svc.cache == nil {
		return nil
	}
	return svc.cache.Delete(ctx, CacheKey)
}
