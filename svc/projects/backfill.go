package projects

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/projectkeys/pkg/async"
	"github.com/dmitrymomot/projectkeys/pkg/logger"
	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
)

const backfillLockName = "backfill"

// BackfillResult is the outcome for one project of a backfill run.
type BackfillResult struct {
	ProjectID  uuid.UUID
	Name       string
	Key        string
	Provenance projectkey.Provenance
	// Skipped is set when the project got a key from someone else after it
	// was listed. That key is left untouched.
	Skipped bool
	Err     error
}

// OK reports whether the row needs no further attention: a key was assigned
// (or, for a plan, derived), or the project already had one.
func (r BackfillResult) OK() bool {
	return r.Err == nil
}

func (s *service) Backfill(ctx context.Context) ([]BackfillResult, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, backfillLockName)
		if err != nil {
			return nil, errors.Join(ErrBackfillLock, err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.log.WarnContext(ctx, "failed to release backfill lock", logger.Error(err))
			}
		}()
	}

	start := time.Now()
	rows, err := s.store.ListProjectsMissingKey(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	results := make([]BackfillResult, len(rows))
	done := make([]bool, len(rows))
	runGroup := func(ctx context.Context, idx []int) (struct{}, error) {
		for _, i := range idx {
			if err := ctx.Err(); err != nil {
				return struct{}{}, err
			}
			results[i] = s.backfillRow(ctx, rows[i])
			done[i] = true
		}
		return struct{}{}, nil
	}

	groups := groupByBase(rows)
	if s.concurrency <= 1 {
		all := make([]int, len(rows))
		for i := range all {
			all[i] = i
		}
		_, err = runGroup(ctx, all)
	} else {
		_, err = async.WaitAll(async.Bounded(ctx, s.concurrency, groups, runGroup)...)
	}

	var assigned, skipped, failed int
	for i := range results {
		if !done[i] {
			results[i] = BackfillResult{ProjectID: rows[i].ID, Name: rows[i].Name, Err: ctx.Err()}
		}
		switch {
		case results[i].Skipped:
			skipped++
		case results[i].OK():
			assigned++
		default:
			failed++
		}
	}

	s.log.InfoContext(ctx, "project key backfill finished",
		logger.Count("projects", len(rows)),
		logger.Count("groups", len(groups)),
		logger.Count("assigned", assigned),
		logger.Count("skipped", skipped),
		logger.Count("failed", failed),
		logger.Duration(time.Since(start)),
	)

	if err != nil {
		return results, errors.Join(ErrBackfillCancelled, err)
	}
	return results, nil
}

func (s *service) PlanBackfill(ctx context.Context) ([]BackfillResult, error) {
	rows, err := s.store.ListProjectsMissingKey(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	results := make([]BackfillResult, len(rows))
	for i, p := range rows {
		c, err := derivedKey{name: p.Name}.propose()
		results[i] = BackfillResult{
			ProjectID:  p.ID,
			Name:       p.Name,
			Key:        c.Key,
			Provenance: c.Provenance,
			Err:        err,
		}
	}
	return results, nil
}

func (s *service) backfillRow(ctx context.Context, p Project) BackfillResult {
	res := BackfillResult{ProjectID: p.ID, Name: p.Name}
	id := p.ID

	c, err := s.assign(ctx, derivedKey{name: p.Name}, &id, func(ctx context.Context, c projectkey.Candidate) error {
		return storeErr(s.store.PersistMissingKey(ctx, id, c.Key))
	})
	if errors.Is(err, ErrKeyAlreadySet) {
		res.Skipped = true
		s.log.InfoContext(ctx, "project got a key during backfill, skipped", logger.ProjectID(id))
		return res
	}
	if err != nil {
		res.Err = err
		if errors.Is(err, projectkey.ErrExhaustedKeySpace) {
			s.log.ErrorContext(ctx, "no free project key left, assign one manually",
				logger.ProjectID(id),
				logger.Reason(string(projectkey.ReasonExhaustedKeySpace)),
			)
		} else {
			s.log.WarnContext(ctx, "project key not assigned",
				logger.ProjectID(id),
				logger.Reason(string(projectkey.ReasonOf(err))),
				logger.Error(err),
			)
		}
		return res
	}

	res.Key, res.Provenance = c.Key, c.Provenance
	s.log.DebugContext(ctx, "project key assigned",
		logger.ProjectID(id),
		logger.ProjectKey(c.Key),
		logger.Provenance(string(c.Provenance)),
	)
	return res
}

// groupByBase groups row indexes by the base key their names derive to,
// keeping list order inside and across groups. Rows whose names derive no
// key get a group of their own.
func groupByBase(rows []Project) [][]int {
	var groups [][]int
	byBase := make(map[string]int)
	for i, p := range rows {
		c, err := derivedKey{name: p.Name}.propose()
		if err != nil {
			groups = append(groups, []int{i})
			continue
		}
		g, ok := byBase[c.Key]
		if !ok {
			g = len(groups)
			byBase[c.Key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}
