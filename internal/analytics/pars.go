package analytics

import (
	"context"
	"fmt"
	"golf-journey/internal/domain"
	"sort"

	"github.com/rs/zerolog"
)

type ParResolver struct {
	pars   ParSource
	logger zerolog.Logger
}

func NewParResolver(pars ParSource, logger zerolog.Logger) *ParResolver {
	return &ParResolver{pars: pars, logger: logger}
}

// Resolve returns the pars of holes 1..N for one course layout. A layout
// whose holes are not exactly 1..N fails: a gap or a short table with a
// MissingParError naming the first absent hole, a hole past N as malformed.
func (r *ParResolver) Resolve(ctx context.Context, courseID, holesCompleted int) (*domain.CourseParTable, error) {
	table, err := r.pars.CourseParTable(ctx, courseID, holesCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to load course pars: %w", err)
	}
	if table == nil || len(table.Pars) == 0 {
		r.logger.Debug().Int("course_id", courseID).Int("holes_completed", holesCompleted).Msg("course layout not found")
		return nil, &domain.NotFoundError{What: "course layout", CourseID: courseID, HolesCompleted: holesCompleted}
	}

	pars := append([]domain.HolePar(nil), table.Pars...)
	sort.SliceStable(pars, func(i, j int) bool { return pars[i].Hole < pars[j].Hole })

	for i, hp := range pars {
		if hp.Hole > holesCompleted {
			r.logger.Error().
				Int("course_id", courseID).
				Int("holes_completed", holesCompleted).
				Int("hole", hp.Hole).
				Msg("course layout has a par beyond its last hole")
			return nil, fmt.Errorf("course %d layout of %d holes has a par for hole %d: %w",
				courseID, holesCompleted, hp.Hole, domain.ErrMalformedRecord)
		}
		if hp.Hole != i+1 {
			r.logger.Error().
				Int("course_id", courseID).
				Int("holes_completed", holesCompleted).
				Int("hole", i+1).
				Msg("course layout has a gap")
			return nil, &domain.MissingParError{CourseID: courseID, HolesCompleted: holesCompleted, Hole: i + 1}
		}
	}
	if len(pars) < holesCompleted {
		r.logger.Error().
			Int("course_id", courseID).
			Int("holes_completed", holesCompleted).
			Int("pars", len(pars)).
			Msg("course layout is truncated")
		return nil, &domain.MissingParError{CourseID: courseID, HolesCompleted: holesCompleted, Hole: len(pars) + 1}
	}

	return &domain.CourseParTable{CourseID: courseID, HolesCompleted: holesCompleted, Pars: pars}, nil
}

// DefaultLayout picks the longest stored layout of a course.
func (r *ParResolver) DefaultLayout(ctx context.Context, courseID int) (int, error) {
	layouts, err := r.pars.CourseLayouts(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("failed to list course layouts: %w", err)
	}
	if len(layouts) == 0 {
		return 0, &domain.NotFoundError{What: "course layout", CourseID: courseID}
	}

	longest := layouts[0]
	for _, l := range layouts[1:] {
		if l > longest {
			longest = l
		}
	}
	return longest, nil
}

// parCache resolves each layout at most once within a single aggregate.
type parCache struct {
	resolver *ParResolver
	courseID int
	tables   map[int]*domain.CourseParTable
}

func newParCache(resolver *ParResolver, courseID int) *parCache {
	return &parCache{resolver: resolver, courseID: courseID, tables: make(map[int]*domain.CourseParTable)}
}

func (c *parCache) table(ctx context.Context, holesCompleted int) (*domain.CourseParTable, error) {
	if t, ok := c.tables[holesCompleted]; ok {
		return t, nil
	}
	t, err := c.resolver.Resolve(ctx, c.courseID, holesCompleted)
	if err != nil {
		return nil, err
	}
	c.tables[holesCompleted] = t
	return t, nil
}
