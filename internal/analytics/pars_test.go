package analytics

import (
	"context"
	"errors"
	"testing"

	"golf-journey/internal/domain"
	"golf-journey/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParResolver_Resolve(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		snapshots   []domain.CourseSnapshot
		courseID    int
		holes       int
		want        []domain.HolePar
		wantErr     error
		wantMissing int
	}{
		{
			name:      "ordered dense layout",
			snapshots: []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 4, Pars: []domain.HolePar{{Hole: 3, Par: 3}, {Hole: 1, Par: 4}, {Hole: 4, Par: 5}, {Hole: 2, Par: 4}}}},
			courseID:  testCourse,
			holes:     4,
			want:      pars(4, 4, 3, 5),
		},
		{
			name:      "unknown course",
			snapshots: []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 4, Pars: pars(4, 4, 3, 5)}},
			courseID:  99,
			holes:     4,
			wantErr:   domain.ErrNotFound,
		},
		{
			name:      "other layout of a known course",
			snapshots: []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 18, Pars: pars(4, 4, 3, 5, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 3, 5, 4)}},
			courseID:  testCourse,
			holes:     9,
			wantErr:   domain.ErrNotFound,
		},
		{
			name:        "truncated layout",
			snapshots:   []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 18, Pars: pars(4, 4, 3, 5)}},
			courseID:    testCourse,
			holes:       18,
			wantErr:     domain.ErrMissingPar,
			wantMissing: 5,
		},
		{
			name:      "par past the last hole",
			snapshots: []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 2, Pars: pars(4, 4, 3)}},
			courseID:  testCourse,
			holes:     2,
			wantErr:   domain.ErrMalformedRecord,
		},
		{
			name:        "gap in layout",
			snapshots:   []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 4, Pars: []domain.HolePar{{Hole: 1, Par: 4}, {Hole: 2, Par: 4}, {Hole: 4, Par: 5}}}},
			courseID:    testCourse,
			holes:       4,
			wantErr:     domain.ErrMissingPar,
			wantMissing: 3,
		},
		{
			name:        "layout not starting at one",
			snapshots:   []domain.CourseSnapshot{{CourseID: testCourse, HolesCompleted: 9, Pars: []domain.HolePar{{Hole: 10, Par: 4}}}},
			courseID:    testCourse,
			holes:       9,
			wantErr:     domain.ErrMissingPar,
			wantMissing: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryStore()
			store.AddSnapshots(tt.snapshots...)
			resolver := NewParResolver(store, zerolog.Nop())

			table, err := resolver.Resolve(ctx, tt.courseID, tt.holes)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantMissing > 0 {
					var missing *domain.MissingParError
					require.True(t, errors.As(err, &missing))
					assert.Equal(t, tt.wantMissing, missing.Hole)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Pars)
			assert.Equal(t, tt.holes, table.HolesCompleted)
		})
	}
}

func TestParResolver_DefaultLayout(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	store.AddSnapshots(
		domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 9, Pars: pars(4, 4, 3, 5, 4, 4, 3, 5, 4)},
		domain.CourseSnapshot{CourseID: testCourse, HolesCompleted: 18, Pars: pars(4, 4, 3, 5, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4, 4, 3, 5, 4)},
	)
	resolver := NewParResolver(store, zerolog.Nop())

	layout, err := resolver.DefaultLayout(ctx, testCourse)
	require.NoError(t, err)
	assert.Equal(t, 18, layout)

	_, err = resolver.DefaultLayout(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
