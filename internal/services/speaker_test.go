package services

import (
	"context"
	"errors"
	"testing"

	"confcentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakerService_Add(t *testing.T) {
	ctx := context.Background()
	identity := domain.Identity{ID: "user-1"}

	tests := []struct {
		name     string
		identity domain.Identity
		speaker  *domain.Speaker
		wantErr  error
		assert   func(t *testing.T, got *domain.Speaker, repo *fakeSpeakerRepo)
	}{
		{
			name:     "success normalizes email",
			identity: identity,
			speaker:  &domain.Speaker{Email: " Jane@Example.COM ", Name: "Jane", Specialization: "Go", Workplace: "Acme"},
			assert: func(t *testing.T, got *domain.Speaker, repo *fakeSpeakerRepo) {
				assert.Equal(t, "jane@example.com", got.Email)
				assert.False(t, got.CreatedAt.IsZero())
				_, ok := repo.byEmail["jane@example.com"]
				require.True(t, ok)
			},
		},
		{
			name:     "unauthenticated",
			identity: domain.Identity{},
			speaker:  &domain.Speaker{Email: "jane@example.com", Name: "Jane"},
			wantErr:  domain.ErrUnauthenticated,
		},
		{
			name:     "invalid email",
			identity: identity,
			speaker:  &domain.Speaker{Email: "not-an-email", Name: "Jane"},
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "missing name",
			identity: identity,
			speaker:  &domain.Speaker{Email: "jane@example.com"},
			wantErr:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSpeakerRepo()
			svc := NewSpeakerService(repo)

			got, err := svc.Add(ctx, tt.identity, tt.speaker)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			if tt.assert != nil {
				tt.assert(t, got, repo)
			}
		})
	}
}

func TestSpeakerService_Add_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSpeakerRepo()
	repo.add("jane@example.com", "Old Name")
	svc := NewSpeakerService(repo)

	got, err := svc.Add(ctx, domain.Identity{ID: "user-1"}, &domain.Speaker{Email: "jane@example.com", Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "New Name", repo.byEmail["jane@example.com"].Name)
}

func TestSpeakerService_Get(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSpeakerRepo()
	repo.add("jane@example.com", "Jane")
	svc := NewSpeakerService(repo)

	got, err := svc.Get(ctx, " Jane@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)

	_, err = svc.Get(ctx, "nobody@example.com")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
