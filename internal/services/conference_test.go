package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"confcentral/internal/domain"
	"confcentral/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConferenceServiceForTest(confRepo *fakeConferenceRepo, profRepo *fakeProfileRepo, disp *fakeDispatcher) domain.ConferenceService {
	return NewConferenceService(confRepo, profRepo, NewProfileService(profRepo), &fakeTxManager{}, disp)
}

func TestConferenceService_Create(t *testing.T) {
	ctx := context.Background()
	identity := domain.Identity{ID: "user-1", Email: "org@example.com", DisplayName: "Org"}

	tests := []struct {
		name    string
		in      domain.CreateConferenceInput
		wantErr error
		assert  func(t *testing.T, conf *domain.Conference, disp *fakeDispatcher)
	}{
		{
			name: "success with defaults",
			in:   domain.CreateConferenceInput{Name: "GopherCon"},
			assert: func(t *testing.T, conf *domain.Conference, disp *fakeDispatcher) {
				require.NotEmpty(t, conf.ID)
				assert.Equal(t, "GopherCon", conf.Name)
				assert.Equal(t, "Default City", conf.City)
				assert.Equal(t, []string{"Default", "Topic"}, conf.Topics)
				assert.Equal(t, 0, conf.Month)
				assert.Equal(t, 0, conf.SeatsAvailable)
				require.Len(t, disp.submitted, 1)
				assert.Equal(t, domain.JobSendConfirmationEmail, disp.submitted[0].job)
				assert.Equal(t, "org@example.com", disp.submitted[0].payload["email"])
				assert.Equal(t, "GopherCon", disp.submitted[0].payload["conference_name"])
			},
		},
		{
			name: "seats open at full capacity",
			in:   domain.CreateConferenceInput{Name: "GopherCon", MaxAttendees: 100},
			assert: func(t *testing.T, conf *domain.Conference, disp *fakeDispatcher) {
				assert.Equal(t, 100, conf.SeatsAvailable)
			},
		},
		{
			name: "month derived from start date",
			in:   domain.CreateConferenceInput{Name: "GopherCon", StartDate: "2026-06-15", EndDate: "2026-06-17"},
			assert: func(t *testing.T, conf *domain.Conference, disp *fakeDispatcher) {
				require.NotNil(t, conf.StartDate)
				assert.Equal(t, 6, conf.Month)
			},
		},
		{
			name: "date read from first ten characters",
			in:   domain.CreateConferenceInput{Name: "GopherCon", StartDate: "2026-06-15T09:00:00Z"},
			assert: func(t *testing.T, conf *domain.Conference, disp *fakeDispatcher) {
				require.NotNil(t, conf.StartDate)
				assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), *conf.StartDate)
			},
		},
		{
			name:    "missing name",
			in:      domain.CreateConferenceInput{},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "invalid start date",
			in:      domain.CreateConferenceInput{Name: "GopherCon", StartDate: "June 15"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "end date before start date",
			in:      domain.CreateConferenceInput{Name: "GopherCon", StartDate: "2026-06-15", EndDate: "2026-06-10"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "negative max attendees",
			in:      domain.CreateConferenceInput{Name: "GopherCon", MaxAttendees: -1},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confRepo := newFakeConferenceRepo()
			profRepo := newFakeProfileRepo()
			disp := &fakeDispatcher{}
			svc := newConferenceServiceForTest(confRepo, profRepo, disp)

			conf, err := svc.Create(ctx, identity, tt.in)
			if tt.wantErr != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, disp.submitted)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, conf)
			_, ok := confRepo.byID[conf.ID]
			require.True(t, ok)
			if tt.assert != nil {
				tt.assert(t, conf, disp)
			}
		})
	}
}

func TestConferenceService_Create_NewProfileOnFirstAccess(t *testing.T) {
	ctx := context.Background()
	confRepo := newFakeConferenceRepo()
	profRepo := newFakeProfileRepo()
	svc := newConferenceServiceForTest(confRepo, profRepo, &fakeDispatcher{})

	identity := domain.Identity{ID: "user-1", Email: "new@example.com", DisplayName: "New"}
	conf, err := svc.Create(ctx, identity, domain.CreateConferenceInput{Name: "Conf"})
	require.NoError(t, err)

	prof, ok := profRepo.byID["user-1"]
	require.True(t, ok, "profile should be created on first access")
	assert.Equal(t, "new@example.com", prof.Email)
	assert.Equal(t, prof.ID, conf.OrganizerID)
}

func TestConferenceService_Query(t *testing.T) {
	ctx := context.Background()

	t.Run("compiled spec reaches the repository", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		confRepo.queryOut = []*domain.Conference{{ID: "c1", Name: "Conf"}}
		svc := newConferenceServiceForTest(confRepo, newFakeProfileRepo(), &fakeDispatcher{})

		got, err := svc.Query(ctx, []query.Filter{
			{Field: "CITY", Operator: "EQ", Value: "London"},
			{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)

		spec := confRepo.lastSpec
		require.NotNil(t, spec)
		require.Len(t, spec.Conditions, 2)
		assert.Equal(t, []string{"max_attendees ASC", "name ASC"}, spec.OrderBy)
	})

	t.Run("invalid filter", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		svc := newConferenceServiceForTest(confRepo, newFakeProfileRepo(), &fakeDispatcher{})

		_, err := svc.Query(ctx, []query.Filter{{Field: "NOPE", Operator: "EQ", Value: "x"}})
		require.Error(t, err)
		require.True(t, errors.Is(err, query.ErrInvalidFilter))
		assert.Nil(t, confRepo.lastSpec, "repo should not be queried")
	})

	t.Run("two inequality fields rejected", func(t *testing.T) {
		svc := newConferenceServiceForTest(newFakeConferenceRepo(), newFakeProfileRepo(), &fakeDispatcher{})
		_, err := svc.Query(ctx, []query.Filter{
			{Field: "MONTH", Operator: "GT", Value: "3"},
			{Field: "MAX_ATTENDEES", Operator: "LT", Value: "50"},
		})
		require.True(t, errors.Is(err, query.ErrMultipleInequalityFields))
	})
}

func TestConferenceService_ListCreatedAndAttending(t *testing.T) {
	ctx := context.Background()
	confRepo := newFakeConferenceRepo()
	profRepo := newFakeProfileRepo()
	svc := newConferenceServiceForTest(confRepo, profRepo, &fakeDispatcher{})

	prof := profRepo.add("user-1", "a@example.com")
	_ = confRepo.Create(ctx, &domain.Conference{ID: "c1", OrganizerID: "user-1", Name: "Mine"})
	_ = confRepo.Create(ctx, &domain.Conference{ID: "c2", OrganizerID: "user-2", Name: "Other"})
	prof.ConferenceKeysAttending = []string{"c2"}

	identity := domain.Identity{ID: "user-1"}

	created, err := svc.ListCreated(ctx, identity)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Mine", created[0].Name)

	attending, err := svc.ListAttending(ctx, identity)
	require.NoError(t, err)
	require.Len(t, attending, 1)
	assert.Equal(t, "Other", attending[0].Name)
}

func TestConferenceService_Register(t *testing.T) {
	ctx := context.Background()
	identity := domain.Identity{ID: "user-1", Email: "a@example.com"}

	setup := func(seats int) (*fakeConferenceRepo, *fakeProfileRepo, *fakeDispatcher, domain.ConferenceService) {
		confRepo := newFakeConferenceRepo()
		profRepo := newFakeProfileRepo()
		disp := &fakeDispatcher{}
		profRepo.add("user-1", "a@example.com")
		_ = confRepo.Create(ctx, &domain.Conference{ID: "c1", Name: "Conf", MaxAttendees: 10, SeatsAvailable: seats})
		return confRepo, profRepo, disp, newConferenceServiceForTest(confRepo, profRepo, disp)
	}

	t.Run("success takes one seat", func(t *testing.T) {
		confRepo, profRepo, disp, svc := setup(3)

		ok, err := svc.Register(ctx, identity, "c1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 2, confRepo.byID["c1"].SeatsAvailable)
		assert.True(t, profRepo.byID["user-1"].Attending("c1"))
		assert.Equal(t, []string{domain.JobCacheAnnouncement}, disp.jobs())
	})

	t.Run("conference not found", func(t *testing.T) {
		_, _, disp, svc := setup(3)
		_, err := svc.Register(ctx, identity, "c-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
		assert.Empty(t, disp.submitted)
	})

	t.Run("already registered", func(t *testing.T) {
		confRepo, profRepo, _, svc := setup(3)
		profRepo.byID["user-1"].ConferenceKeysAttending = []string{"c1"}

		_, err := svc.Register(ctx, identity, "c1")
		require.True(t, errors.Is(err, domain.ErrAlreadyRegistered))
		assert.Equal(t, 3, confRepo.byID["c1"].SeatsAvailable, "seats unchanged")
	})

	t.Run("no seats available", func(t *testing.T) {
		confRepo, profRepo, _, svc := setup(0)
		_, err := svc.Register(ctx, identity, "c1")
		require.True(t, errors.Is(err, domain.ErrNoSeatsAvailable))
		assert.Equal(t, 0, confRepo.byID["c1"].SeatsAvailable)
		assert.False(t, profRepo.byID["user-1"].Attending("c1"))
	})

	t.Run("two registrations drain capacity of two", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		profRepo := newFakeProfileRepo()
		svc := newConferenceServiceForTest(confRepo, profRepo, &fakeDispatcher{})
		profRepo.add("user-1", "a@example.com")
		profRepo.add("user-2", "b@example.com")
		_ = confRepo.Create(ctx, &domain.Conference{ID: "c1", Name: "Conf", MaxAttendees: 2, SeatsAvailable: 2})

		ok, err := svc.Register(ctx, domain.Identity{ID: "user-1"}, "c1")
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = svc.Register(ctx, domain.Identity{ID: "user-2"}, "c1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0, confRepo.byID["c1"].SeatsAvailable)

		_, err = svc.Register(ctx, domain.Identity{ID: "user-3", Email: "c@example.com"}, "c1")
		require.True(t, errors.Is(err, domain.ErrNoSeatsAvailable))
	})

	t.Run("stale seat read loses to the write guard", func(t *testing.T) {
		// The in-transaction read saw a free seat, but another registration
		// emptied the conference before the guarded decrement ran. The
		// caller gets the conflict instead of a silent overbooking.
		confRepo, _, disp, svc := setup(1)
		confRepo.takeSeatErr = domain.ErrNoSeatsAvailable

		_, err := svc.Register(ctx, identity, "c1")
		require.True(t, errors.Is(err, domain.ErrNoSeatsAvailable))
		assert.Empty(t, disp.submitted, "no announcement refresh on a failed registration")
	})

	t.Run("transaction failure surfaces", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		profRepo := newFakeProfileRepo()
		profRepo.add("user-1", "a@example.com")
		_ = confRepo.Create(ctx, &domain.Conference{ID: "c1", Name: "Conf", SeatsAvailable: 1})
		disp := &fakeDispatcher{}
		svc := NewConferenceService(confRepo, profRepo, NewProfileService(profRepo), &fakeTxManager{err: errors.New("tx failed")}, disp)

		_, err := svc.Register(ctx, identity, "c1")
		require.Error(t, err)
		assert.Empty(t, disp.submitted)
	})
}

func TestConferenceService_Unregister(t *testing.T) {
	ctx := context.Background()
	identity := domain.Identity{ID: "user-1", Email: "a@example.com"}

	t.Run("success returns the seat", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		profRepo := newFakeProfileRepo()
		disp := &fakeDispatcher{}
		svc := newConferenceServiceForTest(confRepo, profRepo, disp)
		prof := profRepo.add("user-1", "a@example.com")
		prof.ConferenceKeysAttending = []string{"c1"}
		_ = confRepo.Create(ctx, &domain.Conference{ID: "c1", Name: "Conf", MaxAttendees: 10, SeatsAvailable: 4})

		removed, err := svc.Unregister(ctx, identity, "c1")
		require.NoError(t, err)
		require.True(t, removed)
		assert.Equal(t, 5, confRepo.byID["c1"].SeatsAvailable)
		assert.False(t, profRepo.byID["user-1"].Attending("c1"))
		assert.Equal(t, []string{domain.JobCacheAnnouncement}, disp.jobs())
	})

	t.Run("idempotent when not registered", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		profRepo := newFakeProfileRepo()
		disp := &fakeDispatcher{}
		svc := newConferenceServiceForTest(confRepo, profRepo, disp)
		profRepo.add("user-1", "a@example.com")
		_ = confRepo.Create(ctx, &domain.Conference{ID: "c1", Name: "Conf", SeatsAvailable: 4})

		removed, err := svc.Unregister(ctx, identity, "c1")
		require.NoError(t, err)
		require.False(t, removed)
		assert.Equal(t, 4, confRepo.byID["c1"].SeatsAvailable, "seats unchanged")
		assert.Empty(t, disp.submitted, "no announcement refresh on no-op")
	})

	t.Run("conference not found", func(t *testing.T) {
		confRepo := newFakeConferenceRepo()
		profRepo := newFakeProfileRepo()
		profRepo.add("user-1", "a@example.com")
		svc := newConferenceServiceForTest(confRepo, profRepo, &fakeDispatcher{})

		_, err := svc.Unregister(ctx, identity, "c-missing")
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
