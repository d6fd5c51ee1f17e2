package services

import (
	"context"
	"time"

	"confcentral/internal/domain"
	"confcentral/internal/query"
)

// fakeProfileRepo is an in-memory ProfileRepository for tests. Wishlists are
// returned in insertion order.
type fakeProfileRepo struct {
	byID      map[string]*domain.Profile
	order     []string
	createErr error
	updateErr error
	getErr    error // if set, GetByID returns this error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byID: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[p.ID] = p
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.byID[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.DisplayName = p.DisplayName
	stored.TeeShirtSize = p.TeeShirtSize
	stored.UpdatedAt = p.UpdatedAt
	return nil
}

func (f *fakeProfileRepo) AppendAttending(ctx context.Context, id, conferenceKey string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Attending(conferenceKey) {
		return domain.ErrAlreadyRegistered
	}
	p.ConferenceKeysAttending = append(p.ConferenceKeysAttending, conferenceKey)
	return nil
}

func (f *fakeProfileRepo) RemoveAttending(ctx context.Context, id, conferenceKey string) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if !p.Attending(conferenceKey) {
		return false, nil
	}
	keys := make([]string, 0, len(p.ConferenceKeysAttending)-1)
	for _, k := range p.ConferenceKeysAttending {
		if k != conferenceKey {
			keys = append(keys, k)
		}
	}
	p.ConferenceKeysAttending = keys
	return true, nil
}

func (f *fakeProfileRepo) AppendWishlist(ctx context.Context, id, sessionKey string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Wishlisted(sessionKey) {
		return domain.ErrAlreadyInWishlist
	}
	p.SessionKeysWishlist = append(p.SessionKeysWishlist, sessionKey)
	return nil
}

func (f *fakeProfileRepo) RemoveWishlist(ctx context.Context, id, sessionKey string) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if !p.Wishlisted(sessionKey) {
		return false, nil
	}
	keys := make([]string, 0, len(p.SessionKeysWishlist)-1)
	for _, k := range p.SessionKeysWishlist {
		if k != sessionKey {
			keys = append(keys, k)
		}
	}
	p.SessionKeysWishlist = keys
	return true, nil
}

func (f *fakeProfileRepo) ListWishlists(ctx context.Context) ([][]string, error) {
	out := make([][]string, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id].SessionKeysWishlist)
	}
	return out, nil
}

func (f *fakeProfileRepo) add(id, email string) *domain.Profile {
	p := domain.NewProfile(id, email, "", time.Now())
	f.byID[id] = p
	f.order = append(f.order, id)
	return p
}

// fakeConferenceRepo is an in-memory ConferenceRepository for tests.
// takeSeatErr forces TakeSeat to fail, standing in for a concurrent writer
// that emptied the conference between the read and the guarded update.
type fakeConferenceRepo struct {
	byID        map[string]*domain.Conference
	order       []string
	createErr   error
	takeSeatErr error
	lastSpec    *query.Spec
	queryOut    []*domain.Conference
	queryErr    error
	soldOutErr  error
}

func newFakeConferenceRepo() *fakeConferenceRepo {
	return &fakeConferenceRepo{byID: make(map[string]*domain.Conference)}
}

func (f *fakeConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[c.ID] = c
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConferenceRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	out := []*domain.Conference{}
	for _, id := range f.order {
		if f.byID[id].OrganizerID == organizerID {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	out := []*domain.Conference{}
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) Query(ctx context.Context, spec *query.Spec) ([]*domain.Conference, error) {
	f.lastSpec = spec
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryOut, nil
}

func (f *fakeConferenceRepo) ListNearlySoldOut(ctx context.Context, limit int) ([]*domain.Conference, error) {
	if f.soldOutErr != nil {
		return nil, f.soldOutErr
	}
	out := []*domain.Conference{}
	for _, id := range f.order {
		c := f.byID[id]
		if c.SeatsAvailable > 0 && c.SeatsAvailable <= limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) TakeSeat(ctx context.Context, id string) error {
	if f.takeSeatErr != nil {
		return f.takeSeatErr
	}
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.SeatsAvailable <= 0 {
		return domain.ErrNoSeatsAvailable
	}
	c.SeatsAvailable--
	return nil
}

func (f *fakeConferenceRepo) ReturnSeat(ctx context.Context, id string) error {
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.SeatsAvailable >= c.MaxAttendees {
		return domain.ErrNotFound
	}
	c.SeatsAvailable++
	return nil
}

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	byID      map[string]*domain.Session
	order     []string
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: make(map[string]*domain.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[s.ID] = s
	f.order = append(f.order, s.ID)
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, id := range f.order {
		if f.byID[id].ConferenceID == conferenceID {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByConferenceAndType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, id := range f.order {
		s := f.byID[id]
		if s.ConferenceID == conferenceID && s.TypeOfSession == typeOfSession {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListBySpeaker(ctx context.Context, speakerEmail string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, id := range f.order {
		if f.byID[id].SpeakerEmail == speakerEmail {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByConferenceAndDate(ctx context.Context, conferenceID string, date time.Time) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, id := range f.order {
		s := f.byID[id]
		if s.ConferenceID == conferenceID && s.Date != nil && s.Date.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) add(id, conferenceID, name, speakerEmail string) *domain.Session {
	s := &domain.Session{
		ID:           id,
		ConferenceID: conferenceID,
		Name:         name,
		SpeakerEmail: speakerEmail,
		CreatedAt:    time.Now(),
	}
	f.byID[id] = s
	f.order = append(f.order, id)
	return s
}

// fakeSpeakerRepo is an in-memory SpeakerRepository for tests.
type fakeSpeakerRepo struct {
	byEmail   map[string]*domain.Speaker
	upsertErr error
}

func newFakeSpeakerRepo() *fakeSpeakerRepo {
	return &fakeSpeakerRepo{byEmail: make(map[string]*domain.Speaker)}
}

func (f *fakeSpeakerRepo) Upsert(ctx context.Context, s *domain.Speaker) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.byEmail[s.Email] = s
	return nil
}

func (f *fakeSpeakerRepo) GetByEmail(ctx context.Context, email string) (*domain.Speaker, error) {
	if s, ok := f.byEmail[email]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSpeakerRepo) add(email, name string) *domain.Speaker {
	s := &domain.Speaker{Email: email, Name: name}
	f.byEmail[email] = s
	return s
}

// fakeCache is an in-memory AnnouncementCache for tests.
type fakeCache struct {
	values map[string]string
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

// submittedJob records one Submit call on the fake dispatcher.
type submittedJob struct {
	job     string
	payload map[string]string
}

// fakeDispatcher records submitted jobs without running anything.
type fakeDispatcher struct {
	submitted []submittedJob
}

func (f *fakeDispatcher) Submit(ctx context.Context, job string, payload map[string]string) {
	f.submitted = append(f.submitted, submittedJob{job: job, payload: payload})
}

func (f *fakeDispatcher) jobs() []string {
	out := make([]string, len(f.submitted))
	for i, s := range f.submitted {
		out[i] = s.job
	}
	return out
}

// fakeTxManager runs fn directly; with err set it fails without calling fn.
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// fakeHasher is a deterministic PasswordHasher for tests.
type fakeHasher struct {
	saltErr error
	hashErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrUnauthenticated
	}
	return nil
}

// fakeTokenIssuer issues a fixed token carrying the identity ID.
type fakeTokenIssuer struct {
	err error
}

func (f *fakeTokenIssuer) Issue(identity domain.Identity, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + identity.ID, nil
}
