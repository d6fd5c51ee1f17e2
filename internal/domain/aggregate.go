package domain

import "context"

// Cache keys for derived announcements.
const (
	AnnouncementCacheKey    = "announcements"
	FeaturedSpeakerCacheKey = "featured_speaker"
)

// AnnouncementCache is the external key-value cache for derived
// announcement text. Get returns "" without error when the key is absent.
type AnnouncementCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AggregateService computes derived values from bulk entity scans and
// publishes them to the announcement cache.
type AggregateService interface {
	// CacheAnnouncement scans for nearly-sold-out conferences and stores the
	// announcement text, or clears the cached entry when none qualify.
	CacheAnnouncement(ctx context.Context) (string, error)
	// Announcement returns the cached announcement, "" when absent.
	Announcement(ctx context.Context) (string, error)
	// MostPopularSession returns the conference's session with the highest
	// wishlist count across all profiles. Ties break on the key encountered
	// first during the count scan.
	MostPopularSession(ctx context.Context, conferenceKey string) (*Session, error)
	// FeaturedSpeaker publishes a featured-speaker announcement when the
	// speaker has more than one session; otherwise it returns "" and leaves
	// any cached value untouched.
	FeaturedSpeaker(ctx context.Context, speakerEmail string) (string, error)
	// GetFeaturedSpeaker returns the cached featured-speaker text, "" when
	// absent.
	GetFeaturedSpeaker(ctx context.Context) (string, error)
}
