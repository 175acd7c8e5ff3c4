package domain

import "time"

// Relationship kinds a contact can have to the owner.
const (
	RelationshipPartner      = "partner"
	RelationshipSibling      = "sibling"
	RelationshipChild        = "child"
	RelationshipParent       = "parent"
	RelationshipFamily       = "family"
	RelationshipFriend       = "friend"
	RelationshipColleague    = "colleague"
	RelationshipAcquaintance = "acquaintance"
	RelationshipOther        = "other"
)

// Touchpoint channels.
const (
	ChannelPhone       = "phone"
	ChannelEmail       = "email"
	ChannelInPerson    = "in_person"
	ChannelVideoCall   = "video_call"
	ChannelTextMessage = "text_message"
	ChannelSocialMedia = "social_media"
	ChannelOther       = "other"
)

// Touchpoint sentiments; empty means unrecorded.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

var relationshipTypes = map[string]struct{}{
	RelationshipPartner: {}, RelationshipSibling: {}, RelationshipChild: {},
	RelationshipParent: {}, RelationshipFamily: {}, RelationshipFriend: {},
	RelationshipColleague: {}, RelationshipAcquaintance: {}, RelationshipOther: {},
}

var touchpointChannels = map[string]struct{}{
	ChannelPhone: {}, ChannelEmail: {}, ChannelInPerson: {}, ChannelVideoCall: {},
	ChannelTextMessage: {}, ChannelSocialMedia: {}, ChannelOther: {},
}

// ValidRelationship reports whether r is a known relationship kind.
func ValidRelationship(r string) bool {
	_, ok := relationshipTypes[r]
	return ok
}

// ValidChannel reports whether ch is a known touchpoint channel.
func ValidChannel(ch string) bool {
	_, ok := touchpointChannels[ch]
	return ok
}

// ValidSentiment reports whether s is a known sentiment or unrecorded.
func ValidSentiment(s string) bool {
	return s == "" || s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Contact is a person the owner keeps in touch with. The slug is the
// primary key.
type Contact struct {
	Slug             string `json:"slug" db:"slug"`
	Name             string `json:"name" db:"name"`
	Priority         int    `json:"priority" db:"priority"`
	Relationship     string `json:"relationship" db:"relationship"`
	Birthday         *Date  `json:"birthday,omitempty" db:"birthday"`
	Notes            string `json:"notes,omitempty" db:"notes"`
	Timezone         string `json:"timezone" db:"timezone"`
	PreferredChannel string `json:"preferredChannel,omitempty" db:"preferred_channel"`
	// CheckInFrequencyDays is the cadence: the target number of days
	// between touchpoints.
	CheckInFrequencyDays int `json:"checkInFrequencyDays" db:"check_in_frequency_days"`
	// LastContactedAt caches the max touchpoint date. It is advanced by the
	// single update path on touchpoint insert and never moves backwards.
	LastContactedAt *Date     `json:"lastContactedAt,omitempty" db:"last_contacted_at"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks a contact before it is persisted.
func (c Contact) Validate() ValidationError {
	errs := ValidationError{}
	if c.Slug == "" {
		errs["slug"] = "slug must not be empty"
	}
	if c.Name == "" {
		errs["name"] = "name must not be empty"
	}
	if c.Priority < 1 || c.Priority > 10 {
		errs["priority"] = "priority must be between 1 and 10"
	}
	if !ValidRelationship(c.Relationship) {
		errs["relationship"] = "unknown relationship"
	}
	if c.PreferredChannel != "" && !ValidChannel(c.PreferredChannel) {
		errs["preferredChannel"] = "unknown channel"
	}
	if c.CheckInFrequencyDays <= 0 {
		errs["checkInFrequencyDays"] = "cadence must be a positive number of days"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Touchpoint is a recorded interaction with a contact. Touchpoints are
// append-only; there are no edit or delete flows.
type Touchpoint struct {
	ID          string    `json:"id" db:"id"`
	ContactSlug string    `json:"contactSlug" db:"contact_slug"`
	Date        Date      `json:"date" db:"date"`
	Channel     string    `json:"channel" db:"channel"`
	Sentiment   string    `json:"sentiment,omitempty" db:"sentiment"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Validate checks a touchpoint before it is persisted.
func (t Touchpoint) Validate() ValidationError {
	errs := ValidationError{}
	if t.ContactSlug == "" {
		errs["contact"] = "contact is required"
	}
	if t.Date.IsZero() {
		errs["date"] = "date is required"
	}
	if !ValidChannel(t.Channel) {
		errs["channel"] = "unknown channel"
	}
	if !ValidSentiment(t.Sentiment) {
		errs["sentiment"] = "unknown sentiment"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ContactOverview is a contact annotated with the touchpoint aggregates the
// persistence layer computes in one batch query.
type ContactOverview struct {
	Contact
	LastTouchpoint    *Date    `json:"lastTouchpoint" db:"last_touchpoint"`
	TouchpointsRecent int      `json:"touchpointsRecent" db:"touchpoints_recent"`
	Strength          Strength `json:"strength" db:"-"`
}

// AttachStrength fills the overview's strength record for the given day.
// The scoring date is the annotated max touchpoint date, falling back to
// the cached last-contacted date when no touchpoint exists yet.
func (o *ContactOverview) AttachStrength(today Date) {
	last := o.LastTouchpoint
	if last == nil {
		last = o.LastContactedAt
	}
	o.Strength = ComputeStrength(o.CheckInFrequencyDays, last, o.TouchpointsRecent, today)
}
