package model

import "time"

// Content type discriminators used across moderation, ratings, knowledge
// sync and the outbox.
const (
	ContentTypeEvent   = "event"
	ContentTypeArticle = "article"
)

// Event moderation states. Events submitted for review start as "pending";
// "upcoming" marks an already-approved event whose date is in the future and
// is treated as approved by knowledge sync.
const (
	EventStatusPending  = "pending"
	EventStatusApproved = "approved"
	EventStatusRejected = "rejected"
	EventStatusUpcoming = "upcoming"
)

// Event is a community event submission, stored in the `events` table.
// List-valued fields (CommunityValues, FlaggedReasons) are stored as
// comma-separated strings and split at the response boundary.
type Event struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"type:varchar(255);not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Date            time.Time `gorm:"index" json:"date"`
	Location        string    `gorm:"type:varchar(255)" json:"location"`
	Organizer       string    `gorm:"type:varchar(255)" json:"organizer"`
	EventType       string    `gorm:"type:varchar(50)" json:"event_type"`
	Category        string    `gorm:"type:varchar(100)" json:"category"`
	CommunityValues string    `gorm:"type:varchar(512)" json:"community_values"`
	TraumaInformed  bool      `gorm:"default:false" json:"trauma_informed"`
	Status          string    `gorm:"type:varchar(20);index;not null" json:"status"`
	ModerationNotes string    `gorm:"type:text" json:"moderation_notes"`
	FlaggedReasons  string    `gorm:"type:varchar(512)" json:"flagged_reasons"`
	SubmittedAt     time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
