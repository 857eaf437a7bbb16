package model

import "time"

// Article moderation states. Articles use different literals from events:
// review (not pending) while awaiting moderation, published once approved.
const (
	ArticleStatusReview    = "review"
	ArticleStatusPublished = "published"
	ArticleStatusRejected  = "rejected"
)

// NewsroomArticle is a community news submission, stored in the
// `newsroom_articles` table. Tags are many-to-many via `article_tags`.
type NewsroomArticle struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Title           string           `gorm:"type:varchar(255);not null" json:"title"`
	Excerpt         string           `gorm:"type:varchar(512)" json:"excerpt"`
	Body            string           `gorm:"type:text;not null" json:"body"`
	AuthorID        *uint            `gorm:"index" json:"author_id"`
	Author          *CommunityMember `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID      *uint            `gorm:"index" json:"category_id"`
	Category        *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags            []Tag            `gorm:"many2many:article_tags" json:"tags,omitempty"`
	CommunityValues string           `gorm:"type:varchar(512)" json:"community_values"`
	TraumaInformed  bool             `gorm:"default:false" json:"trauma_informed"`
	Status          string           `gorm:"type:varchar(20);index;not null" json:"status"`
	ModerationNotes string           `gorm:"type:text" json:"moderation_notes"`
	FlaggedReasons  string           `gorm:"type:varchar(512)" json:"flagged_reasons"`
	SubmittedAt     time.Time        `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NewsroomArticle) TableName() string {
	return "newsroom_articles"
}
