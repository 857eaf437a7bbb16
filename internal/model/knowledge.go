package model

import "time"

// IvorCategory is a knowledge-base category ("Community Events",
// "Community News"). One fixed category per content type, created lazily.
type IvorCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (IvorCategory) TableName() string {
	return "ivor_categories"
}

// IvorTag is a knowledge-base keyword tag, unique by name.
type IvorTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (IvorTag) TableName() string {
	return "ivor_tags"
}

// IvorResource is the normalized knowledge-base record derived from an
// approved submission. The (source_type, source_id) unique key makes
// knowledge sync idempotent: one resource per approved submission, ever.
type IvorResource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text" json:"content"`
	// Keywords holds up to 20 comma-joined terms of unbounded length, so the
	// column cannot be a fixed-width varchar without risking failed inserts.
	Keywords string `gorm:"type:text" json:"keywords"`
	CategoryID  uint      `gorm:"index" json:"category_id"`
	Priority    int       `gorm:"default:0" json:"priority"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	SourceType  string    `gorm:"type:varchar(16);uniqueIndex:idx_resource_source" json:"source_type"`
	SourceID    uint      `gorm:"uniqueIndex:idx_resource_source" json:"source_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (IvorResource) TableName() string {
	return "ivor_resources"
}

// IvorResourceTag links resources to tags.
type IvorResourceTag struct {
	ResourceID uint `gorm:"primaryKey" json:"resource_id"`
	TagID      uint `gorm:"primaryKey" json:"tag_id"`
}

func (IvorResourceTag) TableName() string {
	return "ivor_resource_tags"
}
