package repository

import (
	"errors"
	"fmt"

	"blkout_community_go/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrInvalidTransition means the row exists but is not in a status the
	// requested transition allows (e.g. approving an already-approved item).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// EventRepository persists community events.
type EventRepository interface {
	Create(event *model.Event) error
	// CreateWithTasks inserts the event and its outbox tasks atomically.
	// buildTasks runs inside the transaction with the assigned id, so the
	// auto-approve path can never commit an approved row without its
	// sync/webhook tasks.
	CreateWithTasks(event *model.Event, buildTasks func(eventID uint) []*model.OutboxTask) error
	FindAll() ([]model.Event, error)
	FindByID(id uint) (*model.Event, error)
	// Search filters by status and a title/description substring, both
	// optional. Results are newest-first for the moderation queue.
	Search(status, query string) ([]model.Event, error)
	// UpdateStatusWithTasks flips status only when the current status is in
	// `from`, applies extra column updates, and enqueues the tasks, all in
	// one transaction. Returns gorm.ErrRecordNotFound if the event does not
	// exist and ErrInvalidTransition if its status disallows the change.
	UpdateStatusWithTasks(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *model.Event) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	return r.db.Create(event).Error
}

func (r *eventRepository) CreateWithTasks(event *model.Event, buildTasks func(eventID uint) []*model.OutboxTask) error {
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		if buildTasks == nil {
			return nil
		}
		for _, task := range buildTasks(event.ID) {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindAll returns every event sorted by date ascending, the order the
// public listing uses.
func (r *eventRepository) FindAll() ([]model.Event, error) {
	var events []model.Event
	if err := r.db.Order("date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Search(status, query string) ([]model.Event, error) {
	tx := r.db.Order("submitted_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var events []model.Event
	if err := tx.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) UpdateStatusWithTasks(id uint, from []string, to string, updates map[string]interface{}, tasks []*model.OutboxTask) error {
	if to == "" {
		return fmt.Errorf("target status is required")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var current model.Event
		if err := tx.Where("id = ?", id).First(&current).Error; err != nil {
			return err
		}

		values := map[string]interface{}{"status": to}
		for k, v := range updates {
			values[k] = v
		}

		res := tx.Model(&model.Event{}).
			Where("id = ? AND status IN ?", id, from).
			Updates(values)
		if res.Error != nil {
			return res.Error
		}
		// The row exists (checked above), so zero rows means the status
		// guard failed: another moderator got there first.
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		for _, task := range tasks {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
