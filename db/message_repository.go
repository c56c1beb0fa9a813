package db

import (
	"github.com/haulmatch/loadboard/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// MessageRepository persists direct messages. The store is append-only;
// no update or delete is exposed.
type MessageRepository interface {
	SaveMessage(msg *models.Message) error
	GetConversation(userA, userB uint) ([]models.Message, error)
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

func (m *messageRepo) SaveMessage(msg *models.Message) error {
	if err := m.DB.Create(msg).Error; err != nil {
		return errors.Wrap(err, "could not save message")
	}
	return nil
}

// GetConversation returns every message between the two users in either
// direction, oldest first. Ties on created_at fall back to insertion
// order. The query is symmetric in its arguments.
func (m *messageRepo) GetConversation(userA, userB uint) ([]models.Message, error) {
	msgs := make([]models.Message, 0)
	err := m.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc, id asc").
		Find(&msgs).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not load conversation")
	}
	return msgs, nil
}
