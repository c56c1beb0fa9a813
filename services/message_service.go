package services

import (
	"errors"
	"log"
	"strings"

	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	apiError "github.com/haulmatch/loadboard/errors"
	"github.com/haulmatch/loadboard/models"
	"gorm.io/gorm"
)

// MessagePublisher is the realtime fan-out seen from the message
// service. The hub implements it; publishing happens only after the
// store commit succeeds.
type MessagePublisher interface {
	PublishMessage(msg *models.Message)
}

// MessageService interface
type MessageService interface {
	SendMessage(senderID, receiverID uint, content string) (*models.Message, *apiError.Error)
	GetConversation(userA, userB uint) ([]models.Message, *apiError.Error)
}

type messageService struct {
	Config      *config.Config
	messageRepo db.MessageRepository
	authRepo    db.AuthRepository
	publisher   MessagePublisher
}

// NewMessageService instantiate a messageService
func NewMessageService(messageRepo db.MessageRepository, authRepo db.AuthRepository, publisher MessagePublisher, conf *config.Config) MessageService {
	return &messageService{
		Config:      conf,
		messageRepo: messageRepo,
		authRepo:    authRepo,
		publisher:   publisher,
	}
}

// SendMessage validates, persists and then fans the stored record out
// to both participants' live sessions. Nothing is published when the
// insert fails.
func (s *messageService) SendMessage(senderID, receiverID uint, content string) (*models.Message, *apiError.Error) {
	if strings.TrimSpace(content) == "" {
		return nil, apiError.ValidationError("message content cannot be empty")
	}
	if receiverID == 0 {
		return nil, apiError.ValidationError("receiver_id is required")
	}

	if _, err := s.authRepo.FindUserByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.NotFoundError("receiver not found")
		}
		log.Printf("SendMessage error resolving receiver: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.SaveMessage(msg); err != nil {
		log.Printf("SendMessage error saving message: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if s.publisher != nil {
		s.publisher.PublishMessage(msg)
	}

	return msg, nil
}

// GetConversation returns the full history between the two users,
// oldest first. An empty conversation is an empty slice, not an error.
func (s *messageService) GetConversation(userA, userB uint) ([]models.Message, *apiError.Error) {
	msgs, err := s.messageRepo.GetConversation(userA, userB)
	if err != nil {
		log.Printf("GetConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return msgs, nil
}
