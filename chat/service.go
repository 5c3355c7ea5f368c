// Package chat stores and reads direct messages between two users.
package chat

import (
	"context"
	"strings"
	"time"

	"kindred/apperrors"
	"kindred/events"
	"kindred/models"
	"kindred/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	messages  store.Messages
	publisher events.Publisher
	now       func() time.Time
}

func NewService(messages store.Messages, publisher events.Publisher) *Service {
	return &Service{messages: messages, publisher: publisher, now: time.Now}
}

// Send stores a message from sender to receiverID. Delivery to an online
// receiver is left to whatever consumes the published event.
func (s *Service) Send(ctx context.Context, sender *models.User, receiverID, content string) (*models.Message, error) {
	receiverID = strings.TrimSpace(receiverID)
	if receiverID == "" || strings.TrimSpace(content) == "" {
		return nil, apperrors.Validation("All fields are required")
	}
	receiver, err := primitive.ObjectIDFromHex(receiverID)
	if err != nil {
		return nil, apperrors.Validation("Invalid receiver ID")
	}

	msg := &models.Message{
		Sender:    sender.ID,
		Receiver:  receiver,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:       events.TypeMessageCreated,
		Recipients: []primitive.ObjectID{receiver},
		Payload:    msg,
		At:         msg.CreatedAt,
	})
	return msg, nil
}

// Conversation returns the full history between user and other, oldest
// first.
func (s *Service) Conversation(ctx context.Context, user *models.User, other primitive.ObjectID) ([]models.Message, error) {
	msgs, err := s.messages.Conversation(ctx, user.ID, other)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return msgs, nil
}
