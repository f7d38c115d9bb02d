package message

import (
	"context"
	"sort"
	"time"

	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/features/user"
	"go-fieldops/internal/realtime"

	"go.uber.org/zap"
)

type MessageService interface {
	Send(ctx context.Context, senderID string, input SendMessageInput) (*Message, error)
	ListWith(ctx context.Context, userID, otherUserID string) ([]Message, error)
	MarkRead(ctx context.Context, callerID, id string) error
	UnreadCount(ctx context.Context, userID, fromUserID string) (int64, error)
	Conversations(ctx context.Context, userID string) ([]Conversation, error)
}

type MessageServiceImpl struct {
	MessageRepo MessageRepository
	UserRepo    user.UserRepository
	Hub         *realtime.Hub
	Logger      *zap.Logger
}

func NewMessageService(messageRepo MessageRepository, userRepo user.UserRepository, hub *realtime.Hub, logger *zap.Logger) MessageService {
	return &MessageServiceImpl{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
		Hub:         hub,
		Logger:      logger,
	}
}

func (s *MessageServiceImpl) Send(ctx context.Context, senderID string, input SendMessageInput) (*Message, error) {
	sender, err := s.UserRepo.FindByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if !sender.Can(permission.SendMessages) {
		return nil, apperr.Forbiddenf("sendMessages permission required")
	}

	if input.ReceiverID == "" || input.Content == "" {
		return nil, apperr.Validationf("receiverId and content are required")
	}
	if _, err := s.UserRepo.FindByID(ctx, input.ReceiverID); err != nil {
		return nil, err
	}

	msg := &Message{
		SenderID:    senderID,
		SenderName:  sender.Name,
		ReceiverID:  input.ReceiverID,
		Content:     input.Content,
		Attachments: input.Attachments,
		Read:        false,
		CreatedAt:   time.Now(),
	}

	if err := s.MessageRepo.Append(ctx, msg); err != nil {
		return nil, err
	}

	if s.Hub.Connected(input.ReceiverID) {
		s.Hub.Push(input.ReceiverID, realtime.Event{Kind: "message", Payload: msg})
	}

	s.Logger.Info("message sent",
		zap.String("userId", senderID),
		zap.String("receiver", input.ReceiverID))
	return msg, nil
}

func (s *MessageServiceImpl) ListWith(ctx context.Context, userID, otherUserID string) ([]Message, error) {
	return s.MessageRepo.BetweenUsers(ctx, userID, otherUserID)
}

// MarkRead flips the read flag; only the message's receiver may do so.
func (s *MessageServiceImpl) MarkRead(ctx context.Context, callerID, id string) error {
	msg, err := s.MessageRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if msg.ReceiverID != callerID {
		return apperr.Forbiddenf("only the receiver can mark a message read")
	}
	return s.MessageRepo.MarkRead(ctx, id)
}

func (s *MessageServiceImpl) UnreadCount(ctx context.Context, userID, fromUserID string) (int64, error) {
	return s.MessageRepo.CountUnread(ctx, userID, fromUserID)
}

// Conversations folds the user's message log into one entry per counterpart
// holding the latest message, ordered most-recent-first. Ties on equal
// timestamps keep the counterpart's first-seen order.
func (s *MessageServiceImpl) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
	msgs, err := s.MessageRepo.InvolvingUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var convs []Conversation

	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}

		unread := 0
		if m.ReceiverID == userID && !m.Read {
			unread = 1
		}

		if i, ok := index[other]; ok {
			if !m.CreatedAt.Before(convs[i].LastMessage.CreatedAt) {
				convs[i].LastMessage = m
			}
			convs[i].Unread += unread
			continue
		}

		index[other] = len(convs)
		convs = append(convs, Conversation{UserID: other, LastMessage: m, Unread: unread})
	}

	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastMessage.CreatedAt.After(convs[j].LastMessage.CreatedAt)
	})

	return convs, nil
}
