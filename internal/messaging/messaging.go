// Package messaging delivers direct messages between users.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"jobmate/jobboard-service/internal/apperr"
	"jobmate/jobboard-service/internal/events"
	"jobmate/jobboard-service/internal/model"
	"jobmate/jobboard-service/internal/store"
)

// Service encapsulates messaging logic.
type Service struct {
	store *store.Store
	pub   events.Publisher
}

// NewService returns a configured Service. A nil pub drops events.
func NewService(s *store.Store, pub events.Publisher) *Service {
	return &Service{store: s, pub: pub}
}

// SendMessage sends a message from the session user to toUserID, optionally
// about jobID. The recipient must exist.
func (s *Service) SendMessage(ctx context.Context, sess *model.Session, toUserID, subject, body, jobID string) (*model.Message, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}

	var msg model.Message
	err := s.store.Update(ctx, func(d *store.Document) error {
		if s.store.Users.Lookup(d, toUserID) == nil {
			return apperr.NotFound("recipient")
		}
		msg = s.store.Messages.Insert(d, model.Message{
			FromUserID: sess.ID,
			ToUserID:   toUserID,
			Subject:    subject,
			Body:       body,
			JobID:      jobID,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, s.pub, events.MessageSent, map[string]any{
		"messageId":  msg.ID,
		"fromUserId": msg.FromUserID,
		"toUserId":   msg.ToUserID,
	})
	return &msg, nil
}

// GetMessages returns every message the session user sent or received,
// newest first.
func (s *Service) GetMessages(ctx context.Context, sess *model.Session) ([]model.Message, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages.Find(ctx, func(m *model.Message) bool {
		return m.FromUserID == sess.ID || m.ToUserID == sess.ID
	})
	if err != nil {
		return nil, fmt.Errorf("getMessages: %w", err)
	}
	slices.SortStableFunc(msgs, func(a, b model.Message) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return msgs, nil
}

// GetConversation returns the messages exchanged between the session user
// and otherUserID, oldest first.
func (s *Service) GetConversation(ctx context.Context, sess *model.Session, otherUserID string) ([]model.Message, error) {
	if err := sess.RequireAuth(); err != nil {
		return nil, err
	}
	msgs, err := s.store.Messages.Find(ctx, func(m *model.Message) bool {
		return (m.FromUserID == sess.ID && m.ToUserID == otherUserID) ||
			(m.FromUserID == otherUserID && m.ToUserID == sess.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("getConversation: %w", err)
	}
	slices.SortStableFunc(msgs, func(a, b model.Message) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return msgs, nil
}

// MarkAsRead flags a message received by the session user as read. Read
// never reverts to unread.
func (s *Service) MarkAsRead(ctx context.Context, sess *model.Session, messageID string) error {
	if err := sess.RequireAuth(); err != nil {
		return err
	}
	msg, err := s.store.Messages.Get(ctx, messageID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return apperr.NotFound("message")
	}
	if err != nil {
		return fmt.Errorf("markAsRead: %w", err)
	}
	if msg.ToUserID != sess.ID {
		return apperr.ErrUnauthorized
	}
	if msg.Read {
		return nil
	}

	_, err = s.store.Messages.Update(ctx, messageID, func(m *model.Message) { m.Read = true })
	if errors.Is(err, store.ErrRecordNotFound) {
		return apperr.NotFound("message")
	}
	return err
}

// GetUnreadCount returns how many messages addressed to the session user
// are unread.
func (s *Service) GetUnreadCount(ctx context.Context, sess *model.Session) (int, error) {
	if err := sess.RequireAuth(); err != nil {
		return 0, err
	}
	unread, err := s.store.Messages.Find(ctx, func(m *model.Message) bool {
		return m.ToUserID == sess.ID && !m.Read
	})
	if err != nil {
		return 0, fmt.Errorf("getUnreadCount: %w", err)
	}
	return len(unread), nil
}

// GetUserInfo returns the public profile of a message participant.
func (s *Service) GetUserInfo(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.store.Users.Get(ctx, userID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, fmt.Errorf("getUserInfo: %w", err)
	}
	pub := u.Public()
	return &pub, nil
}
