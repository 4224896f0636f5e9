package payment

import (
	"context"
	"fmt"

	"cryptoclass-bot/internal/models"
	"cryptoclass-bot/internal/storage"
)

// fakeStore is an in-memory UserStore keeping users by Telegram ID.
type fakeStore struct {
	users    map[int64]*models.User
	payments []models.Payment
	saves    int
}

func newFakeStore(users ...*models.User) *fakeStore {
	s := &fakeStore{users: make(map[int64]*models.User)}
	for i, u := range users {
		u.ID = uint(i + 1)
		s.users[u.TelegramID] = u
	}
	return s
}

func (s *fakeStore) FindByTelegramID(_ context.Context, telegramID int64) (*models.User, error) {
	user, ok := s.users[telegramID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeStore) FirstOrCreate(_ context.Context, telegramID int64, username string) (*models.User, error) {
	if user, ok := s.users[telegramID]; ok {
		return user, nil
	}
	user := &models.User{
		ID:               uint(len(s.users) + 1),
		TelegramID:       telegramID,
		Username:         username,
		SubscriptionType: models.SubscriptionNone,
	}
	s.users[telegramID] = user
	return user, nil
}

func (s *fakeStore) Save(_ context.Context, user *models.User) error {
	s.saves++
	copied := *user
	s.users[user.TelegramID] = &copied
	return nil
}

func (s *fakeStore) CreatePayment(_ context.Context, payment *models.Payment) error {
	s.payments = append(s.payments, *payment)
	return nil
}

// fakeMessenger records outbound Telegram traffic.
type fakeMessenger struct {
	messages  []sentMessage
	invites   []createdInvite
	sendErr   error
	inviteErr error
}

type sentMessage struct {
	ChatID int64
	Text   string
}

type createdInvite struct {
	GroupID int64
	Name    string
}

func (m *fakeMessenger) SendMessage(_ context.Context, chatID int64, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.messages = append(m.messages, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *fakeMessenger) CreateInviteLink(_ context.Context, groupID int64, name string) (string, error) {
	if m.inviteErr != nil {
		return "", m.inviteErr
	}
	m.invites = append(m.invites, createdInvite{GroupID: groupID, Name: name})
	return fmt.Sprintf("https://t.me/+invite%d", len(m.invites)), nil
}
