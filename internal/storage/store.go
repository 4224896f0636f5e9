package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cryptoclass-bot/internal/models"
)

// ErrUserNotFound is returned when a lookup by Telegram ID matches no record.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the persistence capability the payment pipeline and the bot
// depend on. Kept narrow so tests can substitute an in-memory double.
type UserStore interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	FirstOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	CreatePayment(ctx context.Context, payment *models.Payment) error
}

type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

func (s *GormUserStore) FindByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %w", telegramID, err)
	}
	return &user, nil
}

func (s *GormUserStore) FirstOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where(models.User{TelegramID: telegramID}).
		Attrs(models.User{Username: username, SubscriptionType: models.SubscriptionNone}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find/create user %d: %w", telegramID, err)
	}
	return &user, nil
}

func (s *GormUserStore) Save(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.TelegramID, err)
	}
	return nil
}

func (s *GormUserStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if err := s.DB.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}
