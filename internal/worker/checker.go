package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"cryptoclass-bot/internal/models"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Checker sends expiry reminders for monthly subscriptions. It only ever
// reads subscription state; records are mutated exclusively by the payment
// pipeline's transition.
type Checker struct {
	DB    *gorm.DB
	Redis *redis.Client
	Bot   *telego.Bot
}

func NewChecker(db *gorm.DB, rdb *redis.Client, bot *telego.Bot) *Checker {
	return &Checker{
		DB:    db,
		Redis: rdb,
		Bot:   bot,
	}
}

func (c *Checker) Start() {
	ticker := time.NewTicker(1 * time.Hour)
	log.Println("Background subscription reminder worker started")

	// Run once at start
	c.checkSubscriptions()

	for range ticker.C {
		c.checkSubscriptions()
	}
}

func (c *Checker) checkSubscriptions() {
	ctx := context.Background()
	now := time.Now()

	log.Println("Running subscription reminder cycle...")

	// 1. Notify 24h before expiry (window [23, 25] hours so an hourly tick
	// cannot skip anyone)
	start := now.Add(23 * time.Hour)
	end := now.Add(25 * time.Hour)

	var expiringSoon []models.User
	if err := c.DB.Where("subscribed = ? AND subscription_type = ? AND subscription_end BETWEEN ? AND ?",
		true, models.SubscriptionMonthly, start, end).Find(&expiringSoon).Error; err != nil {
		log.Printf("Error querying expiring subscriptions: %v", err)
	}

	for _, user := range expiringSoon {
		key := fmt.Sprintf("notified_24h_%d", user.TelegramID)
		exists, _ := c.Redis.Exists(ctx, key).Result()
		if exists == 0 {
			_, err := c.Bot.SendMessage(ctx, tu.Message(
				tu.ID(user.TelegramID),
				"Your monthly subscription expires in 24 hours. Renew via the Subscription menu to keep access.",
			))
			if err == nil {
				c.Redis.Set(ctx, key, "true", 48*time.Hour)
				log.Printf("Sent 24h reminder to user %d", user.TelegramID)
			} else {
				log.Printf("Failed to send 24h reminder to %d: %v", user.TelegramID, err)
			}
		}
	}

	// 2. Notify after expiry, once
	var expired []models.User
	if err := c.DB.Where("subscribed = ? AND subscription_type = ? AND subscription_end < ?",
		true, models.SubscriptionMonthly, now).Find(&expired).Error; err != nil {
		log.Printf("Error querying expired subscriptions: %v", err)
	}

	for _, user := range expired {
		key := fmt.Sprintf("notified_expired_%d", user.TelegramID)
		exists, _ := c.Redis.Exists(ctx, key).Result()
		if exists == 0 {
			_, err := c.Bot.SendMessage(ctx, tu.Message(
				tu.ID(user.TelegramID),
				"Your monthly subscription has expired. Renew via the Subscription menu to rejoin the class.",
			))
			if err == nil {
				c.Redis.Set(ctx, key, "true", 31*24*time.Hour)
				log.Printf("Sent expiry notice to user %d", user.TelegramID)
			} else {
				log.Printf("Failed to send expiry notice to %d: %v", user.TelegramID, err)
			}
		}
	}
}
