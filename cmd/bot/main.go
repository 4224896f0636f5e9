package main

import (
	"log"

	"github.com/mymmrac/telego"

	"cryptoclass-bot/internal/analytics"
	"cryptoclass-bot/internal/bot"
	"cryptoclass-bot/internal/config"
	"cryptoclass-bot/internal/database"
	"cryptoclass-bot/internal/payment"
	"cryptoclass-bot/internal/server"
	"cryptoclass-bot/internal/storage"
	"cryptoclass-bot/internal/worker"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	// Connect to Redis
	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}

	store := storage.NewGormUserStore(db)
	track := analytics.NewClient(cfg.MixpanelToken)

	paystackClient := payment.NewPaystackClient(cfg.PaystackKey, cfg.PaystackEmail, cfg.PaymentCurrency, cfg.PublicURL)
	nowPaymentsClient := payment.NewNowPaymentsClient(cfg.NowPaymentsKey, cfg.PublicURL)

	instance, err := telego.NewBot(cfg.BotToken)
	if err != nil {
		log.Fatalf("Could not create bot: %v", err)
	}

	messenger := payment.NewTelegramMessenger(instance)
	grants := payment.NewGrantIssuer(messenger, cfg.PremiumGroupID)
	tgBot := bot.NewBot(instance, paystackClient, nowPaymentsClient, store, grants, track)

	dispatcher := payment.NewDispatcher(store, grants, track)

	// Webhook API
	router := server.New(cfg, dispatcher, rdb)
	go func() {
		if err := server.Start(cfg, router); err != nil {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Expiry reminders
	checker := worker.NewChecker(db, rdb, tgBot.Instance)
	go checker.Start()

	log.Println("Service started successfully")

	tgBot.Start()
}
