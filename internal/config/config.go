package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBUser             string
	DBPassword         string
	DBName             string
	DBHost             string
	DBPort             string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	BotToken           string
	PremiumGroupID     int64
	PublicURL          string
	HTTPPort           string
	PaymentCurrency    string
	PaystackKey        string
	PaystackEmail      string
	NowPaymentsKey     string
	NowPaymentsIPN     string
	MixpanelToken      string
	AllowedPaystackIPs []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "cryptoclass_bot"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		BotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		PremiumGroupID:  getEnvInt64("PREMIUM_GROUP_ID", 0),
		PublicURL:       getEnv("PUBLIC_URL", ""),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "USD"),
		PaystackKey:     getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackEmail:   getEnv("PAYSTACK_BILLING_EMAIL", ""),
		NowPaymentsKey:  getEnv("NOWPAYMENTS_API_KEY", ""),
		NowPaymentsIPN:  getEnv("NOWPAYMENTS_IPN_SECRET", ""),
		MixpanelToken:   getEnv("MIXPANEL_TOKEN", ""),
		// Paystack publishes the IPs its webhook calls originate from.
		AllowedPaystackIPs: []string{
			"52.31.139.75/32",
			"52.49.173.169/32",
			"52.214.14.220/32",
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using fallback", key, value)
		return fallback
	}
	return parsed
}
