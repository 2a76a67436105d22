package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	YagoutPay YagoutPayConfig
	Checkout  CheckoutConfig
	Notify    NotifyConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

// YagoutPayConfig carries the gateway credentials and channel
// defaults. Credentials are required; Load fails fast when one is
// missing so a misconfigured process never accepts payments.
type YagoutPayConfig struct {
	MerchantID     string
	EncryptionKey  string // base64, must decode to 32 bytes
	AggregatorID   string
	PostURL        string
	APIURL         string
	RequestTimeout time.Duration

	// API-channel gateway-selection defaults: the telebirr wallet
	// route. Kept in config so deployments can audit and override.
	PGID       string
	Paymode    string
	SchemeID   string
	WalletType string
}

// CheckoutConfig points gateway callbacks back at the storefront.
type CheckoutConfig struct {
	SuccessRedirectURL string
	FailureRedirectURL string
	PendingTTL         time.Duration // how long initiated transactions may stay open
}

type NotifyConfig struct {
	TelegramToken  string
	TelegramChatID string
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 4000)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("YAGOUT_AGGREGATOR_ID", "yagout")
	viper.SetDefault("YAGOUT_POST_URL", "https://uatcheckout.yagoutpay.com/ms-transaction-core-1-0/paymentRedirection/checksumGatewayPage")
	viper.SetDefault("YAGOUT_API_URL", "https://uatcheckout.yagoutpay.com/ms-transaction-core-1-0/apiRedirection/apiIntegration")
	viper.SetDefault("YAGOUT_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("YAGOUT_PG_ID", "67ee846571e740418d688c3f")
	viper.SetDefault("YAGOUT_PAYMODE", "WA")
	viper.SetDefault("YAGOUT_SCHEME_ID", "7")
	viper.SetDefault("YAGOUT_WALLET_TYPE", "telebirr")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:8080/success")
	viper.SetDefault("CHECKOUT_FAILURE_URL", "http://localhost:8080/failure")
	viper.SetDefault("CHECKOUT_PENDING_TTL", "30m")

	requestTimeout, err := time.ParseDuration(viper.GetString("YAGOUT_REQUEST_TIMEOUT"))
	if err != nil {
		requestTimeout = 30 * time.Second
	}
	pendingTTL, err := time.ParseDuration(viper.GetString("CHECKOUT_PENDING_TTL"))
	if err != nil {
		pendingTTL = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		YagoutPay: YagoutPayConfig{
			MerchantID:     viper.GetString("YAGOUT_MERCHANT_ID"),
			EncryptionKey:  viper.GetString("YAGOUT_ENCRYPTION_KEY"),
			AggregatorID:   viper.GetString("YAGOUT_AGGREGATOR_ID"),
			PostURL:        viper.GetString("YAGOUT_POST_URL"),
			APIURL:         viper.GetString("YAGOUT_API_URL"),
			RequestTimeout: requestTimeout,
			PGID:           viper.GetString("YAGOUT_PG_ID"),
			Paymode:        viper.GetString("YAGOUT_PAYMODE"),
			SchemeID:       viper.GetString("YAGOUT_SCHEME_ID"),
			WalletType:     viper.GetString("YAGOUT_WALLET_TYPE"),
		},
		Checkout: CheckoutConfig{
			SuccessRedirectURL: viper.GetString("CHECKOUT_SUCCESS_URL"),
			FailureRedirectURL: viper.GetString("CHECKOUT_FAILURE_URL"),
			PendingTTL:         pendingTTL,
		},
		Notify: NotifyConfig{
			TelegramToken:  viper.GetString("NOTIFY_TELEGRAM_TOKEN"),
			TelegramChatID: viper.GetString("NOTIFY_TELEGRAM_CHAT_ID"),
		},
	}

	if cfg.YagoutPay.MerchantID == "" {
		return nil, fmt.Errorf("YAGOUT_MERCHANT_ID is required")
	}
	if cfg.YagoutPay.EncryptionKey == "" {
		return nil, fmt.Errorf("YAGOUT_ENCRYPTION_KEY is required")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
