package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	VNPay    VNPayConfig
	Midtrans MidtransConfig
	Payout   PayoutConfig
	ESign    ESignConfig
	Workflow WorkflowConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string `env:"APP_PORT" envDefault:"3000"`
	BaseURL            string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	ClientURL          string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`
	Environment        string `env:"GO_ENV" envDefault:"development"`
	LogFilePath        string `env:"LOG_FILE_PATH" envDefault:"logs/app.log"`
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
	NatsURL            string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	RedisURL           string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	JWTSecret          string `env:"JWT_SECRET"`
	UploadDir          string `env:"UPLOAD_DIR" envDefault:"./uploads"`
}

type DatabaseConfig struct {
	Connection string `env:"DB_CONNECTION_STRING"`
}

type SMTPConfig struct {
	Host       string `env:"SMTP_HOST"`
	Port       int    `env:"SMTP_PORT" envDefault:"587"`
	Email      string `env:"SMTP_EMAIL"`
	Password   string `env:"SMTP_PASSWORD"`
	SenderName string `env:"SMTP_SENDER_NAME" envDefault:"RoomHub"`
}

type VNPayConfig struct {
	TmnCode    string `env:"VNPAY_TMN_CODE"`
	HashSecret string `env:"VNPAY_HASH_SECRET"`
	PayURL     string `env:"VNPAY_PAY_URL" envDefault:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"`
	ReturnURL  string `env:"VNPAY_RETURN_URL" envDefault:"http://localhost:5173/payments/return"`
}

type MidtransConfig struct {
	ServerKey    string `env:"MIDTRANS_SERVER_KEY"`
	IsProduction bool   `env:"MIDTRANS_IS_PRODUCTION" envDefault:"false"`
}

type PayoutConfig struct {
	BaseURL    string `env:"PAYOUT_BASE_URL" envDefault:"https://sandbox.payout.example/api"`
	MerchantID string `env:"PAYOUT_MERCHANT_ID"`
	HashSecret string `env:"PAYOUT_HASH_SECRET"`
	ReturnURL  string `env:"PAYOUT_RETURN_URL" envDefault:"http://localhost:3000/api/withdrawals/payout/return"`
}

type ESignConfig struct {
	BaseURL string `env:"ESIGN_BASE_URL" envDefault:"https://api.esign.example/v1"`
	APIKey  string `env:"ESIGN_API_KEY"`
	// WebhookSecret verifies the provider's callback signature.
	WebhookSecret string `env:"ESIGN_WEBHOOK_SECRET"`
}

type WorkflowConfig struct {
	ConfirmationTTL  time.Duration `env:"CONFIRMATION_TTL" envDefault:"48h"`
	GatewayTimeout   time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"15s"`
	DispatchAttempts int           `env:"CONTRACT_DISPATCH_ATTEMPTS" envDefault:"3"`
	DispatchBackoff  time.Duration `env:"CONTRACT_DISPATCH_BACKOFF" envDefault:"1s"`
	CallbackLockTTL  time.Duration `env:"CALLBACK_LOCK_TTL" envDefault:"30s"`
}

type TracingConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"rental-marketplace-be"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Error: failed to parse configuration: %v", err)
	}
	return cfg
}
