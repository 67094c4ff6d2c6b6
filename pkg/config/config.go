package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	OTP           OTPConfig
	AuthRateLimit AuthRateLimitConfig
	Pricing       PricingConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMARTLAUNDRY_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTLAUNDRY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTLAUNDRY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTLAUNDRY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SMARTLAUNDRY_DB_DSN"`
	Driver string `envconfig:"SMARTLAUNDRY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SMARTLAUNDRY_DB_HOST"`
	LegacyPort     int    `envconfig:"SMARTLAUNDRY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMARTLAUNDRY_DB_USER"`
	LegacyPassword string `envconfig:"SMARTLAUNDRY_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMARTLAUNDRY_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMARTLAUNDRY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMARTLAUNDRY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMARTLAUNDRY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTLAUNDRY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTLAUNDRY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTLAUNDRY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMARTLAUNDRY_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTLAUNDRY_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTLAUNDRY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTLAUNDRY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTLAUNDRY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTLAUNDRY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTLAUNDRY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTLAUNDRY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SMARTLAUNDRY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SMARTLAUNDRY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SMARTLAUNDRY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SMARTLAUNDRY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SMARTLAUNDRY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SMARTLAUNDRY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SMARTLAUNDRY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SMARTLAUNDRY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SMARTLAUNDRY_ARGON_KEY_LEN" default:"32"`
}

type OTPConfig struct {
	Digits int           `envconfig:"SMARTLAUNDRY_OTP_DIGITS" default:"6"`
	TTL    time.Duration `envconfig:"SMARTLAUNDRY_OTP_TTL" default:"10m"`
	// EchoCode returns the generated code in API responses for development
	// builds, mirroring how the product behaves before an SMS/email provider
	// is wired up. Never enable in production.
	EchoCode bool `envconfig:"SMARTLAUNDRY_OTP_ECHO_CODE" default:"false"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SMARTLAUNDRY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SMARTLAUNDRY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SMARTLAUNDRY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SMARTLAUNDRY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SMARTLAUNDRY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SMARTLAUNDRY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// PricingConfig carries the flat pricing knobs used by cart summaries and
// order creation. Values are parsed into decimals once at load time so money
// math never touches floats.
type PricingConfig struct {
	TaxRate        string `envconfig:"SMARTLAUNDRY_PRICING_TAX_RATE" default:"0.18"`
	DeliveryCharge string `envconfig:"SMARTLAUNDRY_PRICING_DELIVERY_CHARGE" default:"50.00"`

	taxRate        decimal.Decimal
	deliveryCharge decimal.Decimal
}

// Validate parses the pricing strings into decimals.
func (p *PricingConfig) Validate() error {
	taxRate, err := decimal.NewFromString(p.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid tax rate %q: %w", p.TaxRate, err)
	}
	deliveryCharge, err := decimal.NewFromString(p.DeliveryCharge)
	if err != nil {
		return fmt.Errorf("invalid delivery charge %q: %w", p.DeliveryCharge, err)
	}
	if taxRate.IsNegative() || deliveryCharge.IsNegative() {
		return fmt.Errorf("pricing values must be non-negative")
	}
	p.taxRate = taxRate
	p.deliveryCharge = deliveryCharge
	return nil
}

// TaxRateDecimal returns the parsed tax rate.
func (p PricingConfig) TaxRateDecimal() decimal.Decimal {
	return p.taxRate
}

// DeliveryChargeDecimal returns the parsed flat delivery charge.
func (p PricingConfig) DeliveryChargeDecimal() decimal.Decimal {
	return p.deliveryCharge
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SMARTLAUNDRY_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
