package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Logger      LoggerConfig    `mapstructure:"logger"`
	Auction     AuctionConfig   `mapstructure:"auction"`
	Events      EventsConfig    `mapstructure:"events"`
	RateLimit   RateLimitConfig `mapstructure:"rateLimit"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// AuctionConfig contains the auction business knobs. Monetary values are
// decimal strings ("5.00") and converted to cents at wiring time.
type AuctionConfig struct {
	MinimumIncrement      string `mapstructure:"minimumIncrement"`
	SeatFee               string `mapstructure:"seatFee"`
	PenaltyAmount         string `mapstructure:"penaltyAmount"`
	MaxBidMultiplier      int64  `mapstructure:"maxBidMultiplier"`
	MarketOpenHour        int    `mapstructure:"marketOpenHour"`
	MarketCloseHour       int    `mapstructure:"marketCloseHour"`
	MinimumParticipants   int    `mapstructure:"minimumParticipants"`
	OfflinePenaltySeconds int    `mapstructure:"offlinePenaltySeconds"`
	SettleIntervalSeconds int    `mapstructure:"settleIntervalSeconds"`
	SettleBatchLimit      int    `mapstructure:"settleBatchLimit"`
}

// EventsConfig contains RabbitMQ notification settings. An empty URL
// disables publishing.
type EventsConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// RateLimitConfig contains Redis token-bucket rate limit settings for the
// bid endpoint. An empty address disables rate limiting.
type RateLimitConfig struct {
	RedisAddr     string  `mapstructure:"redisAddr"`
	RedisPassword string  `mapstructure:"redisPassword"`
	RedisDB       int     `mapstructure:"redisDB"`
	Capacity      int     `mapstructure:"capacity"`
	RefillRate    float64 `mapstructure:"refillRate"`
}
