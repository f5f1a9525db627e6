package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// AuditWorkers is the number of sharded audit trail writers.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo      MongoConfig
	Redis      RedisConfig
	MinIO      MinIOConfig
	SuperAdmin SuperAdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=animal_guard"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	DedupTTL time.Duration `env:"REDIS_DEDUP_TTL, default=24h"`
}

type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET,     default=animalguard-media"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
}

// SuperAdminConfig seeds the bootstrap account. Empty email disables seeding.
type SuperAdminConfig struct {
	Name     string `env:"SUPER_ADMIN_NAME, default=Super Admin"`
	Email    string `env:"SUPER_ADMIN_EMAIL"`
	Password string `env:"SUPER_ADMIN_PASSWORD"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MediaEnabled reports whether object storage credentials are configured.
func (c *Config) MediaEnabled() bool {
	return c.MinIO.AccessKey != "" && c.MinIO.SecretKey != ""
}

// Load reads a .env file when present, then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadFrom resolves configuration from a fixed set of variables.
func LoadFrom(ctx context.Context, vars map[string]string) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(vars),
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
