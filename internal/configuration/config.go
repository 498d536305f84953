package configuration

import (
	"fmt"
	"os"
)

type Config struct {
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Server     ServerConfig
	NATSURL    string
	CLAMAVURL  string
	OIDCIssuer string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
}

type ServerConfig struct {
	Port string
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "assetuser"),
			Password: getEnv("DB_PASSWORD", "assetpassword"),
			DBName:   getEnv("DB_NAME", "assethost"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
			BucketName: getEnv("MINIO_BUCKET", "uploads"),
			UseSSL:     getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		NATSURL:   getEnv("NATS_URL", "nats://localhost:4222"),
		CLAMAVURL: getEnv("CLAMAV_URL", "tcp://localhost:3310"),
		// Empty issuer leaves the upload and tag-update routes public.
		OIDCIssuer: getEnv("OIDC_ISSUER_URL", ""),
	}
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
