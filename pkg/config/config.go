package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultEncKey = "insecure-default-moneymind-encryption-key!!"
	defaultSigKey = "insecure-default-moneymind-signature-key!!!"
)

type Config struct {
	// base URL of the moneymind backend
	APIBaseURL string

	// where the Local Edit Store sqlite file lives
	DatabasePath string

	// where the (encrypted) access token lives
	TokenPath string

	// keys for token-at-rest encryption + signing, 32+ chars each
	EncryptionKey string
	SignatureKey  string

	LogLevel string
}

// Load reads .env (if present) then the environment, falling back to
// defaults under ~/.moneymind.
func Load(log *logrus.Logger) *Config {
	if err := godotenv.Load(); err == nil {
		log.Debug(".env file loaded")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := getEnv("MONEYMIND_DIR", filepath.Join(home, ".moneymind"))

	cfg := &Config{
		APIBaseURL:    getEnv("MONEYMIND_API_URL", "http://localhost:8080/api/v1"),
		DatabasePath:  getEnv("MONEYMIND_DB_PATH", filepath.Join(dir, "edits.db")),
		TokenPath:     getEnv("MONEYMIND_TOKEN_PATH", filepath.Join(dir, "token")),
		EncryptionKey: getEnv("MONEYMIND_ENC_KEY", defaultEncKey),
		SignatureKey:  getEnv("MONEYMIND_SIG_KEY", defaultSigKey),
		LogLevel:      getEnv("MONEYMIND_LOG_LEVEL", "info"),
	}

	if cfg.EncryptionKey == defaultEncKey || cfg.SignatureKey == defaultSigKey {
		log.Warn("using default token encryption keys; set MONEYMIND_ENC_KEY and MONEYMIND_SIG_KEY")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		log.WithError(err).Warnf("could not create data dir %s", dir)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
