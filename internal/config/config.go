package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	DBType    string
	DBPath    string
	DBDSN     string
	DataJSON  string
	UploadDir string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	OpsEmail string

	JWTSecret  string
	AdminEmail string
	AdminPass  string
	GelfAddr   string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:   getEnv("FORMDESK_ADDR", ":10000"),
		DBType:     getEnv("DB_TYPE", "sqlite"),
		DBPath:     getEnv("DB_PATH", "cnaps.db"),
		DBDSN:      getEnv("DB_DSN", ""),
		DataJSON:   getEnv("DATA_JSON", "data.json"),
		UploadDir:  getEnv("UPLOAD_DIR", "static/uploads"),
		SMTPHost:   getEnv("SMTP_HOST", "localhost"),
		SMTPPort:   getEnvInt("SMTP_PORT", 587),
		SMTPUser:   getEnv("SMTP_USER", ""),
		SMTPPass:   getEnv("SMTP_PASS", ""),
		MailFrom:   getEnv("MAIL_FROM", "no-reply@formdesk.local"),
		OpsEmail:   getEnv("OPS_EMAIL", "inscriptions@formdesk.local"),
		JWTSecret:  getEnv("FORMDESK_JWT_SECRET", "formdesk-dev-secret-change-me"),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@formdesk.local"),
		AdminPass:  getEnv("ADMIN_PASS", "admin123"),
		GelfAddr:   getEnv("GELF_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
