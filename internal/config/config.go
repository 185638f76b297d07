package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Backend selection
	DataBackend string

	// Auth
	JWTSecret string
	JWTTTL    time.Duration

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mail
	MailProvider   string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	MailgunDomain  string
	MailgunAPIKey  string
	MailFrom       string
	MailSenderName string

	// Import
	ImportGuardMode string

	// Listing
	PageSize int
}

const (
	GuardModeFilename    = "filename"
	GuardModeContentHash = "content-hash"
)

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expensevis.db"),
		DataBackend:  getEnv("DATA_BACKEND", "memory"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expensevis"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "payment_reminders"),

		MailProvider:   getEnv("MAIL_PROVIDER", "mock"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		MailgunDomain:  getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:  getEnv("MAILGUN_API_KEY", ""),
		MailFrom:       getEnv("MAIL_FROM", ""),
		MailSenderName: getEnv("MAIL_SENDER_NAME", "Expense Tracker"),

		ImportGuardMode: getEnv("IMPORT_GUARD_MODE", GuardModeFilename),

		PageSize: getEnvInt("PAGE_SIZE", 5),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sheets", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.DataBackend == "sheets" {
		if os.Getenv("SHEETS_SPREADSHEET_ID") == "" {
			errs = append(errs, "SHEETS_SPREADSHEET_ID is required when using sheets backend")
		}
		hasCreds := os.Getenv("SHEETS_CREDENTIALS_JSON") != "" ||
			os.Getenv("SHEETS_CREDENTIALS_FILE") != "" ||
			os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != ""
		if !hasCreds {
			errs = append(errs, "service account credentials are required when using sheets backend (set SHEETS_CREDENTIALS_JSON, SHEETS_CREDENTIALS_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
		}
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET cannot be empty")
	}
	if c.JWTTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid JWT TTL %v: must be at least 1 minute", c.JWTTTL))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.MailProvider {
	case "mock":
	case "smtp":
		if c.SMTPHost == "" {
			errs = append(errs, "SMTP host cannot be empty when using smtp mail provider")
		}
		if c.MailFrom == "" {
			errs = append(errs, "MAIL_FROM cannot be empty when using smtp mail provider")
		}
	case "mailgun":
		if c.MailgunDomain == "" {
			errs = append(errs, "Mailgun domain cannot be empty when using mailgun mail provider")
		}
		if c.MailgunAPIKey == "" {
			errs = append(errs, "Mailgun API key cannot be empty when using mailgun mail provider")
		}
		if c.MailFrom == "" {
			errs = append(errs, "MAIL_FROM cannot be empty when using mailgun mail provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid mail provider '%s': must be one of [mock smtp mailgun]", c.MailProvider))
	}

	if c.ImportGuardMode != GuardModeFilename && c.ImportGuardMode != GuardModeContentHash {
		errs = append(errs, fmt.Sprintf("invalid import guard mode '%s': must be '%s' or '%s'", c.ImportGuardMode, GuardModeFilename, GuardModeContentHash))
	}

	if c.PageSize < 1 {
		errs = append(errs, fmt.Sprintf("invalid page size %d: must be at least 1", c.PageSize))
	} else if c.PageSize > 100 {
		errs = append(errs, fmt.Sprintf("invalid page size %d: must be at most 100", c.PageSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
