package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// HTTP Server
	Port string

	// Aptos fullnode
	NodeURL         string
	ContractAddress string
	ModuleName      string

	// Snapshot store
	SnapshotBackend string
	SQLiteDBPath    string
	PostgresURL     string

	// AMQP refresh queue
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		NodeURL:         getEnv("APTOS_NODE_URL", "https://fullnode.testnet.aptoslabs.com"),
		ContractAddress: getEnv("CONTRACT_ADDRESS", ""),
		ModuleName:      getEnv("MODULE_NAME", "splitrix"),

		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", "memory"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/splitrix.db"),
		PostgresURL:     getEnv("DATABASE_URL", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "splitrix"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "refresh_snapshots"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 60*time.Second),
	}
}

// Validate checks the loaded configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if nodeURL, err := url.Parse(c.NodeURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid node URL '%s': %v", c.NodeURL, err))
	} else if nodeURL.Scheme != "http" && nodeURL.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid node URL scheme '%s': must be 'http' or 'https'", nodeURL.Scheme))
	}

	if c.ContractAddress == "" {
		errs = append(errs, "contract address cannot be empty")
	} else if !strings.HasPrefix(c.ContractAddress, "0x") {
		errs = append(errs, fmt.Sprintf("invalid contract address '%s': must start with 0x", c.ContractAddress))
	}
	if c.ModuleName == "" {
		errs = append(errs, "module name cannot be empty")
	}

	switch c.SnapshotBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "postgres":
		if c.PostgresURL == "" {
			errs = append(errs, "database URL cannot be empty when using postgres backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid snapshot backend '%s': must be one of [memory sqlite postgres]", c.SnapshotBackend))
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

	if c.RefreshInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at least 1 second", c.RefreshInterval))
	} else if c.RefreshInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
