package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultDatabasePath = "foods.db"
	DefaultSchemaPath   = "foodapp.sql"
	DefaultPort         = "5000"
)

const defaultShutdownTimeoutSeconds = 5

type Config struct {
	// sqlite store file
	DatabasePath string

	// schema script applied by initdb and on first start
	SchemaPath string

	// http listener
	Port            string
	AllowedOrigins  []string // empty disables CORS handling
	ShutdownTimeout time.Duration

	Debug bool
}

// InvalidValueError reports an environment variable that could not be used.
// The affected setting keeps its default.
type InvalidValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %v", e.Key, e.Value, e.Err)
}

func (e *InvalidValueError) Unwrap() error { return e.Err }

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(key string, defaultVal int, errs *[]error) int {
	valStr := strings.TrimSpace(os.Getenv(key))
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err == nil && val <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		*errs = append(*errs, &InvalidValueError{Key: key, Value: valStr, Err: err})
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(key string, defaultVal bool, errs *[]error) bool {
	valStr := strings.TrimSpace(os.Getenv(key))
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		*errs = append(*errs, &InvalidValueError{Key: key, Value: valStr, Err: err})
		return defaultVal
	}
	return val
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig reads the configuration from the environment. Unusable values
// fall back to their defaults; the returned error, if any, joins one
// *InvalidValueError per rejected variable and the Config is still complete.
func LoadConfig() (Config, error) {
	var errs []error

	port := getEnvOrDefault("PORT", DefaultPort)
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		if err == nil {
			err = errors.New("out of range")
		}
		errs = append(errs, &InvalidValueError{Key: "PORT", Value: port, Err: err})
		port = DefaultPort
	}

	shutdownSeconds := getEnvIntOrDefault("SHUTDOWN_TIMEOUT_SECONDS", defaultShutdownTimeoutSeconds, &errs)

	cfg := Config{
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", DefaultDatabasePath),
		SchemaPath:      getEnvOrDefault("SCHEMA_PATH", DefaultSchemaPath),
		Port:            port,
		AllowedOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
		Debug:           getEnvBoolOrDefault("DEBUG", false, &errs),
	}

	return cfg, errors.Join(errs...)
}
