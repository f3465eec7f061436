// Пакет config — загрузка и валидация конфигурации сервиса
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации сервиса.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Аутентификация ---

	// Секрет подписи session token (HS256)
	JWTSecret string
	// Время жизни session token
	SessionTTL time.Duration
	// Login codes роли creator (через запятую)
	CreatorCodes []string
	// Login codes роли verifier (через запятую)
	VerifierCodes []string

	// --- Кэш чтения ---

	// Максимальное количество записей в кэше
	CacheSize int
	// TTL записи кэша
	CacheTTL time.Duration

	// --- Мониторинг ---

	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration
	// Имя группы в метриках topologymetrics
	DephealthGroup string

	// --- Cookie ---

	// Secure-флаг cookie сессии (true за TLS termination)
	CookieSecure bool

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// QC_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("QC_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("QC_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("QC_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// QC_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("QC_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("QC_LOG_LEVEL: %w", err)
	}

	// QC_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("QC_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("QC_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// QC_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("QC_DB_HOST")
	if err != nil {
		return nil, err
	}

	// QC_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("QC_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("QC_DB_PORT: %w", err)
	}

	// QC_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("QC_DB_NAME")
	if err != nil {
		return nil, err
	}

	// QC_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("QC_DB_USER")
	if err != nil {
		return nil, err
	}

	// QC_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("QC_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// QC_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("QC_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("QC_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Аутентификация ---

	// QC_JWT_SECRET — обязательный
	cfg.JWTSecret, err = getEnvRequired("QC_JWT_SECRET")
	if err != nil {
		return nil, err
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("QC_JWT_SECRET: длина секрета %d меньше минимальной 32", len(cfg.JWTSecret))
	}

	// QC_SESSION_TTL — время жизни session token (по умолчанию 24h)
	cfg.SessionTTL, err = getEnvDuration("QC_SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("QC_SESSION_TTL: %w", err)
	}

	// QC_CREATOR_CODES — login codes роли creator, обязательный
	creatorCSV, err := getEnvRequired("QC_CREATOR_CODES")
	if err != nil {
		return nil, err
	}
	cfg.CreatorCodes = parseCSV(creatorCSV)
	if len(cfg.CreatorCodes) == 0 {
		return nil, fmt.Errorf("QC_CREATOR_CODES: список кодов пуст")
	}

	// QC_VERIFIER_CODES — login codes роли verifier, обязательный
	verifierCSV, err := getEnvRequired("QC_VERIFIER_CODES")
	if err != nil {
		return nil, err
	}
	cfg.VerifierCodes = parseCSV(verifierCSV)
	if len(cfg.VerifierCodes) == 0 {
		return nil, fmt.Errorf("QC_VERIFIER_CODES: список кодов пуст")
	}

	// --- Кэш чтения ---

	// QC_CACHE_SIZE — размер кэша (по умолчанию 256)
	cfg.CacheSize, err = getEnvInt("QC_CACHE_SIZE", 256)
	if err != nil {
		return nil, fmt.Errorf("QC_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("QC_CACHE_SIZE: значение %d должно быть положительным", cfg.CacheSize)
	}

	// QC_CACHE_TTL — TTL кэша (по умолчанию 5m)
	cfg.CacheTTL, err = getEnvDuration("QC_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("QC_CACHE_TTL: %w", err)
	}

	// --- Мониторинг ---

	// QC_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("QC_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("QC_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// QC_DEPHEALTH_GROUP — имя группы в метриках (по умолчанию quran)
	cfg.DephealthGroup = getEnvDefault("QC_DEPHEALTH_GROUP", "quran")

	// --- Cookie ---

	// QC_COOKIE_SECURE — Secure-флаг cookie сессии (по умолчанию false)
	cfg.CookieSecure, err = getEnvBool("QC_COOKIE_SECURE", false)
	if err != nil {
		return nil, fmt.Errorf("QC_COOKIE_SECURE: %w", err)
	}

	// --- Graceful shutdown ---

	// QC_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("QC_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("QC_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL.
// Используется topologymetrics для лейблов метрик.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
