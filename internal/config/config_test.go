package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения и возвращает функцию для их очистки.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"QC_DB_HOST":        "localhost",
		"QC_DB_NAME":        "qurancms",
		"QC_DB_USER":        "qurancms",
		"QC_DB_PASSWORD":    "secret",
		"QC_JWT_SECRET":     "0123456789abcdef0123456789abcdef",
		"QC_CREATOR_CODES":  "c-alpha,c-beta",
		"QC_VERIFIER_CODES": "v-gamma",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	// Проверяем значения по умолчанию
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, ожидается 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, ожидается localhost", cfg.DBHost)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, ожидается 24h", cfg.SessionTTL)
	}
	if len(cfg.CreatorCodes) != 2 || cfg.CreatorCodes[0] != "c-alpha" || cfg.CreatorCodes[1] != "c-beta" {
		t.Errorf("CreatorCodes = %v, ожидается [c-alpha c-beta]", cfg.CreatorCodes)
	}
	if len(cfg.VerifierCodes) != 1 || cfg.VerifierCodes[0] != "v-gamma" {
		t.Errorf("VerifierCodes = %v, ожидается [v-gamma]", cfg.VerifierCodes)
	}
	if cfg.CacheSize != 256 {
		t.Errorf("CacheSize = %d, ожидается 256", cfg.CacheSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, ожидается 5m", cfg.CacheTTL)
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_PORT"] = "9090"
	envs["QC_LOG_LEVEL"] = "debug"
	envs["QC_LOG_FORMAT"] = "text"
	envs["QC_DB_PORT"] = "5433"
	envs["QC_DB_SSL_MODE"] = "require"
	envs["QC_SESSION_TTL"] = "8h"
	envs["QC_CACHE_SIZE"] = "1024"
	envs["QC_CACHE_TTL"] = "30s"
	envs["QC_SHUTDOWN_TIMEOUT"] = "10s"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, ожидается 9090", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.DBPort != 5433 {
		t.Errorf("DBPort = %d, ожидается 5433", cfg.DBPort)
	}
	if cfg.DBSSLMode != "require" {
		t.Errorf("DBSSLMode = %q, ожидается require", cfg.DBSSLMode)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("SessionTTL = %v, ожидается 8h", cfg.SessionTTL)
	}
	if cfg.CacheSize != 1024 {
		t.Errorf("CacheSize = %d, ожидается 1024", cfg.CacheSize)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, ожидается 30s", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	requiredVars := []string{
		"QC_DB_HOST", "QC_DB_NAME", "QC_DB_USER", "QC_DB_PASSWORD",
		"QC_JWT_SECRET", "QC_CREATOR_CODES", "QC_VERIFIER_CODES",
	}

	for _, missing := range requiredVars {
		t.Run(missing, func(t *testing.T) {
			envs := minimalEnvs()
			delete(envs, missing)
			// Очищаем все переменные окружения
			for k := range minimalEnvs() {
				os.Unsetenv(k)
			}
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Errorf("Load() не вернул ошибку при отсутствии %s", missing)
			}
		})
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"ноль", "0"},
		{"выше диапазона", "70000"},
		{"не число", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envs := minimalEnvs()
			envs["QC_PORT"] = tt.value
			for k := range minimalEnvs() {
				os.Unsetenv(k)
			}
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Errorf("Load() не вернул ошибку при QC_PORT=%q", tt.value)
			}
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_LOG_LEVEL"] = "verbose"
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при QC_LOG_LEVEL=verbose")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_LOG_FORMAT"] = "xml"
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при QC_LOG_FORMAT=xml")
	}
}

func TestLoad_InvalidSSLMode(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_DB_SSL_MODE"] = "prefer"
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при QC_DB_SSL_MODE=prefer")
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_JWT_SECRET"] = "tooshort"
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при коротком QC_JWT_SECRET")
	}
}

func TestLoad_EmptyCodeList(t *testing.T) {
	// Строка из одних запятых и пробелов — формально непустая,
	// но не содержит ни одного кода.
	envs := minimalEnvs()
	envs["QC_CREATOR_CODES"] = " , , "
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при пустом списке QC_CREATOR_CODES")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_SESSION_TTL"] = "abc"
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при QC_SESSION_TTL=abc")
	}
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	envs := minimalEnvs()
	envs["QC_CACHE_SIZE"] = "0"
	setEnvs(t, envs)

	_, err := Load()
	if err == nil {
		t.Error("Load() не вернул ошибку при QC_CACHE_SIZE=0")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db.example.com",
		DBPort:     5432,
		DBName:     "qurancms",
		DBUser:     "user",
		DBPassword: "pass",
		DBSSLMode:  "disable",
	}
	expected := "host=db.example.com port=5432 dbname=qurancms user=user password=pass sslmode=disable"
	if dsn := cfg.DatabaseDSN(); dsn != expected {
		t.Errorf("DatabaseDSN() = %q, ожидается %q", dsn, expected)
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"json", "json"},
		{"text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LogLevel:  slog.LevelInfo,
				LogFormat: tt.format,
			}
			logger := SetupLogger(cfg)
			if logger == nil {
				t.Error("SetupLogger() вернул nil")
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"alpha", []string{"alpha"}},
		{"alpha, beta", []string{"alpha", "beta"}},
		{"alpha,,beta,", []string{"alpha", "beta"}},
		{" alpha , beta , gamma ", []string{"alpha", "beta", "gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCSV(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseCSV(%q) = %v (len %d), ожидается %v (len %d)",
					tt.input, result, len(result), tt.expected, len(tt.expected))
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCSV(%q)[%d] = %q, ожидается %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}
