// Пакет database — PostgreSQL-хранилище контента: пул подключений,
// накат схемы (golang-migrate поверх embedded SQL) и проверка
// готовности для health endpoint. Все таблицы — суры, переводы,
// толкования, страницы, журнал аудита, пользователи — живут в одной
// базе; миграции применяются при старте процесса.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alfurqan/quran-cms/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect открывает пул подключений к хранилищу контента и проверяет
// его ping-ом: без базы процессу стартовать незачем.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("разбор DSN хранилища: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("создание пула подключений: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("хранилище контента недоступно: %w", err)
	}

	logger.Info("Хранилище контента подключено",
		slog.String("host", cfg.DBHost),
		slog.Int("port", cfg.DBPort),
		slog.String("database", cfg.DBName),
	)

	return pool, nil
}

// migrateURL — тот же URL подключения, что и cfg.DatabaseURL(), но со
// схемой pgx5: так golang-migrate выбирает драйвер pgx/v5.
func migrateURL(cfg *config.Config) string {
	return "pgx5" + strings.TrimPrefix(cfg.DatabaseURL(), "postgres")
}

// Migrate накатывает схему контента из embedded SQL-миграций.
// Отсутствие новых миграций ошибкой не считается.
func Migrate(cfg *config.Config, logger *slog.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("чтение embedded миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(cfg))
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("накат миграций: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Схема контента актуальна",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return nil
}

// ReadinessChecker проверяет доступность хранилища контента для
// /health/ready. Реализует handlers.ReadinessChecker.
type ReadinessChecker struct {
	pool *pgxpool.Pool
}

// NewReadinessChecker создаёт проверку готовности хранилища.
func NewReadinessChecker(pool *pgxpool.Pool) *ReadinessChecker {
	return &ReadinessChecker{pool: pool}
}

// CheckReady пингует хранилище с коротким таймаутом: readiness не
// должен зависать вместе с базой.
func (c *ReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.pool.Ping(ctx); err != nil {
		return "fail", fmt.Sprintf("PostgreSQL недоступен: %v", err)
	}
	return "ok", "подключение активно"
}
