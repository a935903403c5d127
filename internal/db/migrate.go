package db

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations применяет все up-миграции из migrationsPath.
func RunMigrations(dsn, migrationsPath string, log *slog.Logger) error {
	if dsn == "" {
		return errors.New("DSN для миграций не может быть пустым")
	}
	if migrationsPath == "" {
		return errors.New("путь к файлам миграций не может быть пустым")
	}

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("не удалось создать экземпляр мигратора: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn("ошибка при закрытии мигратора",
				slog.Any("source_error", srcErr),
				slog.Any("db_error", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("ошибка при проверке версии миграций: %w", err)
	}
	if dirty {
		return fmt.Errorf("обнаружена 'грязная' миграция версии %d. Исправьте вручную", version)
	}

	log.Info("схема БД актуальна", slog.Uint64("version", uint64(version)))
	return nil
}
