// Package testutil - общие заготовки для тестов: БД в памяти, PostgreSQL и тихий логгер
package testutil

import (
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/themis-api/internal/database"
	"github.com/themis-api/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresDSNEnv - переменная с DSN тестового PostgreSQL. Без неё тесты на PostgreSQL пропускаются
const PostgresDSNEnv = "THEMIS_TEST_POSTGRES_DSN"

// NewDB открывает SQLite в памяти со схемой всех моделей.
// Соединение одно, поэтому каждая транзакция видит одну и ту же базу
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,

		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&domain.Area{},
		&domain.Department{},
		&domain.Position{},
		&domain.PositionLevel{},
		&domain.Degree{},
		&domain.Employee{},
		&domain.ProjectType{},
		&domain.ProjectStatus{},
		&domain.Customer{},
		&domain.Team{},
		&domain.Project{},
		&domain.Task{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewPostgresDB создаёт в PostgreSQL из PostgresDSNEnv отдельную схему, применяет к ней
// миграции и удаляет её после теста
func NewPostgresDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", PostgresDSNEnv)
	}
	cfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	admin, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	schema := "themis_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := admin.Exec("CREATE SCHEMA " + schema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		admin.Exec("DROP SCHEMA " + schema + " CASCADE")
		if sqlDB, err := admin.DB(); err == nil {
			sqlDB.Close()
		}
	})

	db, err := gorm.Open(postgres.Open(withSearchPath(dsn, schema)), cfg)
	if err != nil {
		t.Fatalf("open postgres schema: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(sqlDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// withSearchPath добавляет search_path к DSN в виде URL или в виде "key=value"
func withSearchPath(dsn, schema string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err == nil {
			q := u.Query()
			q.Set("search_path", schema)
			u.RawQuery = q.Encode()
			return u.String()
		}
	}
	return dsn + " search_path=" + schema
}

// Logger возвращает логгер, который ничего не пишет
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Ptr возвращает указатель на v
func Ptr[T any](v T) *T {
	return &v
}
