// themisctl - служебные команды: импорт из Excel и выдача начальных паролей
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/themis-api/internal/config"
	"github.com/themis-api/internal/database"
	"github.com/themis-api/internal/handler"
	"github.com/themis-api/internal/importer"
	"github.com/themis-api/internal/logging"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/service"
	"github.com/themis-api/internal/storage"
	"gorm.io/gorm"
)

const usage = `usage: themisctl <command> [flags] <arg>

commands:
  import-employees <file.xlsx>   import employees from the first sheet
  import-projects <file.xlsx>    import projects from the first sheet
  initial-passwords <password>   set a password for employees without one
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", slog.String("command", os.Args[1]), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string, args []string) error {
	switch command {
	case "import-employees", "import-projects", "initial-passwords":
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}

	fs := flag.NewFlagSet(command, flag.ExitOnError)
	var superuser string
	var all bool
	if command == "initial-passwords" {
		fs.StringVar(&superuser, "superuser", "", "username that also becomes a superuser")
		fs.BoolVar(&all, "all", false, "overwrite existing passwords")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	arg := fs.Arg(0)

	db, err := open(cfg)
	if err != nil {
		return err
	}
	im := newImporter(db, cfg, logger)

	switch command {
	case "import-employees":
		return importFile(ctx, arg, logger, im.ImportEmployees)
	case "import-projects":
		return importFile(ctx, arg, logger, im.ImportProjects)
	case "initial-passwords":
		n, err := im.InitialPasswords(ctx, importer.PasswordOptions{
			Password:  arg,
			Superuser: superuser,
			All:       all,
		})
		if err != nil {
			return err
		}
		logger.Info("passwords set", slog.Int("employees", n))
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func open(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database, 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(sqlDB); err != nil {
		return nil, err
	}
	return db, nil
}

func newImporter(db *gorm.DB, cfg *config.Config, logger *slog.Logger) *importer.Importer {
	media := storage.NewURLResolver(cfg.Media)

	areaRepo := repository.NewAreaRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	return importer.New(
		importer.Catalogs{
			Areas:        areaRepo,
			Departments:  repository.NewDepartmentRepository(db),
			Positions:    repository.NewPositionRepository(db),
			Degrees:      repository.NewDegreeRepository(db),
			ProjectTypes: repository.NewProjectTypeRepository(db),
			Statuses:     repository.NewProjectStatusRepository(db),
			Customers:    repository.NewCustomerRepository(db),
		},
		service.NewEmployeeService(empRepo, projectRepo, media),
		service.NewProjectService(projectRepo, areaRepo, teamRepo, media),
		empRepo,
		handler.NewValidator(),
		logger,
	)
}

func importFile(
	ctx context.Context,
	path string,
	logger *slog.Logger,
	load func(context.Context, io.Reader) (*importer.Report, error),
) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := load(ctx, f)
	if err != nil {
		return err
	}
	for _, failure := range report.Failed {
		logger.Warn("row failed", slog.Int("row", failure.Row), slog.Any("error", failure.Err))
	}
	logger.Info("import finished",
		slog.String("file", path),
		slog.Int("created", report.Created),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", len(report.Failed)),
	)
	return nil
}
