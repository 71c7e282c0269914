// Package dbtools implements the `helpdesk db` command group: destructive
// reset and credential seeding, both non-interactive.
package dbtools

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	userusecases "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/infrastructure/repository"
	apperrors "helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

var (
	env       string
	confirmed bool
	seedPath  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database administration tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newResetCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop all tables and recreate the schema",
		Long:  `Drop every helpdesk table and recreate the schema from scratch. All data is lost.`,
		RunE:  runReset,
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the destructive reset (required)")
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create users from a YAML seed file",
		RunE:  runSeed,
	}
	cmd.Flags().StringVar(&seedPath, "file", "./configs/seeds.yaml", "Path to the seed file")
	return cmd
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func runReset(cmd *cobra.Command, args []string) error {
	if !confirmed {
		return fmt.Errorf("refusing to reset without --yes: this drops every table")
	}

	_, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	gormDB := database.Get()
	for _, model := range migration.AutoMigrateModels() {
		if err := gormDB.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", model, err)
		}
	}

	strategy := migration.NewGormAutoMigrateStrategy()
	if err := strategy.Migrate(gormDB, migration.AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}

	log.Infow("database reset complete", "environment", env)
	return nil
}

type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Email    string `yaml:"email"`
	Company  string `yaml:"company"`
	Role     string `yaml:"role"`
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seeds seedFile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	userRepo := repository.NewUserRepository(database.Get())
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	register := userusecases.NewRegisterUserUseCase(userRepo, hasher, log)

	ctx := context.Background()
	created, skipped := 0, 0
	for _, s := range seeds.Users {
		_, err := register.Execute(ctx, userusecases.RegisterUserCommand{
			Username: s.Username,
			Password: s.Password,
			Email:    s.Email,
			Company:  s.Company,
			Role:     s.Role,
		})
		switch {
		case err == nil:
			created++
		case apperrors.IsConflictError(err):
			// Seeding is idempotent: existing users stay untouched.
			skipped++
		default:
			return fmt.Errorf("failed to seed user %q: %w", s.Username, err)
		}
	}

	log.Infow("seeding complete", "created", created, "skipped", skipped)
	return nil
}
