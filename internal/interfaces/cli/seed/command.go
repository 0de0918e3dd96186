package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	settingUsecases "github.com/civictrack/civictrack/internal/application/setting/usecases"
	userUsecases "github.com/civictrack/civictrack/internal/application/user/usecases"
	"github.com/civictrack/civictrack/internal/infrastructure/config"
	"github.com/civictrack/civictrack/internal/infrastructure/database"
	"github.com/civictrack/civictrack/internal/infrastructure/repository"
	"github.com/civictrack/civictrack/internal/shared/authorization"
	"github.com/civictrack/civictrack/internal/shared/biztime"
	"github.com/civictrack/civictrack/internal/shared/constants"
	"github.com/civictrack/civictrack/internal/shared/logger"
)

var (
	env      string
	filePath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Provision staff accounts and report settings",
		Long:  `Create or update staff accounts and the district catalog from a YAML seed file. Safe to run repeatedly.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&filePath, "file", "f", "./configs/seed.yaml", "Path to the seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	seed, err := ParseFile(f)
	if err != nil {
		return err
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	log := logger.NewLogger()
	db := database.Get()

	seeder := &Seeder{
		Accounts: userUsecases.NewUpsertStaffAccountUseCase(repository.NewAccountRepository(db), biztime.NowUTC, log),
		Settings: settingUsecases.NewUpdateReportSettingsUseCase(repository.NewSystemSettingRepository(db, log), biztime.NowUTC, log),
	}

	summary, err := seeder.Apply(cmd.Context(), seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seed applied: %d staff created, %d updated, settings updated: %t\n",
		summary.Created, summary.Updated, summary.SettingsUpdated)
	return nil
}

// StaffUpserter creates or promotes one staff account.
type StaffUpserter interface {
	Execute(ctx context.Context, cmd userUsecases.UpsertStaffAccountCommand) (*userUsecases.UpsertStaffAccountResult, error)
}

// SettingsUpdater replaces report settings.
type SettingsUpdater interface {
	Execute(ctx context.Context, cmd settingUsecases.UpdateReportSettingsCommand) error
}

type Seeder struct {
	Accounts StaffUpserter
	Settings SettingsUpdater
}

type Summary struct {
	Created         int
	Updated         int
	SettingsUpdated bool
}

// Apply upserts every staff entry, then the report settings present in the file.
func (s *Seeder) Apply(ctx context.Context, f *File) (*Summary, error) {
	summary := &Summary{}

	for _, entry := range f.Staff {
		res, err := s.Accounts.Execute(ctx, userUsecases.UpsertStaffAccountCommand{
			Email:       entry.Email,
			DisplayName: entry.DisplayName,
			Role:        authorization.UserRole(entry.Role),
			Active:      entry.IsActive(),
		})
		if err != nil {
			return summary, fmt.Errorf("seed staff %s: %w", entry.Email, err)
		}
		if res.Created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	cmd := settingUsecases.UpdateReportSettingsCommand{
		Districts:          f.Districts,
		NotificationEvents: f.NotificationEvents,
	}
	if f.SurveyBaseURL != "" {
		cmd.SurveyBaseURL = &f.SurveyBaseURL
	}
	if cmd.Districts == nil && cmd.NotificationEvents == nil && cmd.SurveyBaseURL == nil {
		return summary, nil
	}
	if err := s.Settings.Execute(ctx, cmd); err != nil {
		return summary, fmt.Errorf("seed report settings: %w", err)
	}
	summary.SettingsUpdated = true

	return summary, nil
}
