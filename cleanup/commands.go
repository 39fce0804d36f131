package cleanup

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studiomezzo/studio-site-backend/config"
	"github.com/studiomezzo/studio-site-backend/database"
	"github.com/studiomezzo/studio-site-backend/storage"
)

// NewRootCommand creates the root command for the storage maintenance tool.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage-cleanup",
		Short: "Find and remove stored images nothing references anymore",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := godotenv.Load(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
			}
		},
	}

	cmd.AddCommand(newAnalyzeCommand())
	cmd.AddCommand(newCleanupCommand())

	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Report unused objects and potential space savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, _, err := analyze(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Objects in bucket:  %d\n", report.TotalObjects)
			fmt.Printf("Unused objects:     %d\n", len(report.Unused))
			fmt.Printf("Reclaimable space:  %.2f MB\n", float64(report.ReclaimableBytes)/(1024*1024))
			for _, obj := range report.Unused {
				fmt.Printf("  %s (%d bytes)\n", obj.Key, obj.Size)
			}
			return nil
		},
	}
}

func newCleanupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete every unused object",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, objects, err := analyze(cmd.Context())
			if err != nil {
				return err
			}

			deleted, err := Delete(cmd.Context(), objects, report)
			fmt.Printf("Deleted %d of %d unused objects\n", deleted, len(report.Unused))
			return err
		},
	}
}

// analyze wires up the database and object store from the environment and
// runs one analysis pass.
func analyze(ctx context.Context) (Report, ObjectLister, error) {
	cfg := config.New()

	db, err := openDatabase(cfg)
	if err != nil {
		return Report{}, nil, fmt.Errorf("connecting to database: %w", err)
	}

	objects, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return Report{}, nil, fmt.Errorf("initializing object storage: %w", err)
	}

	referenced, err := ReferencedURLs(ctx, database.New(db))
	if err != nil {
		return Report{}, nil, fmt.Errorf("collecting referenced urls: %w", err)
	}

	report, err := Analyze(ctx, objects, referenced)
	if err != nil {
		return Report{}, nil, fmt.Errorf("analyzing bucket: %w", err)
	}
	return report, objects, nil
}

func openDatabase(cfg map[string]string) (*gorm.DB, error) {
	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
		config.GetString(cfg, "SUPABASE_DB_HOST", ""),
		config.GetString(cfg, "SUPABASE_DB_USER", ""),
		config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(cfg, "SUPABASE_DB_NAME", "postgres"),
		config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
	)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
}
