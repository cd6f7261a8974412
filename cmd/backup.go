package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"backup-manager/core/config"
	"backup-manager/core/logger"
	"backup-manager/core/primary"
	"backup-manager/core/replica"
	"backup-manager/feature/backup"
	"backup-manager/feature/backup/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var yesConfirm bool

// backupCmd is the parent command for all backup operations.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup and reconciliation operations",
	Long: `Run a full sync, inspect health and restore contents, or clear the
replica. The primary store is read-only for every subcommand.`,
}

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full sync from the primary store into the replica",
	RunE:  runBackupRun,
}

var backupHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Compare record counts between the primary store and the replica",
	RunE:  runBackupHealth,
}

var backupRestoreInfoCmd = &cobra.Command{
	Use:   "restore-info",
	Short: "Report what a restore from the replica would contain",
	Long: `Reports replica-side record counts per entity type. Executing an
actual restore is intentionally not implemented; use direct store tooling.`,
	RunE: runBackupRestoreInfo,
}

var backupClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all records from the replica (maintenance)",
	Long: `Deletes every record from the four replica tables. This is a
separate maintenance action, never part of the reconciliation loop, and it
never touches the primary store.

Example:
  # Clear with interactive confirmation
  backup-manager backup clear

  # Clear without prompting (non-interactive)
  backup-manager backup clear --yes`,
	RunE: runBackupClear,
}

func init() {
	backupClearCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	backupCmd.AddCommand(backupRunCmd)
	backupCmd.AddCommand(backupHealthCmd)
	backupCmd.AddCommand(backupRestoreInfoCmd)
	backupCmd.AddCommand(backupClearCmd)
	RootCmd.AddCommand(backupCmd)
}

// setupStores loads config and connects both stores for one-shot commands.
func setupStores() (*config.Config, *zap.Logger, store.Source, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	primaryDB, err := primary.Connect(cfg.Primary)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	replicaDB, err := replica.Connect(cfg.Replica)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := replica.Migrate(replicaDB, store.Models()...); err != nil {
		return nil, nil, nil, nil, err
	}

	return cfg, l, store.NewMongoSource(primaryDB), replicaDB, nil
}

func runBackupRun(cmd *cobra.Command, args []string) error {
	cfg, l, source, replicaDB, err := setupStores()
	if err != nil {
		return err
	}
	defer l.Sync()

	coordinator := backup.NewCoordinator(
		source,
		store.NewSQLTarget(replicaDB),
		nil,
		time.Duration(cfg.Backup.TimeoutSeconds)*time.Second,
		l,
	)

	summary, err := coordinator.RunFullSync(context.Background())
	if err != nil {
		return fmt.Errorf("full sync failed: %w", err)
	}

	fmt.Printf("Backup completed: %s\n", summary)
	return nil
}

func runBackupHealth(cmd *cobra.Command, args []string) error {
	_, l, source, replicaDB, err := setupStores()
	if err != nil {
		return err
	}
	defer l.Sync()

	reporter := backup.NewHealthReporter(source, store.NewSQLTarget(replicaDB), l)
	health := reporter.Check(context.Background())

	fmt.Printf("Status:  %s\n", health.Status)
	if health.Error != "" {
		fmt.Printf("Error:   %s\n", health.Error)
		return nil
	}
	fmt.Printf("Primary: %d builds, %d orders, %d users, %d inquiries\n",
		health.Counts.Builds, health.Counts.Orders, health.Counts.Users, health.Counts.Inquiries)
	fmt.Printf("Replica: %d builds, %d orders, %d users, %d inquiries\n",
		health.BackupCounts.Builds, health.BackupCounts.Orders, health.BackupCounts.Users, health.BackupCounts.Inquiries)
	fmt.Printf("In sync: %v\n", health.InSync)
	return nil
}

func runBackupRestoreInfo(cmd *cobra.Command, args []string) error {
	_, l, _, replicaDB, err := setupStores()
	if err != nil {
		return err
	}
	defer l.Sync()

	inspector := backup.NewRestoreInspector(store.NewSQLTarget(replicaDB))
	counts, err := inspector.Inspect(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Restore would recreate %d builds, %d orders, %d users, %d inquiries from the replica.\n",
		counts.Builds, counts.Orders, counts.Users, counts.Inquiries)
	fmt.Println("Execution is disabled by design; use direct store tooling instead.")
	return nil
}

func runBackupClear(cmd *cobra.Command, args []string) error {
	_, l, _, replicaDB, err := setupStores()
	if err != nil {
		return err
	}
	defer l.Sync()

	target := store.NewSQLTarget(replicaDB)
	counts, err := target.Counts(context.Background())
	if err != nil {
		return err
	}

	if !yesConfirm {
		fmt.Printf("About to delete %d builds, %d orders, %d users, %d inquiries from the replica.\n",
			counts.Builds, counts.Orders, counts.Users, counts.Inquiries)
		fmt.Print("Type 'yes' to continue: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := target.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear replica: %w", err)
	}

	l.Info("Replica cleared",
		zap.Int64("builds", counts.Builds),
		zap.Int64("orders", counts.Orders),
		zap.Int64("users", counts.Users),
		zap.Int64("inquiries", counts.Inquiries),
	)
	fmt.Println("Replica cleared.")
	return nil
}
