package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backup-manager/core/config"
	"backup-manager/core/loader"
	"backup-manager/core/logger"
	"backup-manager/core/middleware/auth"
	"backup-manager/core/middleware/rayid"
	"backup-manager/core/primary"
	"backup-manager/core/replica"
	"backup-manager/core/storage"
	"backup-manager/feature/backup"
	"backup-manager/feature/backup/store"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the backup manager server",
	Long:  `Starts the HTTP server, connects both stores, and arms the backup scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect both stores. Unlike record-level failures, a missing
		// store connection is fatal: there is nothing to reconcile without it.
		primaryDB, err := primary.Connect(cfg.Primary)
		if err != nil {
			logg.Fatal("Failed to connect to primary store", zap.Error(err))
		}
		logg.Info("Connected to primary store", zap.String("database", cfg.Primary.Name))

		replicaDB, err := replica.Connect(cfg.Replica)
		if err != nil {
			logg.Fatal("Failed to connect to replica store", zap.Error(err))
		}
		if err := replica.Migrate(replicaDB, store.Models()...); err != nil {
			logg.Fatal("Failed to migrate replica schema", zap.Error(err))
		}
		logg.Info("Connected to replica store", zap.String("database", cfg.Replica.Name))

		// 4. Optional run-report archiver
		var archiver *backup.Archiver
		if cfg.Storage.Enabled() {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			archiver = backup.NewArchiver(client, cfg.Storage.Bucket, logg)
			logg.Info("Run-report archiving enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Wire the backup feature
		service := backup.NewService(
			store.NewMongoSource(primaryDB),
			store.NewSQLTarget(replicaDB),
			archiver,
			time.Duration(cfg.Backup.TimeoutSeconds)*time.Second,
			logg,
		)
		feature := backup.NewFeature(service, cfg.Backup.AutoStart, cfg.Backup.IntervalHours, logg)

		mgr := loader.NewManager()
		mgr.Register(feature)

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		feature.Shutdown()
		_ = app.Shutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := primary.Disconnect(ctx, primaryDB); err != nil {
			logg.Warn("Failed to disconnect from primary store", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
