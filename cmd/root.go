package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/repositories/postgres"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/simulator"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "deliverysim",
	Short: "Generates synthetic event feeds for a food delivery marketplace",
	Long: `deliverysim generates one simulated day of order lifecycle events and
courier status events for a fictional food delivery platform, with
deliberate data quality defects (duplicates, late arrivals, missing
steps, fraud bursts) for exercising stream processing pipelines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		sim, err := simulator.New(cfg)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"seed":   cfg.Seed,
			"date":   cfg.Date,
			"city":   cfg.City,
			"orders": cfg.NumOrders,
		}).Info("Generating feeds")

		result, err := sim.Generate()
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"order_events":   len(result.OrderEvents),
			"courier_events": len(result.CourierEvents),
		}).Info("Generation complete")
		for _, w := range result.Report.DataQualityWarnings {
			log.Warn(w)
		}

		if cfg.Stream {
			return stream(cfg, sim, result)
		}
		return writeOutputs(cfg, sim, result)
	},
}

// stream replays the feeds in event time: to stdout as NDJSON, or to
// Kafka topics when the broker output is enabled.
func stream(cfg *models.Config, sim *simulator.Simulator, result *simulator.Result) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if cfg.KafkaEnabled {
		var dest simulator.OutputDestination
		dest, err = sim.DetermineOutputDestination()
		if err != nil {
			return err
		}
		defer dest.Close()
		err = simulator.StreamToDestination(ctx, result.OrderEvents, result.CourierEvents, cfg.SpeedFactor, dest)
	} else {
		err = simulator.StreamEvents(ctx, result.OrderEvents, result.CourierEvents, cfg.SpeedFactor, os.Stdout)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func writeOutputs(cfg *models.Config, sim *simulator.Simulator, result *simulator.Result) error {
	if cfg.OutputFormat == "postgres" {
		return writeToPostgres(cfg, result)
	}

	dest, err := sim.DetermineOutputDestination()
	if err != nil {
		return err
	}
	showProgress := cfg.OutputPath != ""
	if err := simulator.WriteFeeds(dest, result, showProgress); err != nil {
		dest.Close()
		return err
	}
	if err := dest.Close(); err != nil {
		return err
	}

	if cfg.OutputPath == "" {
		return nil
	}

	reportPath, err := simulator.WriteReport(cfg.OutputPath, result.Report)
	if err != nil {
		return err
	}
	log.Infof("Validation report written to %s", reportPath)

	catalogPath, err := sim.WriteEntityCatalog(cfg.OutputPath)
	if err != nil {
		return err
	}
	log.Infof("Entity catalog written to %s", catalogPath)

	if lister, ok := dest.(interface{ Files() []string }); ok {
		paths := append(lister.Files(), reportPath, catalogPath)
		if err := simulator.UploadOutputs(cfg, paths); err != nil {
			return err
		}
	}
	return nil
}

func writeToPostgres(cfg *models.Config, result *simulator.Result) error {
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderEventRepository(pool)
	courierRepo := postgres.NewCourierEventRepository(pool)

	// each run replaces the previous load
	if err := orderRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear order events: %w", err)
	}
	if err := courierRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear courier events: %w", err)
	}

	if err := orderRepo.BulkCreate(ctx, result.OrderEvents); err != nil {
		return fmt.Errorf("failed to insert order events: %w", err)
	}
	if err := courierRepo.BulkCreate(ctx, result.CourierEvents); err != nil {
		return fmt.Errorf("failed to insert courier events: %w", err)
	}

	orderCount, err := orderRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count order events: %w", err)
	}
	courierCount, err := courierRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count courier events: %w", err)
	}

	log.WithFields(log.Fields{
		"order_events":   orderCount,
		"courier_events": courierCount,
	}).Info("Events written to postgres")
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")

	rootCmd.Flags().Int("seed", 42, "Random seed for generation")
	rootCmd.Flags().String("date", "", "Simulation date (YYYY-MM-DD, default today)")
	rootCmd.Flags().Bool("weekend", false, "Force the weekend demand curve")
	rootCmd.Flags().String("city", "madrid", "City preset for zones")
	rootCmd.Flags().Int("num-orders", 500, "Number of orders to generate")
	rootCmd.Flags().Int("num-couriers", 25, "Number of couriers")
	rootCmd.Flags().Int("num-restaurants", 40, "Number of restaurants")
	rootCmd.Flags().Int("num-zones", 8, "Number of delivery zones")
	rootCmd.Flags().Int("num-customers", 0, "Number of customers (0 derives from order count)")
	rootCmd.Flags().Float64("cancel-prob", 0.07, "Order cancellation probability")
	rootCmd.Flags().Float64("promo-prob", 0.25, "Promo discount probability")
	rootCmd.Flags().Float64("duplicate-prob", 0.02, "Duplicate event injection probability")
	rootCmd.Flags().Float64("late-prob", 0.05, "Late event injection probability")
	rootCmd.Flags().Float64("missing-step-prob", 0.03, "Missing pickup step probability")
	rootCmd.Flags().Float64("impossible-duration-prob", 0.01, "Impossible delivery duration probability")
	rootCmd.Flags().Float64("mid-delivery-offline-prob", 0.02, "Mid-delivery offline probability")
	rootCmd.Flags().Float64("fraud-cluster-prob", 0.005, "Fraud cluster probability per order")
	rootCmd.Flags().Bool("zone-surge-event", false, "Inject a localized order surge")
	rootCmd.Flags().Float64("surge-factor", 1.8, "Demand multiplier during peak windows")
	rootCmd.Flags().Bool("stream", false, "Replay events to stdout in event-time order")
	rootCmd.Flags().Float64("speed-factor", 60, "Stream playback speedup over real time")
	rootCmd.Flags().String("output-path", "", "Directory for generated files")
	rootCmd.Flags().String("output-format", "json", "Output format: json, parquet, postgres")
	rootCmd.Flags().String("output-destination", "local", "Where files end up: local or s3")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	// flag names use dashes, config keys use underscores
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
