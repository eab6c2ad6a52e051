package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	User     string `mapstructure:"user" json:"user"`
	Password string `mapstructure:"password" json:"-"`
	DBName   string `mapstructure:"dbname" json:"dbname"`
	SSLMode  string `mapstructure:"sslmode" json:"sslmode"`
}

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider" json:"provider"`
	BucketName string `mapstructure:"bucket_name" json:"bucket_name"`
	Region     string `mapstructure:"region" json:"region"`
}

type Config struct {
	Seed    int    `mapstructure:"seed" json:"seed"`
	Date    string `mapstructure:"date" json:"date"` // YYYY-MM-DD, empty means today
	Weekend bool   `mapstructure:"weekend" json:"weekend"`
	City    string `mapstructure:"city" json:"city"`

	NumOrders      int `mapstructure:"num_orders" json:"num_orders"`
	NumCouriers    int `mapstructure:"num_couriers" json:"num_couriers"`
	NumRestaurants int `mapstructure:"num_restaurants" json:"num_restaurants"`
	NumZones       int `mapstructure:"num_zones" json:"num_zones"`
	NumCustomers   int `mapstructure:"num_customers" json:"num_customers"` // 0 derives max(50, orders/3)

	CancelProb             float64 `mapstructure:"cancel_prob" json:"cancel_prob"`
	PromoProb              float64 `mapstructure:"promo_prob" json:"promo_prob"`
	DuplicateProb          float64 `mapstructure:"duplicate_prob" json:"duplicate_prob"`
	LateProb               float64 `mapstructure:"late_prob" json:"late_prob"`
	MissingStepProb        float64 `mapstructure:"missing_step_prob" json:"missing_step_prob"`
	ImpossibleDurationProb float64 `mapstructure:"impossible_duration_prob" json:"impossible_duration_prob"`
	MidDeliveryOfflineProb float64 `mapstructure:"mid_delivery_offline_prob" json:"mid_delivery_offline_prob"`
	FraudClusterProb       float64 `mapstructure:"fraud_cluster_prob" json:"fraud_cluster_prob"`
	ZoneSurgeEvent         bool    `mapstructure:"zone_surge_event" json:"zone_surge_event"`
	SurgeFactor            float64 `mapstructure:"surge_factor" json:"surge_factor"`

	Stream      bool    `mapstructure:"stream" json:"stream"`
	SpeedFactor float64 `mapstructure:"speed_factor" json:"speed_factor"`

	OutputPath        string             `mapstructure:"output_path" json:"output_path"`
	OutputFormat      string             `mapstructure:"output_format" json:"output_format"` // json, parquet, postgres
	OutputDestination string             `mapstructure:"output_destination" json:"output_destination"`
	KafkaEnabled      bool               `mapstructure:"kafka_enabled" json:"kafka_enabled"`
	KafkaBrokerList   string             `mapstructure:"kafka_broker_list" json:"kafka_broker_list"`
	SessionTimeoutMs  int                `mapstructure:"session_timeout_ms" json:"session_timeout_ms"`
	Database          DatabaseConfig     `mapstructure:"database" json:"database"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage" json:"cloud_storage"`
}

// LoadConfig reads configuration through Viper, merging an optional config
// file with any flags and environment variables already bound.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// a missing config file is fine, flags and defaults cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// Validate rejects fatal misconfiguration. There is no degraded mode for
// these: generation with zero entities cannot produce a meaningful feed.
func (cfg *Config) Validate() error {
	if cfg.NumOrders <= 0 {
		return fmt.Errorf("num_orders must be positive, got %d", cfg.NumOrders)
	}
	if cfg.NumCouriers <= 0 {
		return fmt.Errorf("num_couriers must be positive, got %d", cfg.NumCouriers)
	}
	if cfg.NumRestaurants <= 0 {
		return fmt.Errorf("num_restaurants must be positive, got %d", cfg.NumRestaurants)
	}
	if cfg.NumZones <= 0 {
		return fmt.Errorf("num_zones must be positive, got %d", cfg.NumZones)
	}
	if cfg.SurgeFactor <= 0 {
		return fmt.Errorf("surge_factor must be positive, got %f", cfg.SurgeFactor)
	}
	probs := map[string]float64{
		"cancel_prob":               cfg.CancelProb,
		"promo_prob":                cfg.PromoProb,
		"duplicate_prob":            cfg.DuplicateProb,
		"late_prob":                 cfg.LateProb,
		"missing_step_prob":         cfg.MissingStepProb,
		"impossible_duration_prob":  cfg.ImpossibleDurationProb,
		"mid_delivery_offline_prob": cfg.MidDeliveryOfflineProb,
		"fraud_cluster_prob":        cfg.FraudClusterProb,
	}
	for name, p := range probs {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", name, p)
		}
	}
	if cfg.Stream && cfg.SpeedFactor <= 0 {
		return fmt.Errorf("speed_factor must be positive in stream mode, got %f", cfg.SpeedFactor)
	}
	switch cfg.OutputFormat {
	case "", "json", "parquet", "postgres":
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
	if _, err := cfg.BaseDate(); err != nil {
		return err
	}
	return nil
}

// BaseDate resolves the simulation date at UTC midnight.
func (cfg *Config) BaseDate() (time.Time, error) {
	if cfg.Date == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", cfg.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", cfg.Date, err)
	}
	return t.UTC(), nil
}

// IsWeekendDay reports whether the run uses the weekend demand curve,
// either forced by the flag or implied by the date.
func (cfg *Config) IsWeekendDay(base time.Time) bool {
	if cfg.Weekend {
		return true
	}
	wd := base.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
