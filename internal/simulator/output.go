package simulator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/cloudwriter"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/models"
	"github.com/cguerreroieu2023-ops/Stream-analytics/internal/simulator/producers"
	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// OutputDestination receives serialized events by topic. The topic names
// match the feed names, so the same sink works for files and brokers.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	_, err := os.Stdout.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// JSONOutput writes one NDJSON file per topic under the base path.
type JSONOutput struct {
	basePath string
	files    map[string]*os.File
}

func NewJSONOutput(basePath string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		if err := os.MkdirAll(j.basePath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(j.basePath, topic+".json"))
		if err != nil {
			return err
		}
		j.files[topic] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

// Files lists the paths written so far, for cloud upload after Close.
func (j *JSONOutput) Files() []string {
	paths := make([]string, 0, len(j.files))
	for topic := range j.files {
		paths = append(paths, filepath.Join(j.basePath, topic+".json"))
	}
	return paths
}

func (j *JSONOutput) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ParquetOutput writes one parquet file per topic, using the event struct
// tags as the schema. Events arrive serialized, so they are decoded back
// into their typed form before handing them to the writer.
type ParquetOutput struct {
	basePath string
	writers  map[string]*writer.ParquetWriter
	files    map[string]source.ParquetFile
}

func NewParquetOutput(basePath string) *ParquetOutput {
	return &ParquetOutput{
		basePath: basePath,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	pw, ok := p.writers[topic]
	if !ok {
		if err := os.MkdirAll(p.basePath, os.ModePerm); err != nil {
			return err
		}
		fw, err := local.NewLocalFileWriter(filepath.Join(p.basePath, topic+".parquet"))
		if err != nil {
			return fmt.Errorf("failed to create local file writer: %w", err)
		}

		schema, err := schemaFor(topic)
		if err != nil {
			fw.Close()
			return err
		}
		pw, err = writer.NewParquetWriter(fw, schema, 4)
		if err != nil {
			fw.Close()
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
		p.writers[topic] = pw
		p.files[topic] = fw
	}

	event, err := decodeFor(topic, msg)
	if err != nil {
		return err
	}
	if err := pw.Write(event); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// Files lists the paths written so far, for cloud upload after Close.
func (p *ParquetOutput) Files() []string {
	paths := make([]string, 0, len(p.files))
	for topic := range p.files {
		paths = append(paths, filepath.Join(p.basePath, topic+".parquet"))
	}
	return paths
}

func (p *ParquetOutput) Close() error {
	var lastErr error
	for topic, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Errorf("Error closing parquet writer for %s: %v", topic, err)
		}
		if err := p.files[topic].Close(); err != nil {
			lastErr = err
			log.Errorf("Error closing parquet file for %s: %v", topic, err)
		}
	}
	return lastErr
}

func schemaFor(topic string) (interface{}, error) {
	switch topic {
	case models.FeedOrderEvents:
		return new(models.OrderEvent), nil
	case models.FeedCourierEvents:
		return new(models.CourierEvent), nil
	}
	return nil, fmt.Errorf("no parquet schema for topic %s", topic)
}

func decodeFor(topic string, msg []byte) (interface{}, error) {
	switch topic {
	case models.FeedOrderEvents:
		var e models.OrderEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, err
		}
		return e, nil
	case models.FeedCourierEvents:
		var e models.CourierEvent
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown topic %s", topic)
}

// DetermineOutputDestination picks the sink for the configured output
// mode. Kafka wins over files; console is the fallback.
func (s *Simulator) DetermineOutputDestination() (OutputDestination, error) {
	if s.Config.KafkaEnabled {
		producer, err := producers.NewSaramaProducer(s.Config)
		if err != nil {
			return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
		}
		return producer, nil
	}
	if s.Config.OutputPath != "" {
		switch s.Config.OutputFormat {
		case "parquet":
			return NewParquetOutput(s.Config.OutputPath), nil
		case "json":
			return NewJSONOutput(s.Config.OutputPath), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", s.Config.OutputFormat)
		}
	}
	return &ConsoleOutput{}, nil
}

// WriteFeeds serializes both feeds to the destination, one topic each.
func WriteFeeds(dest OutputDestination, result *Result, showProgress bool) error {
	total := len(result.OrderEvents) + len(result.CourierEvents)
	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(total), "writing events")
	}

	for i := range result.OrderEvents {
		msg, err := json.Marshal(&result.OrderEvents[i])
		if err != nil {
			return fmt.Errorf("failed to marshal order event: %w", err)
		}
		if err := dest.WriteMessage(models.FeedOrderEvents, msg); err != nil {
			return err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	for i := range result.CourierEvents {
		msg, err := json.Marshal(&result.CourierEvents[i])
		if err != nil {
			return fmt.Errorf("failed to marshal courier event: %w", err)
		}
		if err := dest.WriteMessage(models.FeedCourierEvents, msg); err != nil {
			return err
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	return nil
}

// WriteReport writes the validation report as indented JSON next to the
// feeds.
func WriteReport(basePath string, report *models.ValidationReport) (string, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return "", err
	}
	path := filepath.Join(basePath, "validation_report.json")
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal validation report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write validation report: %w", err)
	}
	return path, nil
}

// WriteEntityCatalog writes the generated dimension data next to the
// feeds so consumers can join events back to the zones, restaurants,
// and couriers they reference. Valid after Generate.
func (s *Simulator) WriteEntityCatalog(basePath string) (string, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		return "", err
	}
	path := filepath.Join(basePath, "entities.json")
	catalog := map[string]interface{}{
		"zones":       s.zones,
		"restaurants": s.restaurants,
		"couriers":    s.couriers,
		"customers":   s.customers,
	}
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal entity catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write entity catalog: %w", err)
	}
	return path, nil
}

// UploadOutputs pushes the given local files to the configured bucket,
// keeping their base names as object keys.
func UploadOutputs(cfg *models.Config, paths []string) error {
	if cfg.OutputDestination == "local" || cfg.OutputDestination == "" {
		return nil
	}

	var factory cloudwriter.CloudWriterFactory
	var err error
	switch cfg.CloudStorage.Provider {
	case "s3":
		factory, err = cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
	default:
		return fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
	}
	if err != nil {
		return fmt.Errorf("failed to create cloud writer factory: %w", err)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		w, err := factory.NewWriter(cfg.CloudStorage.BucketName, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("failed to create cloud writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("failed to finish upload of %s: %w", path, err)
		}
		log.Infof("Uploaded %s to bucket %s", filepath.Base(path), cfg.CloudStorage.BucketName)
	}
	return nil
}
