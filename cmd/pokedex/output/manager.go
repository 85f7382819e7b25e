package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Manager writes exported query results into a timestamped directory.
type Manager struct {
	baseDir   string
	timestamp string
	log       zerolog.Logger
}

// NewManager creates baseDir/<timestamp>.
func NewManager(baseDir string, log zerolog.Logger) (*Manager, error) {
	timestamp := time.Now().Format("20060102_150405")

	outputPath := filepath.Join(baseDir, timestamp)
	if err := os.MkdirAll(outputPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{
		baseDir:   outputPath,
		timestamp: timestamp,
		log:       log,
	}, nil
}

// WriteToJSON writes data as indented JSON to <prefix>_<timestamp>.json and returns the path.
func (m *Manager) WriteToJSON(data interface{}, prefix string) (string, error) {
	filename := fmt.Sprintf("%s_%s.json", prefix, m.timestamp)
	outputPath := filepath.Join(m.baseDir, filename)

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("failed to encode data to JSON: %w", err)
	}

	m.log.Debug().
		Str("file", outputPath).
		Str("prefix", prefix).
		Msg("Wrote data to JSON file")

	return outputPath, nil
}
