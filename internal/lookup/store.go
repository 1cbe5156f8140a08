package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Load reads the persisted tables at path. A missing file returns ok=false.
func Load(path string) (Tables, bool, error) {
	if strings.TrimSpace(path) == "" {
		return nil, false, fmt.Errorf("lookup cache path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var tables Tables
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, false, fmt.Errorf("parse lookup cache %q: %w", path, err)
	}
	if tables == nil {
		tables = Tables{}
	}
	return tables, true, nil
}

// Save writes tables as indented UTF-8 JSON keyed by domain.
func Save(path string, tables Tables) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("lookup cache path is required")
	}
	if tables == nil {
		tables = Tables{}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tables); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// LoadOrBuild returns the cached tables when present. Otherwise, or when
// refresh is set, it rebuilds them from src and persists the result.
func LoadOrBuild(ctx context.Context, path string, src Source, refresh bool, logger zerolog.Logger) (Tables, error) {
	if !refresh {
		tables, ok, err := Load(path)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Debug().Str("path", path).Int("domains", len(tables)).Msg("lookup cache loaded")
			return tables, nil
		}
	}

	tables, err := Build(ctx, src, logger)
	if err != nil {
		return nil, err
	}
	if err := Save(path, tables); err != nil {
		return nil, fmt.Errorf("write lookup cache %q: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("lookup cache written")
	return tables, nil
}
