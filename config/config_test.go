package config

import (
	"testing"

	"github.com/kbukum/rxbridge/errors"
	"github.com/kbukum/rxbridge/logger"
)

// fakeFileSystem simulates the filesystem for loader tests.
type fakeFileSystem struct {
	files  map[string]bool
	loaded []string
}

func (f *fakeFileSystem) Exists(path string) bool { return f.files[path] }

func (f *fakeFileSystem) LoadEnv(path string) error {
	f.loaded = append(f.loaded, path)
	return nil
}

func TestLoadConfig_NoFiles(t *testing.T) {
	fs := &fakeFileSystem{files: map[string]bool{}}
	var cfg StreamConfig
	if err := LoadConfig("ingest", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("expected no error without files, got %v", err)
	}
}

func TestLoadConfig_LoadsEnvFile(t *testing.T) {
	fs := &fakeFileSystem{files: map[string]bool{".env.ingest": true}}
	var cfg StreamConfig
	if err := LoadConfig("ingest", &cfg, WithFileSystem(fs)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != ".env.ingest" {
		t.Errorf("expected .env.ingest to be loaded, got %v", fs.loaded)
	}
}

func TestLoadConfig_ExplicitEnvFile(t *testing.T) {
	fs := &fakeFileSystem{files: map[string]bool{"custom.env": true, ".env": true}}
	var cfg StreamConfig
	if err := LoadConfig("ingest", &cfg, WithFileSystem(fs), WithEnvFile("custom.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs.loaded) != 1 || fs.loaded[0] != "custom.env" {
		t.Errorf("expected explicit env file to win, got %v", fs.loaded)
	}
}

func TestStreamConfig_ApplyDefaults(t *testing.T) {
	cfg := StreamConfig{Name: "ingest"}
	cfg.ApplyDefaults()

	if cfg.BufferSize != DefaultBufferSize {
		t.Errorf("expected default buffer size %d, got %d", DefaultBufferSize, cfg.BufferSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults to be applied, got %q", cfg.Logging.Level)
	}
}

func TestStreamConfig_ApplyDefaults_KeepsExplicitBuffer(t *testing.T) {
	cfg := StreamConfig{Name: "ingest", BufferSize: 4}
	cfg.ApplyDefaults()
	if cfg.BufferSize != 4 {
		t.Errorf("expected explicit buffer size to be kept, got %d", cfg.BufferSize)
	}
}

func TestStreamConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StreamConfig
		wantErr bool
	}{
		{
			"valid",
			StreamConfig{Name: "ingest", BufferSize: 10, Logging: logging("info", "json")},
			false,
		},
		{
			"missing name",
			StreamConfig{BufferSize: 10, Logging: logging("info", "json")},
			true,
		},
		{
			"negative buffer",
			StreamConfig{Name: "ingest", BufferSize: -1, Logging: logging("info", "json")},
			true,
		},
		{
			"bad logging level",
			StreamConfig{Name: "ingest", BufferSize: 10, Logging: logging("loud", "json")},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && errors.CodeOf(err) != errors.ErrCodeInvalidInput {
				t.Errorf("expected INVALID_INPUT code, got %v", errors.CodeOf(err))
			}
		})
	}
}

func logging(level, format string) logger.Config {
	return logger.Config{Level: level, Format: format}
}
