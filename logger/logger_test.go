package logger

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected default output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "debug", Format: "json"}, false},
		{"valid console", Config{Level: "warn", Format: "console"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	cfg := &Config{Level: "nonsense", Format: "json", Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields(FieldOperation, "pull", FieldDemand, 10)
	if m[FieldOperation] != "pull" {
		t.Errorf("expected operation field, got %v", m)
	}
	if m[FieldDemand] != 10 {
		t.Errorf("expected demand field, got %v", m)
	}
}

func TestFields_OddPairsIgnored(t *testing.T) {
	m := Fields(FieldOperation, "pull", "dangling")
	if len(m) != 1 {
		t.Errorf("expected 1 field, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("collect", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test").WithComponent("bridge")
	if l == nil {
		t.Fatal("expected logger")
	}
}

func TestRegistry_GetFallsBackToComponent(t *testing.T) {
	l := Get("unregistered-component")
	if l == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	custom := NewDefault("custom")
	Register("my-comp", custom)
	if Get("my-comp") != custom {
		t.Error("expected registered logger to be returned")
	}
}
