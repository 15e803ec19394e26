package config

import (
	"log/slog"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid defaults",
			config:  Config{DBPath: "./data/tally.db", LogLevel: "info"},
			wantErr: false,
		},
		{
			name:    "empty db path",
			config:  Config{DBPath: "", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  Config{DBPath: "./data/tally.db", LogLevel: "loud"},
			wantErr: true,
		},
		{
			name:    "level names are case-insensitive",
			config:  Config{DBPath: "./data/tally.db", LogLevel: "DEBUG"},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range cases {
		c := Config{LogLevel: name}
		got, err := c.SlogLevel()
		if err != nil || got != want {
			t.Fatalf("%s: got %v (err=%v), want %v", name, got, err, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.DBPath == "" {
		t.Fatal("default db path must not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
