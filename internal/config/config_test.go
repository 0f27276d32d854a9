package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("expected default port 8082, got %s", cfg.Port)
	}
	if cfg.UpstreamBaseURL != "http://localhost:8080/api" {
		t.Errorf("unexpected default upstream base URL: %s", cfg.UpstreamBaseURL)
	}
	if cfg.RefreshInterval != 5*time.Second {
		t.Errorf("expected default refresh interval 5s, got %v", cfg.RefreshInterval)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("expected default cache backend memory, got %s", cfg.CacheBackend)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_BASE_URL", "https://finance.example.com/api")
	t.Setenv("REFRESH_INTERVAL", "30s")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.UpstreamBaseURL != "https://finance.example.com/api" {
		t.Errorf("unexpected upstream base URL: %s", cfg.UpstreamBaseURL)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("expected refresh interval 30s, got %v", cfg.RefreshInterval)
	}
	if cfg.CacheBackend != "redis" {
		t.Errorf("expected cache backend redis, got %s", cfg.CacheBackend)
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Errorf("expected redis addr redis:6379, got %s", cfg.RedisAddr)
	}
}

func TestValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Port:            "8082",
			UpstreamBaseURL: "http://localhost:8080/api",
			UpstreamTimeout: 10 * time.Second,
			SessionFile:     "./session.json",
			SQLiteDBPath:    "./payvue.db",
			AMQPExchange:    "payvue",
			AMQPQueue:       "snapshot_refreshed",
			RefreshInterval: 5 * time.Second,
			CacheBackend:    "memory",
			CacheTTL:        5 * time.Minute,
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "non numeric port",
			modify:  func(c *Config) { c.Port = "abc" },
			wantErr: "invalid port 'abc'",
		},
		{
			name:    "port out of range",
			modify:  func(c *Config) { c.Port = "70000" },
			wantErr: "must be between 1 and 65535",
		},
		{
			name:    "empty upstream URL",
			modify:  func(c *Config) { c.UpstreamBaseURL = "" },
			wantErr: "upstream base URL cannot be empty",
		},
		{
			name:    "bad upstream scheme",
			modify:  func(c *Config) { c.UpstreamBaseURL = "ftp://example.com" },
			wantErr: "must be 'http' or 'https'",
		},
		{
			name:    "bad AMQP scheme",
			modify:  func(c *Config) { c.AMQPURL = "http://localhost:5672" },
			wantErr: "must be 'amqp' or 'amqps'",
		},
		{
			name:    "refresh interval too short",
			modify:  func(c *Config) { c.RefreshInterval = 100 * time.Millisecond },
			wantErr: "must be at least 1 second",
		},
		{
			name:    "unknown cache backend",
			modify:  func(c *Config) { c.CacheBackend = "memcached" },
			wantErr: "invalid cache backend 'memcached'",
		},
		{
			name: "redis backend without address",
			modify: func(c *Config) {
				c.CacheBackend = "redis"
				c.RedisAddr = ""
			},
			wantErr: "Redis address cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCollectsMultipleErrors(t *testing.T) {
	cfg := &Config{
		Port:            "not-a-port",
		UpstreamBaseURL: "",
		SQLiteDBPath:    "./payvue.db",
		RefreshInterval: 0,
		CacheBackend:    "bogus",
		CacheTTL:        time.Minute,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, fragment := range []string{"invalid port", "upstream base URL", "refresh interval", "cache backend"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("expected combined error to mention %q, got: %v", fragment, err)
		}
	}
}
