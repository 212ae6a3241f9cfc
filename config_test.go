/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{port: 8080, timerScale: 1, readyDelay: 5 * time.Second}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"port too low", func(c *Config) { c.port = 0 }, false},
		{"port too high", func(c *Config) { c.port = 70000 }, false},
		{"cert without key", func(c *Config) { c.tlsCert = "cert.pem" }, false},
		{"cert and key", func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }, true},
		{"zero timer scale", func(c *Config) { c.timerScale = 0 }, false},
		{"negative ready delay", func(c *Config) { c.readyDelay = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			if err := cfg.validate(); (err == nil) != tt.ok {
				t.Errorf("validate() = %v, want ok = %v", err, tt.ok)
			}
		})
	}
}

func TestFlagsReadEnvironment(t *testing.T) {
	t.Setenv("LABOPOLY_PORT", "9090")
	t.Setenv("LABOPOLY_TIMER_SCALE", "0.5")

	cfg := &Config{}
	newCmd(cfg)

	if cfg.port != 9090 || cfg.timerScale != 0.5 {
		t.Errorf("port = %d, timer scale = %v", cfg.port, cfg.timerScale)
	}
	if cfg.readyDelay != 5*time.Second {
		t.Errorf("ready delay = %s, want default", cfg.readyDelay)
	}
}
