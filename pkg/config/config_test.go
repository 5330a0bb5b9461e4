package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	c := &Config{Environment: "test"}
	c.Server.Port = 8080
	return c
}

func TestValidateMinimal(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequiresEnvironment(t *testing.T) {
	c := validConfig()
	c.Environment = ""
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}

func streamConfig(backend string) *Config {
	c := validConfig()
	c.Stream.Enabled = true
	c.Stream.Backend = backend
	c.Stream.APIKey = "key"
	c.Stream.Symbols = []string{"AAPL"}
	return c
}

func TestValidateStreamKafkaNeedsBrokers(t *testing.T) {
	c := streamConfig("kafka")
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "kafka.brokers") {
		t.Fatalf("expected brokers error, got %v", err)
	}

	c.Kafka.Brokers = []string{"localhost:9092"}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStreamClickHouseNeedsHost(t *testing.T) {
	c := streamConfig("clickhouse")
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "clickhouse.host") {
		t.Fatalf("expected host error, got %v", err)
	}

	c.ClickHouse.Host = "localhost"
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStreamRejectsUnknownBackend(t *testing.T) {
	c := streamConfig("postgres")
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateSchedulerNeedsWatchlist(t *testing.T) {
	c := validConfig()
	c.Scheduler.Enabled = true
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}
