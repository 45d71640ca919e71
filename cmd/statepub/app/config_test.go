package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
settings:
  logLevel: debug
publisher:
  period: 20ms
transport:
  type: mavlink
  mavlink:
    endpoint: udp-client
    address: 127.0.0.1:14550
source:
  type: mavlink
  systemID: 1
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Settings.LogLevel != slog.LevelDebug {
		t.Errorf("Expected debug level, got %s", config.Settings.LogLevel)
	}
	if time.Duration(config.Publisher.Period) != 20*time.Millisecond {
		t.Errorf("Expected period 20ms, got %s", config.Publisher.Period)
	}
	if config.Transport.MAVLink.Endpoint != EndpointUDPClient {
		t.Errorf("Expected udp-client endpoint, got %s", config.Transport.MAVLink.Endpoint)
	}
	if config.Source.Type != SourceMAVLink || config.Source.SystemID != 1 {
		t.Errorf("Unexpected source: %+v", config.Source)
	}

	// defaults survive partial files
	if config.Publisher.FrameID != "/map" || config.Publisher.ChildFrameID != "/base_footprint_drone" {
		t.Errorf("Expected default frames, got %s -> %s", config.Publisher.FrameID, config.Publisher.ChildFrameID)
	}
	if time.Duration(config.Agent.Timeout) != time.Second || config.Agent.Attempts != 10 || time.Duration(config.Agent.RetryDelay) != 100*time.Millisecond {
		t.Errorf("Unexpected agent defaults: %+v", config.Agent)
	}
	if config.Transport.Radio.Channel != 65 || config.Transport.Radio.Port != 9 {
		t.Errorf("Expected radio channel 65 port 9, got %d/%d", config.Transport.Radio.Channel, config.Transport.Radio.Port)
	}
}

func TestLoadConfig_Example(t *testing.T) {
	config, err := LoadConfig(filepath.Join("..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Failed to load example config: %v", err)
	}
	if config.Transport.Radio.Device != "/dev/ttyACM0" {
		t.Errorf("Expected radio device, got %q", config.Transport.Radio.Device)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad duration",
			content: "publisher:\n  period: fast\n",
			wantErr: "app.Duration",
		},
		{
			name:    "unknown field",
			content: "publisher:\n  rate: 100\n",
			wantErr: "rate",
		},
		{
			name:    "unknown transport",
			content: "transport:\n  type: zenoh\n",
			wantErr: "unknown type 'zenoh'",
		},
		{
			name:    "radio without device",
			content: "transport:\n  type: mavlink\n",
			wantErr: "device is required",
		},
		{
			name:    "radio channel out of range",
			content: "transport:\n  radio:\n    device: /dev/ttyACM0\n    channel: 200\n",
			wantErr: "channel must be within",
		},
		{
			name:    "mavlink source over lcm",
			content: "transport:\n  type: lcm\nsource:\n  type: mavlink\n",
			wantErr: "requires the mavlink transport",
		},
		{
			name:    "influx without url",
			content: "transport:\n  type: lcm\ninflux:\n  enabled: true\n",
			wantErr: "url is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDuration_String(t *testing.T) {
	d := Duration(1500 * time.Millisecond)
	if d.String() != "1.5s" {
		t.Errorf("Expected 1.5s, got %s", d.String())
	}

	p, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(p) != `"1.5s"` {
		t.Errorf(`Expected "1.5s", got %s`, p)
	}
}
