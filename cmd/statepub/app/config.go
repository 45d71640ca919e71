package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roman-kulish/drone-state-publisher/internal/influx"
	"github.com/roman-kulish/drone-state-publisher/internal/middleware"
	"github.com/roman-kulish/drone-state-publisher/internal/publisher"
	"github.com/roman-kulish/drone-state-publisher/internal/radio"
)

const (
	TransportMAVLink TransportType = "mavlink"
	TransportLCM     TransportType = "lcm"

	EndpointRadio     EndpointType = "radio"
	EndpointUDPClient EndpointType = "udp-client"
	EndpointUDPServer EndpointType = "udp-server"
	EndpointTCPClient EndpointType = "tcp-client"
	EndpointSerial    EndpointType = "serial"

	SourceSimulator SourceType = "sim"
	SourceMAVLink   SourceType = "mavlink"
)

type TransportType string

type EndpointType string

type SourceType string

// Duration is a time.Duration read from strings such as "10ms" or "1s"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	duration, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("app.Duration: failed to parse: %s", err)
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config represents the main application configuration
type Config struct {
	Settings  Settings        `yaml:"settings" json:"settings"`
	Publisher PublisherConfig `yaml:"publisher" json:"publisher"`
	Agent     AgentConfig     `yaml:"agent" json:"agent"`
	Transport TransportConfig `yaml:"transport" json:"transport"`
	Source    SourceConfig    `yaml:"source" json:"source"`
	Storage   StorageConfig   `yaml:"storage" json:"storage"`
	Influx    InfluxConfig    `yaml:"influx" json:"-"`
}

// Settings represents global application settings
type Settings struct {
	LogLevel slog.Level `yaml:"logLevel" json:"logLevel"`
	LogFile  LogFile    `yaml:"logFile" json:"-"`
}

// LogFile is the optional rotated log file
type LogFile struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// PublisherConfig represents the publish loop settings
type PublisherConfig struct {
	Period       Duration `yaml:"period" json:"period"`
	FrameID      string   `yaml:"frameID" json:"frameID"`
	ChildFrameID string   `yaml:"childFrameID" json:"childFrameID"`
	RecordEvery  int      `yaml:"recordEvery" json:"recordEvery"`
}

// AgentConfig represents the agent connectivity poll
type AgentConfig struct {
	Timeout    Duration `yaml:"timeout" json:"timeout"`
	Attempts   int      `yaml:"attempts" json:"attempts"`
	RetryDelay Duration `yaml:"retryDelay" json:"retryDelay"`
}

// TransportConfig represents the middleware transport
type TransportConfig struct {
	Type    TransportType `yaml:"type" json:"type"`
	Name    string        `yaml:"name" json:"name"`
	MAVLink MAVLinkConfig `yaml:"mavlink" json:"mavlink"`
	Radio   radio.Config  `yaml:"radio" json:"radio"`
	LCM     LCMConfig     `yaml:"lcm" json:"lcm"`
}

// MAVLinkConfig represents the MAVLink node
type MAVLinkConfig struct {
	Endpoint        EndpointType `yaml:"endpoint" json:"endpoint"`
	Address         string       `yaml:"address" json:"address"`
	SerialDevice    string       `yaml:"serialDevice" json:"serialDevice"`
	BaudRate        int          `yaml:"baudRate" json:"baudRate"`
	SystemID        uint8        `yaml:"systemID" json:"systemID"`
	ComponentID     uint8        `yaml:"componentID" json:"componentID"`
	HeartbeatPeriod Duration     `yaml:"heartbeatPeriod" json:"heartbeatPeriod"`
}

// LCMConfig represents the LCM node
type LCMConfig struct {
	Interface string `yaml:"interface" json:"interface"`
}

// SourceConfig represents where the state estimate comes from
type SourceConfig struct {
	Type SourceType `yaml:"type" json:"type"`

	// SystemID filters the MAVLink messages by the autopilot system, 0 accepts all
	SystemID uint8 `yaml:"systemID" json:"systemID"`

	Sim SimConfig `yaml:"sim" json:"sim"`
}

// SimConfig represents the simulated estimator
type SimConfig struct {
	Period       Duration `yaml:"period" json:"period"`
	Radius       float64  `yaml:"radius" json:"radius"`
	Altitude     float64  `yaml:"altitude" json:"altitude"`
	AngularSpeed float64  `yaml:"angularSpeed" json:"angularSpeed"`
}

// StorageConfig represents storage settings
type StorageConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	DataDirectory string `yaml:"dataDirectory" json:"dataDirectory"`
	MaxBatchSize  int    `yaml:"maxBatchSize" json:"maxBatchSize"`
}

// InfluxConfig represents the InfluxDB recorder
type InfluxConfig struct {
	Enabled       bool `yaml:"enabled"`
	influx.Config `yaml:",inline"`
}

// DefaultConfig returns the configuration used for settings missing in the file
func DefaultConfig() *Config {
	wait := middleware.DefaultWaitOptions()

	return &Config{
		Settings: Settings{
			LogLevel: slog.LevelInfo,
			LogFile: LogFile{
				MaxSizeMB:  100,
				MaxBackups: 5,
				MaxAgeDays: 28,
			},
		},
		Publisher: PublisherConfig{
			Period:       Duration(publisher.DefaultPeriod),
			FrameID:      publisher.DefaultFrameID,
			ChildFrameID: publisher.DefaultChildFrameID,
			RecordEvery:  publisher.DefaultRecordEvery,
		},
		Agent: AgentConfig{
			Timeout:    Duration(wait.Timeout),
			Attempts:   wait.Attempts,
			RetryDelay: Duration(wait.RetryDelay),
		},
		Transport: TransportConfig{
			Type: TransportMAVLink,
			Name: "drone_state_publisher",
			MAVLink: MAVLinkConfig{
				Endpoint:        EndpointRadio,
				BaudRate:        57600,
				HeartbeatPeriod: Duration(time.Second),
			},
			Radio: radio.Config{
				BaudRate: radio.DefaultBaudRate,
				Channel:  radio.DefaultChannel,
				Port:     radio.DefaultPort,
			},
		},
		Source: SourceConfig{
			Type: SourceSimulator,
			Sim: SimConfig{
				Period:       Duration(10 * time.Millisecond),
				Radius:       1,
				Altitude:     0.5,
				AngularSpeed: 0.5,
			},
		},
		Storage: StorageConfig{
			DataDirectory: "data",
			MaxBatchSize:  100,
		},
	}
}

// LoadConfig reads the YAML configuration file on top of DefaultConfig
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	config := DefaultConfig()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err = decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	var errs []error

	if c.Publisher.Period <= 0 {
		errs = append(errs, fmt.Errorf("publisher: period must be positive, %s given", c.Publisher.Period))
	}
	if c.Publisher.RecordEvery <= 0 {
		errs = append(errs, fmt.Errorf("publisher: recordEvery must be positive, %d given", c.Publisher.RecordEvery))
	}
	if c.Publisher.FrameID == "" || c.Publisher.ChildFrameID == "" {
		errs = append(errs, errors.New("publisher: frame ids are required"))
	}

	if c.Agent.Timeout <= 0 || c.Agent.Attempts <= 0 || c.Agent.RetryDelay < 0 {
		errs = append(errs, errors.New("agent: timeout and attempts must be positive"))
	}

	switch c.Transport.Type {
	case TransportMAVLink:
		if err := c.Transport.MAVLink.validate(&c.Transport.Radio); err != nil {
			errs = append(errs, err)
		}
	case TransportLCM:
		if c.Source.Type == SourceMAVLink {
			errs = append(errs, errors.New("source: mavlink source requires the mavlink transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("transport: unknown type '%s'", c.Transport.Type))
	}

	switch c.Source.Type {
	case SourceSimulator:
		if c.Source.Sim.Period <= 0 {
			errs = append(errs, errors.New("source: sim period must be positive"))
		}
	case SourceMAVLink:
	default:
		errs = append(errs, fmt.Errorf("source: unknown type '%s'", c.Source.Type))
	}

	if c.Storage.Enabled && c.Storage.MaxBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("storage: maxBatchSize must be positive, %d given", c.Storage.MaxBatchSize))
	}

	if c.Influx.Enabled {
		if err := c.Influx.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("influx: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *MAVLinkConfig) validate(radioConfig *radio.Config) error {
	switch c.Endpoint {
	case EndpointRadio:
		return radioConfig.Validate()
	case EndpointUDPClient, EndpointUDPServer, EndpointTCPClient:
		if c.Address == "" {
			return fmt.Errorf("mavlink: address is required for %s endpoint", c.Endpoint)
		}
	case EndpointSerial:
		if c.SerialDevice == "" {
			return errors.New("mavlink: serialDevice is required for serial endpoint")
		}
	default:
		return fmt.Errorf("mavlink: unknown endpoint '%s'", c.Endpoint)
	}
	return nil
}
