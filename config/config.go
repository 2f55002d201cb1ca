package config

import (
	"fmt"
	"net"
	"os"

	"github.com/adiu19/schedsim/scheduler"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGRPCAddr  = ":9010"
	DefaultHTTPAddr  = ":8080"
	DefaultRateLimit = 20.0
	DefaultRateBurst = 40
)

// Config holds everything needed to run a simulation or serve one.
type Config struct {
	// Policy is a policy name or menu number; empty means the CLI asks.
	Policy  string    `yaml:"policy"`
	Quantum int       `yaml:"quantum"`
	Jobs    []JobSpec `yaml:"jobs"`
	Server  Server    `yaml:"server"`
}

// JobSpec is one job as written in the config file or sent over the wire.
type JobSpec struct {
	ID       string `yaml:"id" json:"id"`
	Arrival  int    `yaml:"arrival" json:"arrival"`
	Burst    int    `yaml:"burst" json:"burst"`
	Priority int    `yaml:"priority" json:"priority"`
}

// Server configures the gRPC and HTTP listeners.
type Server struct {
	GRPCAddr  string  `yaml:"grpc_addr"`
	HTTPAddr  string  `yaml:"http_addr"`
	RateLimit float64 `yaml:"rate_limit"` // simulate requests per second
	RateBurst int     `yaml:"rate_burst"`
}

// Default returns the built-in job set with server defaults and no policy.
func Default() *Config {
	cfg := &Config{Jobs: DefaultJobs()}
	cfg.applyDefaults()
	return cfg
}

// DefaultJobs is the sample workload used when a config lists no jobs.
func DefaultJobs() []JobSpec {
	return []JobSpec{
		{ID: "1", Arrival: 0, Burst: 5, Priority: 3},
		{ID: "2", Arrival: 2, Burst: 3, Priority: 1},
		{ID: "3", Arrival: 3, Burst: 8, Priority: 4},
		{ID: "4", Arrival: 5, Burst: 6, Priority: 2},
		{ID: "5", Arrival: 6, Burst: 4, Priority: 5},
	}
}

// Load reads a YAML config file from the given path and returns the parsed Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML config document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Jobs) == 0 {
		c.Jobs = DefaultJobs()
	}
	if c.Server.GRPCAddr == "" {
		c.Server.GRPCAddr = DefaultGRPCAddr
	}
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = DefaultHTTPAddr
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = DefaultRateBurst
	}
}

// validate checks that all config values are valid.
func (c *Config) validate() error {
	if c.Policy != "" {
		p, err := scheduler.ParsePolicy(c.Policy)
		if err != nil {
			return fmt.Errorf("invalid policy: %w", err)
		}
		if p == scheduler.RoundRobin && c.Quantum <= 0 {
			return fmt.Errorf("invalid quantum %d: round robin needs a positive quantum: %w",
				c.Quantum, scheduler.ErrInvalidParameter)
		}
	}
	if c.Quantum < 0 {
		return fmt.Errorf("invalid quantum %d: must not be negative", c.Quantum)
	}

	if err := scheduler.Validate(c.SchedulerJobs()); err != nil {
		return fmt.Errorf("invalid jobs: %w", err)
	}

	for _, addr := range []string{c.Server.GRPCAddr, c.Server.HTTPAddr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("invalid listen address %q: %w", addr, err)
		}
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("invalid rate limit %v/%d: must not be negative", c.Server.RateLimit, c.Server.RateBurst)
	}
	return nil
}

// SchedulerJobs converts the configured jobs to scheduler records.
func (c *Config) SchedulerJobs() []scheduler.Job {
	return ToJobs(c.Jobs)
}

// ToJobs converts job specs to scheduler records.
func ToJobs(specs []JobSpec) []scheduler.Job {
	jobs := make([]scheduler.Job, len(specs))
	for i, s := range specs {
		jobs[i] = scheduler.Job{ID: s.ID, Arrival: s.Arrival, Burst: s.Burst, Priority: s.Priority}
	}
	return jobs
}
