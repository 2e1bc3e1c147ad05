// Package config loads the yaml configuration for the demo binaries.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	rotatingbuffer "github.com/eaon/rotating-buffer"
)

type Conf struct {
	Streams []*Stream `yaml:"streams"`
}

// Stream describes one delimited value stream and how its buffer is sized.
// Capacity is the primary write region; Overflow is the reserved retention
// headroom (the rotate strategy folds it into its single region).
type Stream struct {
	Name      string `yaml:"name"`
	Server    string `yaml:"server"`
	Port      int    `yaml:"port"`
	Strategy  string `yaml:"strategy"`
	Capacity  int    `yaml:"capacity"`
	Overflow  int    `yaml:"overflow"`
	Delimiter string `yaml:"delimiter"`
}

const (
	defaultDelimiter = ","
	defaultCapacity  = 4 * 1024
	defaultOverflow  = 512
)

func LoadConf(path string) (*Conf, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Conf
	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return nil, err
	}
	for _, s := range conf.Streams {
		if err := s.fillDefaults(); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

func (s *Stream) fillDefaults() error {
	if s.Name == "" {
		return fmt.Errorf("stream has no name")
	}
	if s.Server == "" {
		s.Server = "0.0.0.0"
	}
	if s.Strategy == "" {
		s.Strategy = string(rotatingbuffer.StrategyRotate)
	}
	switch rotatingbuffer.Strategy(s.Strategy) {
	case rotatingbuffer.StrategyRotate, rotatingbuffer.StrategyOverflow:
	default:
		return fmt.Errorf("stream %s: unknown strategy %q", s.Name, s.Strategy)
	}
	if s.Capacity == 0 {
		s.Capacity = defaultCapacity
	}
	if s.Capacity < 0 {
		return fmt.Errorf("stream %s: negative capacity %d", s.Name, s.Capacity)
	}
	if s.Overflow == 0 {
		s.Overflow = defaultOverflow
	}
	if s.Overflow < 0 {
		return fmt.Errorf("stream %s: negative overflow %d", s.Name, s.Overflow)
	}
	if s.Delimiter == "" {
		s.Delimiter = defaultDelimiter
	}
	if len(s.Delimiter) != 1 {
		return fmt.Errorf("stream %s: delimiter must be a single byte, got %q", s.Name, s.Delimiter)
	}
	return nil
}

// NewBuffer builds the buffer this stream is configured for.
func (s *Stream) NewBuffer() (rotatingbuffer.Buffer[byte], error) {
	return rotatingbuffer.New[byte](rotatingbuffer.Strategy(s.Strategy), s.Capacity, s.Overflow)
}

// Delim is the configured delimiter as a byte.
func (s *Stream) Delim() byte {
	return s.Delimiter[0]
}
