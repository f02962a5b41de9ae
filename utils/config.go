package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Config holds the scalar settings of a backpropagation step and of the loss
// helpers.
type Config struct {
	LearnRate float64
	Target    float64
	Epsilon   float64 // clamp cross-entropy probabilities; 0 disables
}

// DefaultConfig matches the worked backpropagation exercise.
func DefaultConfig() Config {
	return Config{
		LearnRate: 0.5,
		Target:    0.6,
	}
}

// ParseFloats parses a comma-separated list such as "0.5,0.1,-0.2".
func ParseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ValidateConfig validates step configuration
func ValidateConfig(config *Config) error {
	if !(config.LearnRate > 0) || math.IsInf(config.LearnRate, 0) {
		return fmt.Errorf("learn rate must be positive and finite, got %v", config.LearnRate)
	}

	if math.IsNaN(config.Target) || math.IsInf(config.Target, 0) {
		return fmt.Errorf("target must be finite, got %v", config.Target)
	}

	if config.Epsilon != 0 && !(config.Epsilon > 0 && config.Epsilon < 0.5) {
		return fmt.Errorf("epsilon must be in (0, 0.5), got %v", config.Epsilon)
	}

	return nil
}
