package experiments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one experiment: which engine variant to run, how hard it
// plans, and its hyperparameters.
type Config struct {
	Variant      string  `yaml:"variant"` // "naive" or "sarsa"
	Trials       int     `yaml:"trials"`
	StepsPerMove int     `yaml:"stepsPerMove"`
	Exploration  float64 `yaml:"exploration"`
	Alpha        float64 `yaml:"alpha"`
	Gamma        float64 `yaml:"gamma"`
	TraceDecay   float64 `yaml:"traceDecay"`
	Seed         uint64  `yaml:"seed"`
}

func (c Config) Validate() error {
	switch c.Variant {
	case "naive", "sarsa":
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.StepsPerMove <= 0 {
		return fmt.Errorf("stepsPerMove must be positive, got %d", c.StepsPerMove)
	}
	return nil
}

// LoadConfigs reads a YAML file holding a list of experiment configs.
func LoadConfigs(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var configs []Config
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	for i, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("config %d: %w", i, err)
		}
	}
	return configs, nil
}
