package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzLoadConfigYAML(f *testing.F) {
	// Seed with the starter config
	f.Add([]byte(DefaultYAML()))

	// Seed with a minimal override
	f.Add([]byte("consensus_threshold: 0.9\n"))

	// Seed with empty
	f.Add([]byte{})

	// Seed with garbage
	f.Add([]byte(`{{{not yaml at all`))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must not panic on any input
		var cfg Config
		yaml.Unmarshal(data, &cfg)
	})
}
