package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 3),
	}
}

// build merges the collected configs in order. mergo only fills fields that
// are still zero, so earlier sources take precedence over later ones.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withJSON(path string) *configBuilder {
	if path == "" {
		return b
	}

	jsonCfg, err := parseJSON(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		Adapter: Adapter{RequestTimeout: 15 * time.Second},
		Cache:   Cache{DefaultTTL: 5 * time.Minute},
		Queue:   Queue{MaxRetries: 3},
		Workers: Workers{WakeInterval: 5 * time.Minute},
	})
	return b
}

// GetConfig assembles the final configuration: environment variables first,
// then the optional JSON file named by jsonPath (or the SYNCKIT_CONFIG env
// var when jsonPath is empty), then built-in defaults.
func GetConfig(jsonPath string) (*StructuredConfig, error) {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, err
	}
	if jsonPath == "" {
		jsonPath = envCfg.JSONFilePath
	}

	return newConfigBuilder().
		withEnv().
		withJSON(jsonPath).
		withDefaults().
		build()
}
