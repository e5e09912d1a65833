package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid transport settings
	// (for example, missing base URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidQueueConfigs indicates invalid queue policy settings
	// (for example, a non-positive retry budget).
	ErrInvalidQueueConfigs = errors.New("invalid queue configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero wake interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
