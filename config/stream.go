package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/kbukum/rxbridge/errors"
	"github.com/kbukum/rxbridge/logger"
)

// DefaultBufferSize is the demand window used when none is configured.
const DefaultBufferSize = 16

// StreamConfig contains the configuration for one bridged stream.
// Projects extend it by embedding it in their own config structs.
type StreamConfig struct {
	// Name identifies the stream in logs and metric attributes.
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// BufferSize is the demand window requested from the publisher per
	// refill cycle. Zero means DefaultBufferSize.
	BufferSize int `yaml:"buffer_size" mapstructure:"buffer_size" validate:"gte=0"`
	// Logging configures the stream's structured logging.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the stream configuration.
func (c *StreamConfig) ApplyDefaults() {
	if c.BufferSize == 0 {
		c.BufferSize = DefaultBufferSize
	}
	c.Logging.ApplyDefaults()
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the stream configuration.
func (c *StreamConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return errors.InvalidInput(verrs[0].Field(), verrs[0].Tag()).WithCause(err)
		}
		return errors.Validation("stream config validation failed").WithCause(err)
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidInput("logging", err.Error()).WithCause(err)
	}
	return nil
}
