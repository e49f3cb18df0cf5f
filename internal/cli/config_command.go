package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"tasklog/internal/config"
)

// ConfigCommand handles the config subcommands
type ConfigCommand struct {
	out          io.Writer
	errorHandler *ErrorHandler
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand(out io.Writer) *ConfigCommand {
	return &ConfigCommand{
		out:          out,
		errorHandler: NewErrorHandler(),
	}
}

// Show prints the merged configuration as YAML.
func (c *ConfigCommand) Show(cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return c.errorHandler.Handle("show config", err)
	}
	_, err = c.out.Write(data)
	return err
}

// Path prints the settings file location.
func (c *ConfigCommand) Path(loader *config.Loader) error {
	_, err := fmt.Fprintln(c.out, loader.Path())
	return err
}
