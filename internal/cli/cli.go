// Package cli provides the command-line interface for openapi-matchers.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-matchers/internal/config"
	"github.com/GabrielNunesIT/openapi-matchers/pkg/apispec"
	"github.com/spf13/cobra"
)

// ErrContractViolation is returned when at least one response or value does
// not satisfy the API spec.
var ErrContractViolation = errors.New("contract violation")

// CLI holds the command-line interface configuration.
type CLI struct {
	log     logger.ILogger
	rootCmd *cobra.Command
	cfg     config.Config

	configFile string
	specFile   string
	strict     bool
	format     string
	outputFile string
	title      string
}

// New creates a new CLI instance.
func New(log logger.ILogger) *CLI {
	cli := &CLI{
		log: log,
	}

	cli.rootCmd = &cobra.Command{
		Use:   "openapi-matchers",
		Short: "Check HTTP responses against an OpenAPI specification",
		Long: "A CLI tool that validates captured HTTP exchanges and JSON/YAML values against " +
			"an OpenAPI 2.0 or 3.x specification and renders a contract report.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.loadConfig,
	}

	cli.rootCmd.AddCommand(cli.validateCommand(), cli.schemaCommand())
	cli.setupFlags()

	return cli
}

func (c *CLI) setupFlags() {
	flags := c.rootCmd.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "Path to the configuration file (default "+config.DefaultFile+" when present)")
	flags.StringVarP(&c.specFile, "spec", "s", "", "Path to the OpenAPI specification file")
	flags.BoolVar(&c.strict, "strict", false, "Reject specifications that are not valid OpenAPI")
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// Run executes the CLI with the given arguments.
func (c *CLI) Run(args []string) error {
	c.rootCmd.SetArgs(args)
	return c.rootCmd.Execute()
}

// SetOutput redirects command output, which defaults to standard output.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
}

func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("spec") {
		cfg.Spec = c.specFile
	}
	if flags.Changed("strict") {
		cfg.Strict = c.strict
	}
	if flags.Changed("format") {
		cfg.Format = c.format
	}
	if flags.Changed("output") {
		cfg.Output = c.outputFile
	}

	if cfg.Spec == "" {
		return errors.New("no OpenAPI specification given: use --spec or set spec in the config file")
	}

	c.cfg = *cfg

	return nil
}

func (c *CLI) loadSpec() (*apispec.Spec, error) {
	c.log.Infof("Loading OpenAPI specification from: %s", c.cfg.Spec)

	var opts []apispec.Option
	if c.cfg.Strict {
		opts = append(opts, apispec.WithValidation())
	}

	spec, err := apispec.Load(c.cfg.Spec, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI specification: %w", err)
	}

	c.log.Infof("Loaded API: %s (v%s)", spec.Title(), spec.Version())

	return spec, nil
}

// openOutput returns the report destination and its closer.
func (c *CLI) openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	if c.cfg.Output == "" || c.cfg.Output == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	outputFile, err := os.Create(c.cfg.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return outputFile, outputFile.Close, nil
}
