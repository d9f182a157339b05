package cli

import (
	"fmt"
	"os"

	"github.com/GabrielNunesIT/openapi-matchers/pkg/apispec"
	"github.com/oasdiff/yaml"
	"github.com/spf13/cobra"
)

func (c *CLI) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema SCHEMA_NAME VALUE_FILE",
		Short: "Validate a JSON or YAML value against a named schema",
		Args:  cobra.ExactArgs(2),
		RunE:  c.runSchema,
	}
}

func (c *CLI) runSchema(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read value file: %w", err)
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to parse value file: %w", err)
	}

	spec, err := c.loadSpec()
	if err != nil {
		return err
	}

	v := spec.ValidateAgainstSchema(value, name)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), apispec.FormatVerdict(v, apispec.ValueContext(value)))

	if !v.OK() {
		return fmt.Errorf("%w: %s does not satisfy %q (%s)", ErrContractViolation, path, name, v.Kind)
	}

	return nil
}
