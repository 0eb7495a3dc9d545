package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-normalizer/internal/schemas"
)

// Schemas shipped under schemas/.
const (
	schemaTailoredContent = "tailored_content"
	schemaNormalizeResult = "normalize_result"
)

type validateOptions struct {
	schema   string
	jsonPath string
}

func newValidateCmd(_ *app) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON file against a schema",
		Long: "Validates --json against --schema. The schema may be a file path or the name of a " +
			"bundled schema: resume, tailored_content or normalize_result.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Schema file path or bundled schema name (required)")
	cmd.Flags().StringVarP(&opts.jsonPath, "json", "j", "", "Path to JSON file to validate (required)")
	for _, name := range []string{"schema", "json"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	schemaPath := resolveSchema(opts.schema)
	if schemaPath == "" {
		return fmt.Errorf("schema not found: %s", opts.schema)
	}

	if err := schemas.ValidateJSON(schemaPath, opts.jsonPath); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation failed: %s\n", validationErr.Summary())
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %s\n", opts.jsonPath)
	return nil
}

// resolveSchema returns path when it is a file, otherwise the bundled schema
// of that name, or "" when neither exists.
func resolveSchema(nameOrPath string) string {
	if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() {
		return nameOrPath
	}
	return schemas.ResolveSchemaPath("schemas/" + nameOrPath + ".schema.json")
}

// checkOutput validates a written output file against a bundled schema when
// the schema can be found. Load problems are logged, not returned.
func (a *app) checkOutput(schemaName, outPath string) error {
	schemaPath := resolveSchema(schemaName)
	if schemaPath == "" || outPath == "" {
		return nil
	}

	err := schemas.ValidateJSON(schemaPath, outPath)
	var validationErr *schemas.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErr):
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	default:
		a.logger.Warn().Err(err).Str("schema", schemaPath).Msg("could not validate output against schema")
		return nil
	}
}
