package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/render"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <name>...",
		Short: "Check names against the naming pattern",
		Long: "Check each name against the naming pattern. Names beginning\n" +
			"with '-' must follow \"--\".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			allValid, err := runValidate(cmd.OutOrStdout(), naming.DefaultValidator(), args, format, colorEnabled(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if !allValid {
				opts.logger.WithField("names", len(args)).Debug("At least one name is invalid")
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", `Output format: "table" or "json"`)
	cmd.SetFlagErrorFunc(dashNameHint)
	return cmd
}

// runValidate checks every name, renders the verdicts to w and reports
// whether all names are valid.
func runValidate(w io.Writer, validator *naming.Validator, names []string, format string, colored bool) (bool, error) {
	checks := make([]render.NameCheck, 0, len(names))
	allValid := true
	for _, n := range names {
		ok := validator.Validate(n)
		if !ok {
			allValid = false
		}
		checks = append(checks, render.NameCheck{Name: n, Valid: ok})
	}

	switch format {
	case "json":
		if err := render.WriteValidationJSON(w, validator.Pattern(), checks); err != nil {
			return false, fmt.Errorf("encode validation result: %w", err)
		}
	case "table", "":
		render.RenderValidation(w, checks, render.Options{Colored: colored})
	default:
		return false, fmt.Errorf("unsupported format %q: must be table or json", format)
	}
	return allValid, nil
}
