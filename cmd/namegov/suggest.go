package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/namegov/internal/naming"
	"github.com/pankaj-dahiya-devops/namegov/internal/render"
)

func newSuggestNameCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "suggest-name " + naming.SuggestUsage,
		Short: "Suggest a compliant name for a resource",
		Long: "Canonicalize <current-name> and compose\n" +
			"  {environment}-{name}-{type-code}-{version}\n" +
			"then validate it against the naming pattern. Omitted arguments\n" +
			"default to deploy, dev and v1.0.0.\n\n" +
			"A name beginning with '-' must follow \"--\":\n" +
			"  namegov suggest-name -- -legacy-app- deployment prod",
		RunE: func(cmd *cobra.Command, args []string) error {
			valid, err := runSuggestName(cmd.OutOrStdout(), naming.NewDefaultSuggester(), args, format, colorEnabled(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if !valid {
				opts.logger.Debug("Suggested name does not match the naming pattern")
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", `Output format: "table" or "json"`)
	cmd.SetFlagErrorFunc(dashNameHint)
	return cmd
}

// dashNameHint adds the "--" separator hint to flag parse errors, which is
// what a name starting with '-' produces.
func dashNameHint(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w\nnames beginning with '-' must follow \"--\", e.g. %s -- -my-app-", err, cmd.CommandPath())
}

// runSuggestName parses args, renders the suggestion to w and reports whether
// the suggested name matches the grammar.
func runSuggestName(w io.Writer, suggester *naming.Suggester, args []string, format string, colored bool) (bool, error) {
	in, err := naming.ParseSuggestArgs(args)
	if err != nil {
		return false, err
	}
	res := suggester.Suggest(in)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := struct {
			naming.ValidationResult
			Pattern string `json:"pattern"`
		}{res, suggester.Validator().Pattern()}
		if err := enc.Encode(payload); err != nil {
			return false, fmt.Errorf("encode suggestion: %w", err)
		}
	case "table", "":
		render.RenderSuggestion(w, res, suggester.Validator().Pattern(), render.Options{Colored: colored})
	default:
		return false, fmt.Errorf("unsupported format %q: must be table or json", format)
	}
	return res.MatchesGrammar, nil
}
