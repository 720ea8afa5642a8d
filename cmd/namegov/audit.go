package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/namegov/internal/engine"
	"github.com/pankaj-dahiya-devops/namegov/internal/models"
	"github.com/pankaj-dahiya-devops/namegov/internal/output"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/manifests"
)

// auditFlags are shared by the audit subcommands.
type auditFlags struct {
	policy   string
	format   string
	output   string
	summary  bool
	envLabel string
}

func (f *auditFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.policy, "policy", "", "Naming policy file (default: ./namegov-policy.yaml if present)")
	cmd.Flags().StringVar(&f.format, "format", "table", `Output format: "table" or "json"`)
	cmd.Flags().StringVar(&f.output, "output", "", "Also write the full JSON report to this file path")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Print a compact summary instead of the findings table")
	cmd.Flags().StringVar(&f.envLabel, "env-label", "", "Label holding the expected environment (default: environment)")
}

func newAuditCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit resource names against the naming convention",
	}
	cmd.AddCommand(newAuditKubernetesCmd(opts), newAuditManifestsCmd(opts))
	return cmd
}

func newAuditKubernetesCmd(opts *globalOptions) *cobra.Command {
	var (
		f          auditFlags
		kubeCtx    string
		namespaces []string
	)

	cmd := &cobra.Command{
		Use:   "kubernetes",
		Short: "Audit the names of workloads in a live cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("context") {
				kubeCtx = cfg.Kubernetes.Context
			}
			if !cmd.Flags().Changed("namespace") {
				namespaces = cfg.Kubernetes.Namespaces
			}
			if !cmd.Flags().Changed("env-label") {
				f.envLabel = cfg.Kubernetes.EnvironmentLabel
			}

			collector := engine.NewKubernetesCollector(newKubeProvider(cfg.Kubernetes.Kubeconfig), engine.KubernetesAuditOptions{
				ContextName: kubeCtx,
				Namespaces:  namespaces,
			})
			return exitOnFail(runAudit(cmd.Context(), cmd.OutOrStdout(), engine.AuditTypeKubernetes, collector, f, opts.logger, colorEnabled(cmd.OutOrStdout())))
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&kubeCtx, "context", "", "Kubeconfig context to audit (default: current context)")
	cmd.Flags().StringSliceVar(&namespaces, "namespace", nil, "Namespace(s) to audit (default: all non-system)")
	return cmd
}

func newAuditManifestsCmd(opts *globalOptions) *cobra.Command {
	var f auditFlags

	cmd := &cobra.Command{
		Use:   "manifests <path>",
		Short: "Audit the names of resources in Kubernetes manifest files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collector := manifests.NewCollector(args[0], opts.logger)
			return exitOnFail(runAudit(cmd.Context(), cmd.OutOrStdout(), engine.AuditTypeManifests, collector, f, opts.logger, colorEnabled(cmd.OutOrStdout())))
		},
	}
	f.register(cmd)
	return cmd
}

// exitOnFail exits with status 1 when the policy enforcement threshold was
// reached, and otherwise passes err through.
func exitOnFail(fail bool, err error) error {
	if err != nil {
		return err
	}
	if fail {
		os.Exit(1)
	}
	return nil
}

// runAudit runs one naming audit, renders it to w and reports whether the
// policy's fail_on_severity threshold was reached.
func runAudit(ctx context.Context, w io.Writer, auditType engine.AuditType, collector engine.InventoryCollector, f auditFlags, logger *logrus.Logger, colored bool) (bool, error) {
	format, err := engine.ParseReportFormat(f.format)
	if err != nil {
		return false, err
	}

	policyCfg, err := loadPolicy(f.policy)
	if err != nil {
		return false, err
	}

	var eng engine.Engine = newNamingEngine(policyCfg, f.envLabel)
	rep, err := eng.RunAudit(ctx, auditType, collector)
	if err != nil {
		return false, fmt.Errorf("audit failed: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"audit":     auditType,
		"resources": rep.Summary.TotalResources,
		"findings":  rep.Summary.TotalFindings,
	}).Info("Audit complete")

	if f.output != "" {
		if err := writeReportToFile(f.output, rep); err != nil {
			return false, err
		}
	}

	switch {
	case f.summary:
		printSummary(w, rep)
	case format == engine.ReportFormatJSON:
		if err := printJSON(w, rep); err != nil {
			return false, err
		}
	default:
		printAuditHeader(w, rep)
		output.RenderTable(w, rep.Findings, output.TableOptions{
			Colored:           colored,
			IncludeSuggestion: true,
			IncludeRule:       true,
		})
	}

	fail := policy.ShouldFail(policy.DomainNaming, rep.Findings, policyCfg)
	if fail {
		threshold, _ := policy.FailThreshold(policy.DomainNaming, policyCfg)
		logger.WithField("fail_on_severity", threshold).Warn("Policy enforcement threshold reached")
	}
	return fail, nil
}

// printJSON writes the report as indented JSON to w.
func printJSON(w io.Writer, rep *models.AuditReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// writeReportToFile serialises rep as indented JSON and writes it to path,
// creating or overwriting the file. It does not affect stdout output.
func writeReportToFile(path string, rep *models.AuditReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file %q: %w", path, err)
	}
	return nil
}

// printAuditHeader writes the one-line audit header shown above the table.
func printAuditHeader(w io.Writer, rep *models.AuditReport) {
	s := rep.Summary
	fmt.Fprintf(w, "Source: %-12s  Namespaces: %d  Resources: %d  Compliant: %d  Findings: %d\n\n",
		rep.Source,
		len(rep.Namespaces),
		s.TotalResources,
		s.CompliantResources,
		s.TotalFindings,
	)
}

// printSummary renders a compact summary view to w: resource totals, the
// per-severity breakdown and the first five findings in report order.
func printSummary(w io.Writer, rep *models.AuditReport) {
	s := rep.Summary

	fmt.Fprintf(w, "Source:      %s\n", rep.Source)
	if ctxName, ok := rep.Metadata["context"].(string); ok && ctxName != "" {
		fmt.Fprintf(w, "Context:     %s\n", ctxName)
	}
	fmt.Fprintf(w, "Namespaces:  %d\n", len(rep.Namespaces))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Resources:   %d\n", s.TotalResources)
	fmt.Fprintf(w, "Compliant:   %d\n", s.CompliantResources)
	fmt.Fprintf(w, "Violating:   %d\n", s.ViolatingResources)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Severity Breakdown")
	fmt.Fprintf(w, "  %-10s  %d\n", "CRITICAL", s.CriticalFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "HIGH", s.HighFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "MEDIUM", s.MediumFindings)
	fmt.Fprintf(w, "  %-10s  %d\n", "LOW", s.LowFindings)

	top := rep.Findings
	if len(top) > 5 {
		top = top[:5]
	}
	if len(top) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top Findings")
	output.RenderTable(w, top, output.TableOptions{IncludeSuggestion: true})
}
