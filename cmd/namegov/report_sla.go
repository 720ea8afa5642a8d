package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pankaj-dahiya-devops/namegov/internal/config"
	"github.com/pankaj-dahiya-devops/namegov/internal/engine"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/aws/common"
	kube "github.com/pankaj-dahiya-devops/namegov/internal/providers/kubernetes"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/prometheus"
	"github.com/pankaj-dahiya-devops/namegov/internal/render"
	"github.com/pankaj-dahiya-devops/namegov/internal/report"
	"github.com/pankaj-dahiya-devops/namegov/internal/sla"
)

// slaFlags are the report-sla flags that override configuration values.
type slaFlags struct {
	source              string
	snapshot            string
	output              string
	policy              string
	prometheusURL       string
	prometheusTimeout   time.Duration
	kubeContext         string
	namespaces          []string
	envLabel            string
	awsProfile          string
	awsRegion           string
	s3Bucket            string
	s3Key               string
	cloudwatch          bool
	cloudwatchNamespace string
	textfile            string
}

// slaDeps are the collaborators of runReportSLA that tests replace.
type slaDeps struct {
	awsProvider  common.AWSClientProvider
	kubeProvider kube.KubeClientProvider
	logger       *logrus.Logger
	colored      bool
	now          func() time.Time
}

func newReportSLACmd(opts *globalOptions) *cobra.Command {
	var f slaFlags

	cmd := &cobra.Command{
		Use:   "report-sla",
		Short: "Compute naming compliance SLA metrics and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			applySLAFlags(cmd, cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}

			res, err := runReportSLA(cmd.Context(), cmd.OutOrStdout(), cfg, f.policy, slaDeps{
				awsProvider:  common.NewDefaultAWSClientProvider(),
				kubeProvider: newKubeProvider(cfg.Kubernetes.Kubeconfig),
				logger:       opts.logger,
				colored:      colorEnabled(cmd.OutOrStdout()),
			})
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				os.Exit(res.ExitCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.source, "source", "", "Metrics source: static, file, prometheus or kubernetes (default: static)")
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "Metrics snapshot file (JSON or YAML); implies --source file unless a source is set")
	cmd.Flags().StringVar(&f.output, "output", "", "Report file path (default: "+report.DefaultFilePath+")")
	cmd.Flags().StringVar(&f.policy, "policy", "", "Naming policy file for --source kubernetes (default: ./namegov-policy.yaml if present)")
	cmd.Flags().StringVar(&f.prometheusURL, "prometheus-url", "", "Prometheus base URL for --source prometheus")
	cmd.Flags().DurationVar(&f.prometheusTimeout, "prometheus-timeout", 0, "Per-query timeout for --source prometheus (default 10s)")
	cmd.Flags().StringVar(&f.kubeContext, "context", "", "Kubeconfig context for --source kubernetes (default: current context)")
	cmd.Flags().StringSliceVar(&f.namespaces, "namespace", nil, "Namespace(s) to include for --source kubernetes (default: all non-system)")
	cmd.Flags().StringVar(&f.envLabel, "env-label", "", "Namespace label holding the environment (default: environment)")
	cmd.Flags().StringVar(&f.awsProfile, "aws-profile", "", "AWS profile for the S3 and CloudWatch sinks")
	cmd.Flags().StringVar(&f.awsRegion, "aws-region", "", "AWS region for the S3 and CloudWatch sinks")
	cmd.Flags().StringVar(&f.s3Bucket, "s3-bucket", "", "Also upload the report to this S3 bucket")
	cmd.Flags().StringVar(&f.s3Key, "s3-key", "", "S3 object key (default: "+report.DefaultS3Key+")")
	cmd.Flags().BoolVar(&f.cloudwatch, "cloudwatch", false, "Also publish the SLA metrics to CloudWatch")
	cmd.Flags().StringVar(&f.cloudwatchNamespace, "cloudwatch-namespace", "", "CloudWatch metric namespace (default: "+report.DefaultCloudWatchNamespace+")")
	cmd.Flags().StringVar(&f.textfile, "textfile", "", "Also write the SLA metrics to this Prometheus textfile")

	return cmd
}

// applySLAFlags copies every explicitly set flag over the configuration.
func applySLAFlags(cmd *cobra.Command, cfg *config.Config, f slaFlags) {
	changed := cmd.Flags().Changed

	if changed("source") {
		cfg.Source.Kind = f.source
	}
	if changed("snapshot") {
		cfg.Source.SnapshotFile = f.snapshot
		if cfg.Source.Kind == "" {
			cfg.Source.Kind = config.SourceFile
		}
	}
	if changed("output") {
		cfg.Report.Output = f.output
	}
	if changed("prometheus-url") {
		cfg.Prometheus.Address = f.prometheusURL
	}
	if changed("prometheus-timeout") {
		cfg.Prometheus.Timeout = f.prometheusTimeout
	}
	if changed("context") {
		cfg.Kubernetes.Context = f.kubeContext
	}
	if changed("namespace") {
		cfg.Kubernetes.Namespaces = f.namespaces
	}
	if changed("env-label") {
		cfg.Kubernetes.EnvironmentLabel = f.envLabel
	}
	if changed("aws-profile") {
		cfg.AWS.Profile = f.awsProfile
	}
	if changed("aws-region") {
		cfg.AWS.Region = f.awsRegion
	}
	if changed("s3-bucket") {
		cfg.AWS.S3.Bucket = f.s3Bucket
	}
	if changed("s3-key") {
		cfg.AWS.S3.Key = f.s3Key
	}
	if changed("cloudwatch") {
		cfg.AWS.CloudWatch.Enabled = f.cloudwatch
	}
	if changed("cloudwatch-namespace") {
		cfg.AWS.CloudWatch.Namespace = f.cloudwatchNamespace
	}
	if changed("textfile") {
		cfg.Textfile.Path = f.textfile
	}
}

// runReportSLA reads one snapshot from the configured source, evaluates the
// SLA metrics and emits the report to w and every configured sink.
func runReportSLA(ctx context.Context, w io.Writer, cfg *config.Config, policyPath string, deps slaDeps) (report.Result, error) {
	srcCfg := &providers.SourceConfig{
		Kind:         cfg.Source.Kind,
		SnapshotFile: cfg.Source.SnapshotFile,
		Prometheus: prometheus.Config{
			Address: cfg.Prometheus.Address,
			Timeout: cfg.Prometheus.Timeout,
			Queries: cfg.Prometheus.Queries,
		},
		Kubernetes: engine.KubernetesAuditOptions{
			ContextName: cfg.Kubernetes.Context,
			Namespaces:  cfg.Kubernetes.Namespaces,
		},
		KubeProvider: deps.kubeProvider,
	}
	if cfg.Source.Kind == config.SourceKubernetes {
		policyCfg, err := loadPolicy(policyPath)
		if err != nil {
			return report.Result{}, err
		}
		srcCfg.Engine = newNamingEngine(policyCfg, cfg.Kubernetes.EnvironmentLabel)
	}

	src, err := providers.CreateMetricsSource(srcCfg, deps.logger)
	if err != nil {
		return report.Result{}, fmt.Errorf("create metrics source: %w", err)
	}

	snapshot, err := src.Snapshot(ctx)
	if err != nil {
		return report.Result{}, fmt.Errorf("read snapshot from %s source: %w", src.Name(), err)
	}
	deps.logger.WithFields(logrus.Fields{
		"source":          src.Name(),
		"total_resources": snapshot.TotalResources,
		"violations":      snapshot.Violations,
	}).Info("Snapshot collected")

	metrics := sla.NewDefaultEvaluator().Evaluate(sla.Compute(snapshot))

	sinks, err := buildSinks(ctx, cfg, deps)
	if err != nil {
		return report.Result{}, err
	}

	emitOpts := []report.Option{
		report.WithRenderOptions(render.Options{Colored: deps.colored}),
		report.WithLogger(deps.logger),
	}
	if deps.now != nil {
		emitOpts = append(emitOpts, report.WithClock(deps.now))
	}
	return report.NewEmitter(w, sinks, emitOpts...).Emit(ctx, metrics, snapshot)
}

// buildSinks returns the file sink followed by every optional sink the
// configuration enables. AWS credentials are loaded only when an AWS sink is
// enabled.
func buildSinks(ctx context.Context, cfg *config.Config, deps slaDeps) ([]report.Sink, error) {
	sinks := []report.Sink{report.NewFileSink(cfg.Report.Output)}

	if cfg.AWS.S3.Bucket != "" || cfg.AWS.CloudWatch.Enabled {
		profile, err := deps.awsProvider.LoadProfile(ctx, cfg.AWS.Profile, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		deps.logger.WithField("profile", profile.String()).Debug("Loaded AWS profile for report sinks")

		if cfg.AWS.S3.Bucket != "" {
			sinks = append(sinks, &report.S3Sink{
				Client: profile.Clients.S3,
				Bucket: cfg.AWS.S3.Bucket,
				Key:    cfg.AWS.S3.Key,
			})
		}
		if cfg.AWS.CloudWatch.Enabled {
			sinks = append(sinks, &report.CloudWatchSink{
				Client:    profile.Clients.CloudWatch,
				Namespace: cfg.AWS.CloudWatch.Namespace,
			})
		}
	}

	if cfg.Textfile.Path != "" {
		sinks = append(sinks, &report.TextfileSink{Path: cfg.Textfile.Path})
	}
	return sinks, nil
}
