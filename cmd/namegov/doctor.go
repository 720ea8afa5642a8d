package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/pankaj-dahiya-devops/namegov/internal/config"
	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/aws/common"
	kube "github.com/pankaj-dahiya-devops/namegov/internal/providers/kubernetes"
	namingpack "github.com/pankaj-dahiya-devops/namegov/internal/rulepacks/naming"
)

// DoctorResult is the structured output of namegov doctor. It can be
// serialised to JSON via --format=json or rendered as a human-readable table
// (default).
type DoctorResult struct {
	AWS struct {
		Profile     string `json:"profile,omitempty"`
		Required    bool   `json:"required"`
		Credentials bool   `json:"credentials_ok"`
		AccountID   string `json:"account_id,omitempty"`
		RegionsOK   bool   `json:"regions_ok"`
		Error       string `json:"error,omitempty"`
	} `json:"aws"`

	Kubernetes struct {
		KubeconfigOK bool   `json:"kubeconfig_ok"`
		Context      string `json:"context,omitempty"`
		APIReachable bool   `json:"api_reachable"`
		Error        string `json:"error,omitempty"`
	} `json:"kubernetes"`

	Config struct {
		Path  string `json:"path,omitempty"`
		Valid bool   `json:"valid"`
		Error string `json:"error,omitempty"`
	} `json:"config"`

	Policy struct {
		Path    string   `json:"path"`
		Present bool     `json:"present"`
		Valid   bool     `json:"valid"`
		Errors  []string `json:"errors,omitempty"`
	} `json:"policy"`

	OverallHealthy bool `json:"overall_healthy"`
}

// doctorOptions carries the doctor flags.
type doctorOptions struct {
	format     string
	profile    string
	region     string
	kubeCtx    string
	configPath string
	policyPath string

	// awsRequired makes AWS failures unhealthy. Set when an S3 or
	// CloudWatch sink is configured or an AWS flag is given.
	awsRequired bool
}

func newDoctorCmd(opts *globalOptions) *cobra.Command {
	var d doctorOptions

	cmd := &cobra.Command{
		Use:           "doctor",
		Short:         "Run environment diagnostics",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			d.configPath = opts.configPath
			// An unreadable config is reported in the Config section below.
			var kubeconfig string
			if cfg, err := opts.loadConfig(); err == nil {
				kubeconfig = cfg.Kubernetes.Kubeconfig
				if !cmd.Flags().Changed("context") {
					d.kubeCtx = cfg.Kubernetes.Context
				}
				if !cmd.Flags().Changed("profile") {
					d.profile = cfg.AWS.Profile
				}
				if !cmd.Flags().Changed("region") {
					d.region = cfg.AWS.Region
				}
				d.awsRequired = cfg.AWS.S3.Bucket != "" || cfg.AWS.CloudWatch.Enabled
			}
			if cmd.Flags().Changed("profile") || cmd.Flags().Changed("region") {
				d.awsRequired = true
			}
			result, err := runDoctor(
				cmd.Context(),
				common.NewDefaultAWSClientProvider(),
				newKubeProvider(kubeconfig),
				cmd.OutOrStdout(),
				d,
			)
			if err != nil {
				return err
			}
			if !result.OverallHealthy {
				// Exit directly so no error text follows the rendered result.
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&d.format, "format", "table", `Output format: "table" or "json"`)
	cmd.Flags().StringVar(&d.profile, "profile", "", "AWS profile to use (default: credential chain)")
	cmd.Flags().StringVar(&d.region, "region", "", "AWS region to use (default: profile region)")
	cmd.Flags().StringVar(&d.kubeCtx, "context", "", "Kubeconfig context to probe (default: current context)")
	cmd.Flags().StringVar(&d.policyPath, "policy", policy.DefaultPolicyFile, "Naming policy file to validate")
	return cmd
}

// runDoctor collects all diagnostic results, renders them to w in the
// requested format, and returns the result.
// The returned error covers only rendering failures. Callers inspect
// result.OverallHealthy to decide the exit status.
func runDoctor(ctx context.Context, awsProvider common.AWSClientProvider, kubeProvider kube.KubeClientProvider, w io.Writer, opts doctorOptions) (DoctorResult, error) {
	result := collectDoctorResult(ctx, awsProvider, kubeProvider, opts)

	switch opts.format {
	case "json":
		if err := json.NewEncoder(w).Encode(result); err != nil {
			return result, fmt.Errorf("encode doctor result: %w", err)
		}
	default:
		renderDoctorTable(result, w)
	}

	return result, nil
}

// collectDoctorResult runs all environment checks and populates a DoctorResult.
func collectDoctorResult(ctx context.Context, awsProvider common.AWSClientProvider, kubeProvider kube.KubeClientProvider, opts doctorOptions) DoctorResult {
	var result DoctorResult

	// AWS: credentials → STS account ID → region discovery.
	result.AWS.Profile = opts.profile
	result.AWS.Required = opts.awsRequired
	profileCfg, err := awsProvider.LoadProfile(ctx, opts.profile, opts.region)
	if err != nil {
		result.AWS.Error = err.Error()
	} else {
		result.AWS.Credentials = true
		result.AWS.AccountID = profileCfg.AccountID
		if _, err := awsProvider.GetActiveRegions(ctx, profileCfg); err != nil {
			result.AWS.Error = err.Error()
		} else {
			result.AWS.RegionsOK = true
		}
	}

	// Kubernetes: kubeconfig load → context → API reachability probe.
	clientset, info, err := kubeProvider.ClientsetForContext(opts.kubeCtx)
	if err != nil {
		result.Kubernetes.Error = err.Error()
	} else {
		result.Kubernetes.KubeconfigOK = true
		result.Kubernetes.Context = info.ContextName
		if _, err := clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{Limit: 1}); err != nil {
			result.Kubernetes.Error = err.Error()
		} else {
			result.Kubernetes.APIReachable = true
		}
	}

	// Config: only checked when --config names a file.
	result.Config.Path = opts.configPath
	result.Config.Valid = true
	if opts.configPath != "" {
		if _, err := config.NewFileLoader(opts.configPath).Load(); err != nil {
			result.Config.Valid = false
			result.Config.Error = err.Error()
		}
	}

	// Policy: stat → load → validate (file is optional).
	result.Policy.Path = opts.policyPath
	_, statErr := os.Stat(opts.policyPath)
	if statErr == nil {
		result.Policy.Present = true
		cfg, loadErr := policy.LoadPolicy(opts.policyPath)
		if loadErr != nil {
			result.Policy.Errors = []string{loadErr.Error()}
		} else {
			errs := policy.Validate(cfg, namingpack.RuleIDs())
			if len(errs) == 0 {
				result.Policy.Valid = true
			} else {
				for _, e := range errs {
					result.Policy.Errors = append(result.Policy.Errors, e.Error())
				}
			}
		}
	} else if !os.IsNotExist(statErr) {
		result.Policy.Present = true
		result.Policy.Errors = []string{statErr.Error()}
	}

	awsOK := result.AWS.Credentials && result.AWS.RegionsOK
	result.OverallHealthy = (awsOK || !result.AWS.Required) &&
		result.Kubernetes.KubeconfigOK &&
		result.Kubernetes.APIReachable &&
		result.Config.Valid &&
		(!result.Policy.Present || result.Policy.Valid)

	return result
}

// renderDoctorTable writes the human-readable diagnostic output from result to w.
func renderDoctorTable(result DoctorResult, w io.Writer) {
	fmt.Fprintln(w, "Environment Diagnostics")

	switch {
	case result.AWS.Profile != "":
		fmt.Fprintf(w, "\nAWS (profile: %s):\n", result.AWS.Profile)
	case !result.AWS.Required:
		fmt.Fprintln(w, "\nAWS (optional, no S3 or CloudWatch sink configured):")
	default:
		fmt.Fprintln(w, "\nAWS:")
	}
	if !result.AWS.Credentials {
		doctorPrint(w, "Credentials", "FAIL", result.AWS.Error)
		doctorPrint(w, "STS Identity", "FAIL", "skipped")
		doctorPrint(w, "Regions API", "FAIL", "skipped")
	} else {
		doctorPrint(w, "Credentials", "OK", "")
		doctorPrint(w, "STS Identity", "OK", "Account: "+result.AWS.AccountID)
		if result.AWS.RegionsOK {
			doctorPrint(w, "Regions API", "OK", "")
		} else {
			doctorPrint(w, "Regions API", "FAIL", result.AWS.Error)
		}
	}

	fmt.Fprintln(w, "\nKubernetes:")
	if !result.Kubernetes.KubeconfigOK {
		doctorPrint(w, "Kubeconfig", "FAIL", result.Kubernetes.Error)
		doctorPrint(w, "Current Context", "FAIL", "skipped")
		doctorPrint(w, "API Reachable", "FAIL", "skipped")
	} else {
		doctorPrint(w, "Kubeconfig", "OK", "")
		doctorPrint(w, "Current Context", "OK", result.Kubernetes.Context)
		if result.Kubernetes.APIReachable {
			doctorPrint(w, "API Reachable", "OK", "")
		} else {
			doctorPrint(w, "API Reachable", "FAIL", result.Kubernetes.Error)
		}
	}

	fmt.Fprintln(w, "\nConfig:")
	switch {
	case result.Config.Path == "":
		doctorPrint(w, "Config file", "Not set (optional)", "")
	case result.Config.Valid:
		doctorPrint(w, "Config file", "OK", result.Config.Path)
	default:
		doctorPrint(w, "Config file", "FAIL", result.Config.Error)
	}

	fmt.Fprintln(w, "\nPolicy:")
	label := result.Policy.Path + " present"
	if !result.Policy.Present {
		doctorPrint(w, label, "Not found (optional)", "")
	} else {
		doctorPrint(w, label, "YES", "")
		if result.Policy.Valid {
			doctorPrint(w, "Policy valid", "OK", "")
		} else {
			for _, e := range result.Policy.Errors {
				doctorPrint(w, "Policy valid", "FAIL", e)
			}
		}
	}
}

// doctorPrint writes a single diagnostic check line to w.
// When detail is non-empty it is appended in parentheses.
func doctorPrint(w io.Writer, label, status, detail string) {
	if detail != "" {
		fmt.Fprintf(w, "  %s: %s (%s)\n", label, status, detail)
	} else {
		fmt.Fprintf(w, "  %s: %s\n", label, status)
	}
}
