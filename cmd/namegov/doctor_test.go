package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	k8sclient "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/pankaj-dahiya-devops/namegov/internal/policy"
	"github.com/pankaj-dahiya-devops/namegov/internal/providers/aws/common"
	kube "github.com/pankaj-dahiya-devops/namegov/internal/providers/kubernetes"
)

// ── AWS mock ──────────────────────────────────────────────────────────────────

type mockAWSProvider struct {
	profileResult *common.ProfileConfig
	profileErr    error
	regionsResult []string
	regionsErr    error
	lastProfile   string // records the profile name passed to LoadProfile
	lastRegion    string
}

func (m *mockAWSProvider) LoadProfile(_ context.Context, profile, region string) (*common.ProfileConfig, error) {
	m.lastProfile = profile
	m.lastRegion = region
	return m.profileResult, m.profileErr
}

func (m *mockAWSProvider) GetActiveRegions(_ context.Context, _ *common.ProfileConfig) ([]string, error) {
	return m.regionsResult, m.regionsErr
}

// ── Kubernetes mocks ──────────────────────────────────────────────────────────

// testKubeProvider implements kube.KubeClientProvider backed by a pre-built
// fake clientset. It records the context name passed to ClientsetForContext.
type testKubeProvider struct {
	clientset     k8sclient.Interface
	info          kube.ClusterInfo
	calledWithCtx string
}

func (p *testKubeProvider) ClientsetForContext(contextName string) (k8sclient.Interface, kube.ClusterInfo, error) {
	p.calledWithCtx = contextName
	return p.clientset, p.info, nil
}

type failKubeProvider struct{}

func (p *failKubeProvider) ClientsetForContext(_ string) (k8sclient.Interface, kube.ClusterInfo, error) {
	return nil, kube.ClusterInfo{}, errors.New("kubeconfig not found")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func goodMockAWS() *mockAWSProvider {
	return &mockAWSProvider{
		profileResult: &common.ProfileConfig{
			AccountID: "123456789012",
			Region:    "us-east-1",
		},
		regionsResult: []string{"us-east-1", "eu-west-1"},
	}
}

func goodMockKube() *testKubeProvider {
	return &testKubeProvider{
		clientset: fake.NewSimpleClientset(),
		info:      kube.ClusterInfo{ContextName: "prod-eks"},
	}
}

func defaultDoctorOptions(format string) doctorOptions {
	return doctorOptions{format: format, policyPath: policy.DefaultPolicyFile}
}

// awsSinkDoctorOptions is defaultDoctorOptions with an AWS sink configured.
func awsSinkDoctorOptions(format string) doctorOptions {
	opts := defaultDoctorOptions(format)
	opts.awsRequired = true
	return opts
}

// runDoctorInTmp changes to a fresh temp directory (no policy file), runs
// runDoctor and returns the captured output, the DoctorResult and any
// rendering error.
func runDoctorInTmp(t *testing.T, awsP common.AWSClientProvider, kubeP kube.KubeClientProvider, opts doctorOptions) (string, DoctorResult, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	result, runErr := runDoctor(context.Background(), awsP, kubeP, &buf, opts)
	return buf.String(), result, runErr
}

// ── table format tests ────────────────────────────────────────────────────────

func TestDoctorAllOK(t *testing.T) {
	out, result, err := runDoctorInTmp(t, goodMockAWS(), goodMockKube(), defaultDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !result.OverallHealthy {
		t.Error("expected OverallHealthy=true")
	}
	for _, want := range []string{
		"Credentials: OK",
		"STS Identity: OK (Account: 123456789012)",
		"Regions API: OK",
		"Kubeconfig: OK",
		"Current Context: OK (prod-eks)",
		"API Reachable: OK",
		"Config file: Not set (optional)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q;\ngot:\n%s", want, out)
		}
	}
}

func TestDoctorAWSCredentialsFail(t *testing.T) {
	awsP := &mockAWSProvider{profileErr: errors.New("no credentials configured")}
	out, result, err := runDoctorInTmp(t, awsP, goodMockKube(), awsSinkDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false")
	}
	if !strings.Contains(out, "Credentials: FAIL (no credentials configured)") {
		t.Errorf("expected 'Credentials: FAIL'; got:\n%s", out)
	}
}

func TestDoctorAWSRegionsFail(t *testing.T) {
	awsP := &mockAWSProvider{
		profileResult: &common.ProfileConfig{AccountID: "111111111111", Region: "us-east-1"},
		regionsErr:    errors.New("EC2 API error"),
	}
	out, result, err := runDoctorInTmp(t, awsP, goodMockKube(), awsSinkDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false")
	}
	if !strings.Contains(out, "Regions API: FAIL") {
		t.Errorf("expected 'Regions API: FAIL'; got:\n%s", out)
	}
}

func TestDoctorAWSOptionalWithoutSink(t *testing.T) {
	cases := []struct {
		name string
		aws  *mockAWSProvider
		want string
	}{
		{
			name: "no credentials",
			aws:  &mockAWSProvider{profileErr: errors.New("no credentials configured")},
			want: "Credentials: FAIL (no credentials configured)",
		},
		{
			name: "regions api error",
			aws: &mockAWSProvider{
				profileResult: &common.ProfileConfig{AccountID: "111111111111", Region: "us-east-1"},
				regionsErr:    errors.New("EC2 API error"),
			},
			want: "Regions API: FAIL",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, result, err := runDoctorInTmp(t, tc.aws, goodMockKube(), defaultDoctorOptions("table"))
			if err != nil {
				t.Fatalf("unexpected render error: %v", err)
			}
			if !result.OverallHealthy {
				t.Error("expected OverallHealthy=true when no AWS sink is configured")
			}
			if result.AWS.Required {
				t.Error("expected AWS.Required=false")
			}
			if !strings.Contains(out, "AWS (optional, no S3 or CloudWatch sink configured):") {
				t.Errorf("expected optional AWS header; got:\n%s", out)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("output missing %q;\ngot:\n%s", tc.want, out)
			}
		})
	}
}

func TestDoctorKubernetesFail(t *testing.T) {
	out, result, err := runDoctorInTmp(t, goodMockAWS(), &failKubeProvider{}, defaultDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false")
	}
	if !strings.Contains(out, "Kubeconfig: FAIL") {
		t.Errorf("expected 'Kubeconfig: FAIL'; got:\n%s", out)
	}
}

func TestDoctorKubeContextForwarded(t *testing.T) {
	kubeP := goodMockKube()
	opts := defaultDoctorOptions("table")
	opts.kubeCtx = "staging"
	if _, _, err := runDoctorInTmp(t, goodMockAWS(), kubeP, opts); err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if kubeP.calledWithCtx != "staging" {
		t.Errorf("ClientsetForContext called with %q; want staging", kubeP.calledWithCtx)
	}
}

func TestDoctorPolicyMissing(t *testing.T) {
	out, result, err := runDoctorInTmp(t, goodMockAWS(), goodMockKube(), defaultDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !result.OverallHealthy {
		t.Error("expected OverallHealthy=true (missing policy is not a failure)")
	}
	if !strings.Contains(out, "namegov-policy.yaml present: Not found (optional)") {
		t.Errorf("expected 'Not found (optional)'; got:\n%s", out)
	}
}

func TestDoctorPolicyValid(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	if err := os.WriteFile(filepath.Join(tmp, policy.DefaultPolicyFile), []byte("version: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	result, err := runDoctor(context.Background(), goodMockAWS(), goodMockKube(), &buf, defaultDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !result.OverallHealthy {
		t.Error("expected OverallHealthy=true")
	}
	out := buf.String()
	if !strings.Contains(out, "namegov-policy.yaml present: YES") {
		t.Errorf("expected policy present; got:\n%s", out)
	}
	if !strings.Contains(out, "Policy valid: OK") {
		t.Errorf("expected 'Policy valid: OK'; got:\n%s", out)
	}
}

func TestDoctorPolicyInvalid(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	content := "version: 1\nrules:\n  NO_SUCH_RULE:\n    enabled: false\n"
	if err := os.WriteFile(filepath.Join(tmp, policy.DefaultPolicyFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	result, err := runDoctor(context.Background(), goodMockAWS(), goodMockKube(), &buf, defaultDoctorOptions("table"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false for invalid policy")
	}
	out := buf.String()
	if !strings.Contains(out, "Policy valid: FAIL") || !strings.Contains(out, "NO_SUCH_RULE") {
		t.Errorf("expected 'Policy valid: FAIL' naming the unknown rule; got:\n%s", out)
	}
}

func TestDoctorConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "namegov.yaml")
	if err := os.WriteFile(path, []byte("source:\n  kind: carrier-pigeon\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := defaultDoctorOptions("table")
	opts.configPath = path
	out, result, err := runDoctorInTmp(t, goodMockAWS(), goodMockKube(), opts)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false for invalid config")
	}
	if !strings.Contains(out, "Config file: FAIL") {
		t.Errorf("expected 'Config file: FAIL'; got:\n%s", out)
	}
}

// ── JSON format tests ─────────────────────────────────────────────────────────

func TestDoctorJSON_AllOK(t *testing.T) {
	out, result, err := runDoctorInTmp(t, goodMockAWS(), goodMockKube(), defaultDoctorOptions("json"))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !result.OverallHealthy {
		t.Error("expected OverallHealthy=true")
	}

	var parsed DoctorResult
	if jsonErr := json.Unmarshal([]byte(out), &parsed); jsonErr != nil {
		t.Fatalf("invalid JSON output: %v\nraw:\n%s", jsonErr, out)
	}
	if parsed.AWS.AccountID != "123456789012" {
		t.Errorf("expected AccountID=123456789012; got %q", parsed.AWS.AccountID)
	}
	if parsed.Kubernetes.Context != "prod-eks" {
		t.Errorf("expected Context=prod-eks; got %q", parsed.Kubernetes.Context)
	}
	if !parsed.Config.Valid {
		t.Error("expected Config.Valid=true without --config")
	}
	if !parsed.OverallHealthy {
		t.Error("expected OverallHealthy=true")
	}
}

// TestDoctorJSON_Failure verifies that an unhealthy environment is reported
// as a result, not an error, and that the output is only the JSON document.
func TestDoctorJSON_Failure(t *testing.T) {
	awsP := &mockAWSProvider{profileErr: errors.New("no credentials configured")}
	out, result, err := runDoctorInTmp(t, awsP, goodMockKube(), awsSinkDoctorOptions("json"))
	if err != nil {
		t.Fatalf("runDoctor must not return error for unhealthy result; got: %v", err)
	}
	if result.OverallHealthy {
		t.Error("expected OverallHealthy=false")
	}

	var parsed DoctorResult
	if jsonErr := json.Unmarshal([]byte(out), &parsed); jsonErr != nil {
		t.Fatalf("invalid JSON output: %v\nraw:\n%s", jsonErr, out)
	}
	if parsed.AWS.Error == "" {
		t.Error("expected AWS.Error to be non-empty")
	}

	want, _ := json.Marshal(result)
	if strings.TrimSpace(out) != string(want) {
		t.Errorf("JSON output has unexpected trailing content;\ngot:  %q\nwant: %q",
			strings.TrimSpace(out), string(want))
	}
}

// TestDoctorCmd_CobraCleanOutput verifies that Cobra never appends its own
// error text or usage block to the doctor output.
func TestDoctorCmd_CobraCleanOutput(t *testing.T) {
	cmd := newDoctorCmd(&globalOptions{})
	if !cmd.SilenceErrors {
		t.Error("doctor command must have SilenceErrors=true")
	}
	if !cmd.SilenceUsage {
		t.Error("doctor command must have SilenceUsage=true")
	}
}

// ── profile flag tests ────────────────────────────────────────────────────────

func TestDoctorProfile_Forwarded(t *testing.T) {
	awsP := &mockAWSProvider{
		profileResult: &common.ProfileConfig{AccountID: "999999999999", Region: "eu-west-1"},
		regionsResult: []string{"eu-west-1"},
	}
	opts := defaultDoctorOptions("table")
	opts.profile = "prod"
	opts.region = "eu-west-1"

	out, result, err := runDoctorInTmp(t, awsP, goodMockKube(), opts)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if result.AWS.Profile != "prod" {
		t.Errorf("expected AWS.Profile=prod; got %q", result.AWS.Profile)
	}
	if awsP.lastProfile != "prod" || awsP.lastRegion != "eu-west-1" {
		t.Errorf("LoadProfile called with (%q, %q); want (prod, eu-west-1)", awsP.lastProfile, awsP.lastRegion)
	}
	if !strings.Contains(out, "AWS (profile: prod):") {
		t.Errorf("expected profile header in output; got:\n%s", out)
	}
}
