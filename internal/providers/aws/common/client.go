// Package common loads AWS credentials and builds the narrow service clients
// used by the report sinks and the doctor command.
package common

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// ProfileConfig is a verified AWS profile and the clients the report sinks
// publish through.
type ProfileConfig struct {
	// ProfileName is the shared-config profile, or "default".
	ProfileName string

	// AccountID comes from sts:GetCallerIdentity.
	AccountID string

	// Region is the region the clients are scoped to.
	Region string

	Config aws.Config

	// Clients are scoped to Region.
	Clients *ClientSet
}

// AWSClientProvider resolves AWS credentials into ready-to-use clients.
type AWSClientProvider interface {
	// LoadProfile returns a ProfileConfig for the named profile. Pass an empty
	// profile to use the default credential chain and an empty region to use
	// the profile's configured region.
	LoadProfile(ctx context.Context, profile, region string) (*ProfileConfig, error)

	// GetActiveRegions lists the regions enabled for cfg's account. doctor
	// uses it as a reachability probe.
	GetActiveRegions(ctx context.Context, cfg *ProfileConfig) ([]string, error)
}

// String identifies the profile in logs.
func (p *ProfileConfig) String() string {
	return fmt.Sprintf("%s (account %s, %s)", p.ProfileName, p.AccountID, p.Region)
}
