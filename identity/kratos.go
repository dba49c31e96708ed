package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	kratos "github.com/ory/kratos-client-go"
)

// ErrIdentityNotFound reports that the auth subsystem holds no identity with
// the given ID. Callers may treat this as non-fatal: the relational row can
// outlive the identity.
var ErrIdentityNotFound = errors.New("identity not found")

// KratosClient handles identity administration against Ory Kratos.
type KratosClient struct {
	client *kratos.APIClient
}

// NewKratosClient creates a client pointed at the Kratos admin API.
func NewKratosClient(adminBaseURL string, timeout time.Duration) *KratosClient {
	configuration := kratos.NewConfiguration()
	configuration.Servers = []kratos.ServerConfiguration{
		{URL: adminBaseURL},
	}
	configuration.HTTPClient = &http.Client{
		Timeout: timeout,
	}

	return &KratosClient{
		client: kratos.NewAPIClient(configuration),
	}
}

// DeleteIdentity removes the identity from Kratos. A 404 from Kratos is
// returned as ErrIdentityNotFound; every other failure wraps the SDK error.
func (c *KratosClient) DeleteIdentity(ctx context.Context, identityID string) error {
	resp, err := c.client.IdentityAPI.DeleteIdentity(ctx, identityID).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return ErrIdentityNotFound
		}
		if resp != nil {
			return fmt.Errorf("kratos returned status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("failed to call kratos: %w", err)
	}
	return nil
}
