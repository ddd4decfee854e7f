package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
)

// ssmAPI is the minimal AWS SSM interface required by Client.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Getter is the interface that wraps GetParameter. Consumers (the bootstrap's
// journey-map load) should depend on this interface rather than the concrete
// *Client so they remain testable without real AWS calls; the pricing service
// depends on GetYAML through its own ParamGetter interface.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Client wraps an AWS SSM API for configuration retrieval. The site's
// business configuration (pricing rules, journey maps) lives in Parameter
// Store as YAML documents.
type Client struct {
	api ssmAPI
}

// New creates a Client with the given SSM API implementation.
func New(api ssmAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	return &Client{api: api}, nil
}

func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("paramstore: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("paramstore: name is required")
	}

	withDecryption := true
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &name,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", errors.New("paramstore: parameter missing value")
	}
	return *out.Parameter.Value, nil
}

// GetYAML fetches a parameter and decodes its value into out. Known fields in
// out keep their values when the document omits them, which is how partial
// configuration overlays compiled defaults.
func (c *Client) GetYAML(ctx context.Context, name string, out any) error {
	raw, err := c.GetParameter(ctx, name)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("paramstore: decode parameter %q: %w", name, err)
	}
	return nil
}
