package secrets

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// SecretAccessor is the part of the Secret Manager client the adapter uses.
type SecretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

type GCPSecretManager struct {
	client    SecretAccessor
	projectID string
	logger    *logrus.Logger
}

// NewGCPSecretManager connects with application default credentials unless
// opts say otherwise, e.g. option.WithCredentialsFile.
func NewGCPSecretManager(ctx context.Context, projectID string, logger *logrus.Logger, opts ...option.ClientOption) (*GCPSecretManager, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	return NewWithClient(clientAccessor{client}, projectID, logger), nil
}

type clientAccessor struct {
	*secretmanager.Client
}

func (c clientAccessor) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	return c.Client.AccessSecretVersion(ctx, req)
}

func NewWithClient(client SecretAccessor, projectID string, logger *logrus.Logger) *GCPSecretManager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GCPSecretManager{
		client:    client,
		projectID: projectID,
		logger:    logger,
	}
}

// CredentialsFileOption returns the client options for an optional service
// account key file.
func CredentialsFileOption(path string) []option.ClientOption {
	if path == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(path)}
}

func (g *GCPSecretManager) GetSecret(ctx context.Context, secretName string) (string, error) {
	name := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", g.projectID, secretName)

	result, err := g.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", secretName, err)
	}

	return string(result.GetPayload().GetData()), nil
}

func (g *GCPSecretManager) GetSecretWithDefault(ctx context.Context, secretName, defaultValue string) string {
	if secretName == "" {
		return defaultValue
	}
	value, err := g.GetSecret(ctx, secretName)
	if err != nil {
		g.logger.WithError(err).WithField("secret", secretName).Debug("Failed to get secret, using default")
		return defaultValue
	}
	return strings.TrimSpace(value)
}

func (g *GCPSecretManager) Close() error {
	return g.client.Close()
}

// SecretNames are the Secret Manager ids holding the Stake credentials.
type SecretNames struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	OTP      string `mapstructure:"otp"`
	Token    string `mapstructure:"token"`
}

func DefaultSecretNames() SecretNames {
	return SecretNames{
		Username: "stake-username",
		Password: "stake-password",
		OTP:      "stake-otp",
		Token:    "stake-token",
	}
}
