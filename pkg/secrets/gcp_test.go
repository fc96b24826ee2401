package secrets

import (
	"context"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessor struct {
	values map[string]string
	names  []string
	closed bool
}

func (f *fakeAccessor) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.names = append(f.names, req.GetName())
	v, ok := f.values[req.GetName()]
	if !ok {
		return nil, errors.New("not found")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(v)},
	}, nil
}

func (f *fakeAccessor) Close() error {
	f.closed = true
	return nil
}

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGetSecretBuildsVersionName(t *testing.T) {
	fake := &fakeAccessor{values: map[string]string{
		"projects/p1/secrets/stake-username/versions/latest": "ada\n",
	}}
	sm := NewWithClient(fake, "p1", quiet())

	v, err := sm.GetSecret(context.Background(), "stake-username")
	require.NoError(t, err)
	assert.Equal(t, "ada\n", v)

	assert.Equal(t, "ada", sm.GetSecretWithDefault(context.Background(), "stake-username", "x"))
	assert.Equal(t, "fallback", sm.GetSecretWithDefault(context.Background(), "stake-password", "fallback"))
	assert.Equal(t, "skip", sm.GetSecretWithDefault(context.Background(), "", "skip"))
	assert.Len(t, fake.names, 3)

	require.NoError(t, sm.Close())
	assert.True(t, fake.closed)
}

func TestCredentialsFileOption(t *testing.T) {
	assert.Nil(t, CredentialsFileOption(""))
	assert.Len(t, CredentialsFileOption("/etc/stake/sa.json"), 1)
}

func TestDefaultSecretNames(t *testing.T) {
	names := DefaultSecretNames()
	assert.Equal(t, "stake-username", names.Username)
	assert.Equal(t, "stake-token", names.Token)
}
