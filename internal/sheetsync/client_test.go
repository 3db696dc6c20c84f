package sheetsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracedHTTPClient(t *testing.T) {
	creds := []byte(`{
		"type": "service_account",
		"client_email": "sync@fitprogress.iam.gserviceaccount.com",
		"private_key_id": "abc",
		"private_key": "not-used-until-first-request",
		"token_uri": "https://oauth2.googleapis.com/token"
	}`)

	client, err := NewTracedHTTPClient(context.Background(), creds)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, client.Transport)
}

func TestNewTracedHTTPClient_InvalidCredentials(t *testing.T) {
	_, err := NewTracedHTTPClient(context.Background(), []byte("{not json"))
	assert.ErrorContains(t, err, "parse credentials")
}
