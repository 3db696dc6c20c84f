package sheetsync

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// NewTracedHTTPClient returns an http client authorized with the service account credentials json,
// with every outgoing request traced.
func NewTracedHTTPClient(ctx context.Context, credentialsJSON []byte) (*http.Client, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	baseClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	return jwtConfig.Client(context.WithValue(ctx, oauth2.HTTPClient, baseClient)), nil
}
