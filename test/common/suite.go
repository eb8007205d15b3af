package common

import (
	"os"
	"testing"

	"planora/pkg/client"
)

// ServerURL returns the base URL of a running vendors service, skipping the
// test when TEST_SERVER_URL is not set so integration suites stay out of
// unit test runs.
func ServerURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_SERVER_URL")
	if url == "" {
		t.Skip("TEST_SERVER_URL not set; skipping integration test")
	}
	return url
}

func NewVendorClient(t *testing.T) *client.VendorClient {
	t.Helper()
	return client.NewVendorClient(ServerURL(t))
}
