//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "harvest-api"
	ConsumerName = "harvest-storefront"

	StateCatalogBaseline = "default produce catalog"
	StateOrderExists     = "order abc123 exists"
	StateOrderMissing    = "no order with id missing-order"
)

const (
	ExistingOrderID = "abc123"
	MissingOrderID  = "missing-order"
	ApplesID        = int64(1)
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest is the bulk order the storefront form submits.
func ExampleOrderRequest() map[string]any {
	return map[string]any{
		"productId":    ApplesID,
		"quantity":     25,
		"customerName": "John Doe",
		"contact":      "9876543210",
		"email":        "john@example.com",
		"address":      "123 Main St, City, State, 12345",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
