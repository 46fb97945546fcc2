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
	ProviderName = "logipro-api"
	ConsumerName = "dispatch-portal"

	StateJobsBaseline = "jobs baseline"
	StateJobExists    = "job 7d5a1c1e exists"
	StateJobMissing   = "no job with the requested id"
)

const (
	ExistingJobID = "7d5a1c1e-0b51-4f26-8c43-1a9be25d2f10"
	MissingJobID  = "00000000-0000-4000-8000-000000000404"
)

const (
	exampleServiceType = "RESIDENTIAL_MOVING"
	exampleCargo       = "three-bedroom household"
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

// PactFile returns the canonical pact file path for the dispatch portal consumer.
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

// ExampleStopPayload provides a stable stop for pact interactions.
func ExampleStopPayload(address, city string) map[string]any {
	return map[string]any{
		"address":       address,
		"city":          city,
		"contactPerson": "Ada Nowak",
		"contactPhone":  "+1-555-0101",
	}
}

// ExampleJobPayload provides stable test data for job interactions.
func ExampleJobPayload() map[string]any {
	return map[string]any{
		"serviceType":       exampleServiceType,
		"cargoDescription":  exampleCargo,
		"pickup":            ExampleStopPayload("12 Oak Street", "Springfield"),
		"delivery":          ExampleStopPayload("400 Pine Avenue", "Shelbyville"),
		"requestedPickupAt": "2026-09-15T08:00:00Z",
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
