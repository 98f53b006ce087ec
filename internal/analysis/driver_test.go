package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

type recordingWriter struct {
	mu     sync.Mutex
	status string
	result Result
	calls  int
}

func (w *recordingWriter) UpdateAnalysisStatus(ctx context.Context, outfitID, status string, result Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
	w.result = result
	w.calls++
	return nil
}

type stubProvider struct {
	response string
	err      error
	panics   bool
}

func (p stubProvider) AnalyzeImage(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	if p.panics {
		panic("provider blew up")
	}
	return p.response, p.err
}

func writeTempImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outfit.jpg")
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatalf("write temp image: %v", err)
	}
	return path
}

func TestDriverRunCompletes(t *testing.T) {
	writer := &recordingWriter{}
	driver := &Driver{
		Repo:     writer,
		Resolver: NewResolver(),
		Provider: stubProvider{response: "```json\n{\"description\": \"weekend fit\", \"colors\": [\"blue\", \"teal\"]}\n```"},
	}

	driver.Run(context.Background(), writeTempImage(t), "outfit-1")

	if writer.calls != 1 {
		t.Fatalf("expected exactly one status write, got %d", writer.calls)
	}
	if writer.status != StatusCompleted {
		t.Fatalf("status = %q, want %q", writer.status, StatusCompleted)
	}
	if writer.result == nil {
		t.Fatal("completed run must carry a result")
	}
	want := []string{"#3B82F6", "#14B8A6"}
	if got, _ := writer.result["colors"].([]string); !reflect.DeepEqual(got, want) {
		t.Fatalf("colors = %v, want %v", writer.result["colors"], want)
	}
}

func TestDriverRunCompletesViaStore(t *testing.T) {
	writer := &recordingWriter{}
	resolver := NewResolver()
	resolver.Store = stubOpener{objects: map[string][]byte{
		"users/u1/fit.png": []byte("fake image bytes"),
	}}
	driver := &Driver{
		Repo:     writer,
		Resolver: resolver,
		Provider: stubProvider{response: `{"description": "store fit"}`},
	}

	driver.Run(context.Background(), "users/u1/fit.png", "outfit-7")

	if writer.status != StatusCompleted {
		t.Fatalf("status = %q, want %q", writer.status, StatusCompleted)
	}
	if writer.result["description"] != "store fit" {
		t.Fatalf("result = %v", writer.result)
	}
}

func TestDriverRunFailsOnMissingStoredObject(t *testing.T) {
	writer := &recordingWriter{}
	resolver := NewResolver()
	resolver.Store = stubOpener{}
	driver := &Driver{
		Repo:     writer,
		Resolver: resolver,
		Provider: stubProvider{response: `{"description": "unused"}`},
	}

	driver.Run(context.Background(), "users/u1/gone.jpg", "outfit-8")

	if writer.status != StatusFailed || writer.result != nil {
		t.Fatalf("want failed with nil result, got %q %v", writer.status, writer.result)
	}
}

func TestDriverRunFailsOnMissingFile(t *testing.T) {
	writer := &recordingWriter{}
	driver := &Driver{
		Repo:     writer,
		Resolver: NewResolver(),
		Provider: stubProvider{response: `{"description": "unused"}`},
	}

	driver.Run(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"), "outfit-2")

	if writer.status != StatusFailed {
		t.Fatalf("status = %q, want %q", writer.status, StatusFailed)
	}
	if writer.result != nil {
		t.Fatalf("failed run must not carry a result, got %v", writer.result)
	}
}

func TestDriverRunFailsOnProviderError(t *testing.T) {
	writer := &recordingWriter{}
	driver := &Driver{
		Repo:     writer,
		Resolver: NewResolver(),
		Provider: stubProvider{err: errors.New("rate limited")},
	}

	driver.Run(context.Background(), writeTempImage(t), "outfit-3")

	if writer.status != StatusFailed || writer.result != nil {
		t.Fatalf("want failed with nil result, got %q %v", writer.status, writer.result)
	}
}

func TestDriverRunFailsOnEmptyResponse(t *testing.T) {
	writer := &recordingWriter{}
	driver := &Driver{
		Repo:     writer,
		Resolver: NewResolver(),
		Provider: stubProvider{response: "   \n"},
	}

	driver.Run(context.Background(), writeTempImage(t), "outfit-4")

	if writer.status != StatusFailed || writer.result != nil {
		t.Fatalf("want failed with nil result, got %q %v", writer.status, writer.result)
	}
}

func TestDriverRunFailsOnUnparseableResponse(t *testing.T) {
	writer := &recordingWriter{}
	driver := &Driver{
		Repo:     writer,
		Resolver: NewResolver(),
		Provider: stubProvider{response: "I cannot analyze this image."},
	}

	driver.Run(context.Background(), writeTempImage(t), "outfit-5")

	if writer.status != StatusFailed || writer.result != nil {
		t.Fatalf("want failed with nil result, got %q %v", writer.status, writer.result)
	}
}

func TestDriverRunRecoversFromPanic(t *testing.T) {
	writer := &recordingWriter{}
	driver := &Driver{
		Repo:     writer,
		Resolver: NewResolver(),
		Provider: stubProvider{panics: true},
	}

	// Must not propagate the panic.
	driver.Run(context.Background(), writeTempImage(t), "outfit-6")

	if writer.status != StatusFailed || writer.result != nil {
		t.Fatalf("want failed with nil result, got %q %v", writer.status, writer.result)
	}
}
