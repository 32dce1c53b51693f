package media

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestResolver(t *testing.T) (*Resolver, string, string, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	audio := filepath.Join(root, "audio", "fr")
	images := filepath.Join(root, "images")
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewResolver(audio, images, logger), audio, images, &buf
}

func TestResolveAllPresent(t *testing.T) {
	r, audio, images, logs := newTestResolver(t)
	writeFile(t, filepath.Join(audio, "k1.mp3"), "mp3")
	writeFile(t, filepath.Join(images, "ice-cream.jpg"), "jpg")
	writeFile(t, filepath.Join(images, "ice-cream.json"), `{"author": "jdoe", "source": "unsplash"}`)

	got := r.Resolve("k1", "Ice Cream")
	want := Assets{
		Slug:        "ice-cream",
		AudioPath:   filepath.Join(audio, "k1.mp3"),
		ImagePath:   filepath.Join(images, "ice-cream.jpg"),
		Sound:       "[sound:k1.mp3]",
		Image:       `<img src="ice-cream.jpg">`,
		Attribution: "unsplash.com/@jdoe",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Resolve mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{want.AudioPath, want.ImagePath}, got.Files()); diff != "" {
		t.Fatalf("Files mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(logs.String(), "level=WARN") {
		t.Fatalf("unexpected warnings: %s", logs.String())
	}
}

func TestResolveMissingFilesWarns(t *testing.T) {
	r, _, _, logs := newTestResolver(t)

	got := r.Resolve("k2", "")
	if got.Sound != "" || got.Image != "" || got.Attribution != "" {
		t.Fatalf("expected empty references, got %+v", got)
	}
	if got.Slug != "unknown" {
		t.Fatalf("expected unknown slug, got %q", got.Slug)
	}
	if len(got.Files()) != 0 {
		t.Fatalf("expected no files, got %v", got.Files())
	}
	out := logs.String()
	for _, want := range []string{"audio file not found", "image file not found", "event_type=media_audio_missing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %q, got %s", want, out)
		}
	}
}

func TestAttribution(t *testing.T) {
	tests := []struct {
		name    string
		sidecar string
		want    string
	}{
		{"unsplash", `{"author": "ana", "source": "unsplash"}`, "unsplash.com/@ana"},
		{"unknown provider", `{"author": "ana", "source": "pexels"}`, ""},
		{"missing author", `{"source": "unsplash"}`, ""},
		{"malformed", `{"author": `, ""},
		{"not an object", `["unsplash"]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, images, _ := newTestResolver(t)
			writeFile(t, filepath.Join(images, "tree.json"), tt.sidecar)
			if got := r.Attribution("tree"); got != tt.want {
				t.Fatalf("Attribution = %q, want %q", got, tt.want)
			}
		})
	}

	r, _, _, _ := newTestResolver(t)
	if got := r.Attribution("absent"); got != "" {
		t.Fatalf("expected empty attribution without sidecar, got %q", got)
	}
}

func TestResolveUsesInjectedExists(t *testing.T) {
	r := &Resolver{AudioDir: "/a", ImagesDir: "/i", AudioExt: ".ogg", ImageExt: "png"}
	seen := map[string]bool{}
	r.Exists = func(path string) bool {
		seen[path] = true
		return path == filepath.Join("/a", "k.ogg")
	}

	got := r.Resolve("k", "dog")
	if got.Sound != "[sound:k.ogg]" {
		t.Fatalf("unexpected sound reference %q", got.Sound)
	}
	if got.Image != "" {
		t.Fatalf("expected no image reference, got %q", got.Image)
	}
	if !seen[filepath.Join("/i", "dog.png")] {
		t.Fatalf("expected image path to be checked, saw %v", seen)
	}
}
