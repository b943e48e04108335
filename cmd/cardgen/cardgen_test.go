package main

import (
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

const testDoc = `
width: 64
height: 32
background: "#102030"
elements:
  - kind: rect
    x: 4
    y: 4
    width: 56
    height: 24
    radius: 6
    fill: "#ff7e5f"
    gradient_end: "#feb47b"
  - kind: image
    x: 8
    y: 8
    width: 16
    height: 16
    url: ""
`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "card.yaml")
	if err := os.WriteFile(path, []byte(testDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJobRun(t *testing.T) {
	doc := writeDoc(t)
	for _, name := range []string{"card.png", "card.jpg"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), name)
			j := job{doc: doc, output: out, quality: 80}
			if err := j.run(context.Background()); err != nil {
				t.Fatalf("run: %v", err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			cfg, _, err := image.DecodeConfig(f)
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if cfg.Width != 64 || cfg.Height != 32 {
				t.Errorf("output = %dx%d, want 64x32", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestJobRunErrors(t *testing.T) {
	doc := writeDoc(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		job  job
	}{
		{"missing doc", job{doc: filepath.Join(dir, "none.yaml"), output: filepath.Join(dir, "a.png")}},
		{"bad output", job{doc: doc, output: filepath.Join(dir, "a.gif")}},
		{"missing dir", job{doc: doc, output: filepath.Join(dir, "sub", "a.png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.job.run(context.Background()); err == nil {
				t.Error("run succeeded, want error")
			}
		})
	}
}

func TestRelevant(t *testing.T) {
	target, err := filepath.Abs("card.yaml")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "card.yaml", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: target, Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "other.yaml", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := relevant(tt.ev, target); got != tt.want {
			t.Errorf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestWatchRerenders(t *testing.T) {
	doc := writeDoc(t)
	out := filepath.Join(t.TempDir(), "card.png")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchDocument(ctx, job{doc: doc, output: out})
	}()

	deadline := time.Now().Add(10 * time.Second)
	for {
		// Touch the document until the watcher picks a write up.
		if err := os.WriteFile(doc, []byte(testDoc), 0o600); err != nil {
			t.Fatal(err)
		}
		time.Sleep(300 * time.Millisecond)
		if _, err := os.Stat(out); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("watch never rendered the document")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watchDocument = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchDocument did not stop")
	}
}
