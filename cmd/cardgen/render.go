package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/media"
	"github.com/gogpu/cardkit/poster"
	"github.com/gogpu/cardkit/surface"
)

// job renders one document to one output file.
type job struct {
	doc     string
	output  string
	quality int
	timeout time.Duration

	// loader is shared between watch-mode renders so unchanged images are
	// not fetched again.
	loader *media.Loader
}

func (j job) run(ctx context.Context) error {
	start := time.Now()
	doc, err := poster.Load(j.doc)
	if err != nil {
		return err
	}

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	cv := surface.NewCanvas(doc.Width, doc.Height)
	defer cv.Close()

	var opts []poster.RenderOption
	if j.loader != nil {
		opts = append(opts, poster.WithLoader(j.loader))
	}
	if err := poster.Render(ctx, doc, cv, opts...); err != nil {
		return err
	}
	if err := j.write(cv); err != nil {
		return err
	}

	cardkit.Logger().Info("cardgen: rendered",
		"doc", j.doc,
		"output", j.output,
		"size", fmt.Sprintf("%dx%d", doc.Width, doc.Height),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (j job) write(cv *surface.Canvas) error {
	ext := strings.ToLower(filepath.Ext(j.output))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	f, err := os.Create(j.output)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if ext == ".png" {
		err = cv.EncodePNG(w)
	} else {
		err = cv.EncodeJPEG(w, j.quality)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", j.output, err)
	}
	return nil
}
