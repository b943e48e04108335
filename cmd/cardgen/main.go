// Command cardgen renders a card document to a PNG or JPEG image.
//
// Usage:
//
//	cardgen -doc card.yaml -output card.png [-quality 90] [-timeout 30s] [-watch] [-v]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/cardkit"
)

func main() {
	var (
		docPath = flag.String("doc", "card.yaml", "card document (.yaml, .yml or .toml)")
		output  = flag.String("output", "card.png", "output file (.png, .jpg or .jpeg)")
		quality = flag.Int("quality", 90, "JPEG quality (1-100)")
		timeout = flag.Duration("timeout", 30*time.Second, "render timeout, including image loads")
		watch   = flag.Bool("watch", false, "re-render when the document changes")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cardkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	j := job{
		doc:     *docPath,
		output:  *output,
		quality: *quality,
		timeout: *timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := j.run(ctx); err != nil {
		if !*watch {
			log.Fatalf("cardgen: %v", err)
		}
		log.Printf("cardgen: %v", err)
	}
	if !*watch {
		return
	}
	if err := watchDocument(ctx, j); err != nil {
		log.Fatalf("cardgen: %v", err)
	}
}
