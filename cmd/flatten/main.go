package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"flattenrepo/internal/flatten"
	"flattenrepo/internal/gitfetch"
)

func main() {
	out := flag.String("o", "", "output HTML path (default <name>_flattened.html)")
	maxBytes := flag.Int64("max-bytes", flatten.DefaultMaxBytes, "per-file size limit in bytes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <repo-url-or-directory>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	target := strings.TrimSpace(flag.Arg(0))

	if err := run(target, *out, *maxBytes); err != nil {
		log.Fatalf("flatten: %v", err)
	}
}

func run(target, out string, maxBytes int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	root, head, source, cleanup, err := materialize(ctx, target)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := flatten.DefaultConfig()
	cfg.MaxBytes = maxBytes

	log.Printf("Scanning %s", source)
	art, err := flatten.Run(root, head, source, cfg)
	if err != nil {
		return err
	}

	if out == "" {
		out = art.Title + "_flattened.html"
	}
	if err := os.WriteFile(out, []byte(art.HTML), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	log.Printf("Wrote %s: %d files rendered, %d skipped, %s",
		out, art.Stats.Rendered, art.Stats.Skipped, flatten.BytesHuman(int64(len(art.HTML))))
	return nil
}

// materialize resolves the target to a local tree: repository URLs are
// cloned into a temp directory, existing directories are used in place.
func materialize(ctx context.Context, target string) (root, head, source string, cleanup func(), err error) {
	noop := func() {}

	if gitfetch.ValidRepoURL(target) {
		tmp, err := os.MkdirTemp("", "flatten_repo_cli_")
		if err != nil {
			return "", "", "", noop, err
		}
		log.Printf("Cloning %s", target)
		head, err := gitfetch.Git{}.Fetch(ctx, target, tmp)
		if err != nil {
			os.RemoveAll(tmp)
			return "", "", "", noop, err
		}
		return tmp, head, target, func() { os.RemoveAll(tmp) }, nil
	}

	info, statErr := os.Stat(target)
	if statErr != nil || !info.IsDir() {
		return "", "", "", noop, fmt.Errorf("%s is neither a repository URL nor a directory", target)
	}
	return target, localHead(ctx, target), target, noop, nil
}

func localHead(ctx context.Context, dir string) string {
	out, err := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "HEAD").Output()
	if err != nil {
		return flatten.HeadUnknown
	}
	return strings.TrimSpace(string(out))
}
