package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	dongchedi "github.com/lmh17ever/dongchedi-parser"
	"github.com/lmh17ever/dongchedi-parser/fs"
	dcdhttp "github.com/lmh17ever/dongchedi-parser/http"
	"github.com/lmh17ever/dongchedi-parser/parse"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.Timeout)*time.Second)
		defer cancel()
	}

	keys := make([]dongchedi.CanonicalKey, 0, len(c.Fields))
	for _, f := range c.Fields {
		keys = append(keys, dongchedi.CanonicalKey(f))
	}

	req := parse.Request{
		URL:          c.URL,
		Kind:         dongchedi.RecordKind(c.Kind),
		Keys:         keys,
		FollowConfig: c.FollowConfig,
	}

	progress := func(p dongchedi.Progress) {
		if p.Detail != "" {
			fmt.Fprintf(deps.Stderr, "  %s %s (%s)\n", p.Stage, p.URL, p.Detail)
			return
		}
		fmt.Fprintf(deps.Stderr, "  %s %s\n", p.Stage, p.URL)
	}

	rec, err := deps.Parser.Parse(ctx, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", dongchedi.ErrorMessage(err))
		return err
	}

	if err := c.render(deps, rec); err != nil {
		return err
	}

	if c.Images && len(rec.ImageURLs) > 0 {
		if err := c.downloadImages(ctx, deps, rec); err != nil {
			fmt.Fprintf(deps.Stderr, "error downloading images: %s\n", dongchedi.ErrorMessage(err))
			return err
		}
	}

	return nil
}

// render writes the markdown report to --out or stdout.
func (c *ParseCmd) render(deps *Dependencies, rec *dongchedi.VehicleRecord) error {
	var w io.Writer = deps.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return deps.Renderer.Render(w, rec)
}

// downloadImages saves the record and its gallery under the output
// directory. Per-image failures are reported but don't fail the command.
func (c *ParseCmd) downloadImages(ctx context.Context, deps *Dependencies, rec *dongchedi.VehicleRecord) error {
	store := fs.NewStore(deps.OutDir)

	recordDir, err := store.SaveRecord(rec)
	if err != nil {
		return err
	}
	imagesDir, err := store.ImagesDir(recordDir)
	if err != nil {
		return err
	}

	downloader := dcdhttp.NewImageDownloader()
	saved, imgErrs, err := downloader.Download(ctx, rec.ImageURLs, imagesDir)
	if err != nil {
		return err
	}
	for _, e := range imgErrs {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", e.Field, e.Reason)
	}

	fmt.Fprintf(deps.Stderr, "Saved %d of %d images to %s\n", len(saved), len(rec.ImageURLs), imagesDir)
	return nil
}
