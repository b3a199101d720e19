// Eventlens - Labeled Event and Image Viewer Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventlens

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/eventlens/internal/cache"
	"github.com/tomtom215/eventlens/internal/fetcher"
	"github.com/tomtom215/eventlens/internal/models"
	"github.com/tomtom215/eventlens/internal/records"
)

func newPrefetchCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prefetch",
		Short: "Download every image referenced by a CSV file",
		Long: "Load a CSV file and fetch each distinct full_s3_path into the image cache. " +
			"Exits non-zero if any image could not be fetched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			dir := cache.New(cfg.Cache.Dir)
			if err := dir.Ensure(); err != nil {
				return err
			}

			ds, err := records.NewStore(records.NewSource(cfg.Data.Dir)).Load(ctx, file)
			if err != nil {
				return err
			}

			getter, err := fetcher.NewS3Getter(ctx, cfg.S3)
			if err != nil {
				return err
			}
			f := fetcher.New(getter, dir, fetcher.OptionsFromConfig(cfg.Fetch))

			results := f.FetchAll(ctx, distinctPaths(ds.Records))
			return reportPrefetch(cmd.OutOrStdout(), ds.File, results)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file to read (default: first file in CSV_DIR)")

	return cmd
}

// distinctPaths returns the non-empty full_s3_path values in first-seen order.
func distinctPaths(recs []models.Record) []string {
	seen := make(map[string]struct{}, len(recs))
	paths := make([]string, 0, len(recs))
	for i := range recs {
		p := recs[i].FullS3Path
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	return paths
}

// reportPrefetch prints one line per failure and a summary. It returns an
// error when anything failed.
func reportPrefetch(w io.Writer, file string, results []models.FetchResult) error {
	var downloaded, cached, failed int
	for _, r := range results {
		switch {
		case !r.Success:
			failed++
			fmt.Fprintf(w, "FAIL %s: %s\n", r.S3Path, r.Error)
		case r.Cached:
			cached++
		default:
			downloaded++
		}
	}
	fmt.Fprintf(w, "%s: %d images, %d downloaded, %d already cached, %d failed\n",
		file, len(results), downloaded, cached, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(results))
	}
	return nil
}
