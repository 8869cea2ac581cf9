package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noa-physics/dcsdata"
	"github.com/noa-physics/dcsdata/internal/core"
	"github.com/noa-physics/dcsdata/internal/mirror"
	"github.com/spf13/cobra"
)

type syncFlags struct {
	remote      string
	concurrency int
	check       bool
}

func newSyncCmd(g *globalFlags) *cobra.Command {
	f := &syncFlags{}
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror the data directory from a remote without loading",
		Long: "Fetch missing or changed artifacts from a gs://, s3:// or file:// remote into the\n" +
			"data directory. With --check, only report artifacts whose content no longer\n" +
			"matches the mirror index.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return syncHandler(cmd, g, f)
		},
	}
	cmd.Flags().StringVar(&f.remote, "remote", "", "source URL (gs://bucket/prefix, s3://bucket/prefix, file:///dir)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", dcsdata.DefaultSyncConcurrency, "parallel fetches")
	cmd.Flags().BoolVar(&f.check, "check", false, "verify local files against the index instead of syncing")
	return cmd
}

// mirrorFiles returns the effective data directory and the artifact files
// under the flags' path table.
func mirrorFiles(g *globalFlags) (string, []mirror.File, error) {
	cache := dcsdata.New(g.options()...)
	dataDir, err := cache.DataDir()
	if err != nil {
		return "", nil, err
	}

	files := make([]mirror.File, 0, len(cache.Names()))
	for _, n := range cache.Names() {
		path, err := cache.Path(n)
		if err != nil {
			return "", nil, err
		}
		files = append(files, mirror.File{Name: n.String(), Path: path})
	}
	return dataDir, files, nil
}

func syncHandler(cmd *cobra.Command, g *globalFlags, f *syncFlags) error {
	if f.remote == "" && !f.check {
		return errors.New("--remote is required unless --check is set")
	}
	if f.concurrency <= 0 {
		return fmt.Errorf("--concurrency must be greater than 0, got %d", f.concurrency)
	}

	dataDir, files, err := mirrorFiles(g)
	if err != nil {
		return err
	}

	// --check only reads the index, so it needs no real source.
	var src mirror.Source = &mirror.DirSource{}
	if f.remote != "" {
		src, err = mirror.ParseSource(cmd.Context(), f.remote)
		if err != nil {
			return err
		}
		defer src.Close() //nolint:errcheck // best-effort client shutdown
	}

	m, err := mirror.New(mirror.Config{
		DataDir:     dataDir,
		Source:      src,
		Concurrency: f.concurrency,
		Logger:      core.Logger(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.check {
		bad, err := m.Verify(cmd.Context(), files)
		if err != nil {
			return err
		}
		if len(bad) > 0 {
			return fmt.Errorf("%d artifacts missing or changed since last sync: %s", len(bad), strings.Join(bad, ", "))
		}
		fmt.Fprintf(out, "%d artifacts match the mirror index\n", len(files))
		return nil
	}

	res, err := m.Sync(cmd.Context(), files)
	if err != nil {
		return err
	}

	table := newTable(out, []string{"RESULT", "COUNT", "ARTIFACTS"})
	for _, row := range []struct {
		label string
		names []string
	}{
		{"fetched", res.Fetched},
		{"up to date", res.UpToDate},
		{"adopted", res.Adopted},
		{"skipped", res.Skipped},
	} {
		table.Append([]string{row.label, fmt.Sprint(len(row.names)), strings.Join(row.names, ", ")})
	}
	table.Render()
	return nil
}
