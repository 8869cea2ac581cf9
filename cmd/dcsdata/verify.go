package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/noa-physics/dcsdata"
	"github.com/noa-physics/dcsdata/internal/tensorio"
	"github.com/spf13/cobra"
)

type verifyFlags struct {
	remote   string
	stats    bool
	failFast bool
}

func newVerifyCmd(g *globalFlags) *cobra.Command {
	f := &verifyFlags{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Load every artifact and report the ones that fail",
		Long: "Load every artifact the way a test run would and print one line per artifact.\n" +
			"Exits nonzero if any artifact is missing or malformed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyHandler(cmd, g, f)
		},
	}
	cmd.Flags().StringVar(&f.remote, "remote", "", "mirror the data directory from this URL first")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "show how many times each file was read")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "stop at the first failure like a test run does")
	return cmd
}

func verifyHandler(cmd *cobra.Command, g *globalFlags, f *verifyFlags) error {
	counting := tensorio.NewCountingLoader(tensorio.NewExtLoader())

	opts := append(g.options(), dcsdata.WithLoader(counting))
	if !f.failFast {
		opts = append(opts, dcsdata.WithReportAllFailures())
	}
	if f.remote != "" {
		opts = append(opts, dcsdata.WithRemote(f.remote))
	}
	cache := dcsdata.New(opts...)

	initErr := cache.Initialize(cmd.Context())
	report := cache.Report()

	status := make(map[dcsdata.Name]string, len(report.Loaded)+len(report.Failures))
	for _, n := range report.Loaded {
		status[n] = "ok"
	}
	for _, fail := range report.Failures {
		status[fail.Name] = "FAILED"
	}

	header := []string{"NAME", "STATUS", "SHAPE", "PATH"}
	if f.stats {
		header = append(header, "READS")
	}

	var data [][]string
	for _, n := range cache.Names() {
		path, _ := cache.Path(n)
		st, ok := status[n]
		if !ok {
			st = "skipped"
		}

		shape := "-"
		if cache.Loaded(n) {
			shape = fmt.Sprintf("%v", cache.MustGet(n).Shape())
		}

		row := []string{n.String(), st, shape, path}
		if f.stats {
			row = append(row, strconv.Itoa(counting.Count(path)))
		}
		data = append(data, row)
	}

	table := newTable(cmd.OutOrStdout(), header)
	table.AppendBulk(data)
	table.Render()

	if initErr != nil {
		return initErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d artifacts loaded in %s\n", len(report.Loaded), report.Elapsed.Round(time.Millisecond))
	return nil
}
