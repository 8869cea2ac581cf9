package main

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/noa-physics/dcsdata"
	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List artifacts and their resolved paths",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHandler(cmd, g)
		},
	}
}

func listHandler(cmd *cobra.Command, g *globalFlags) error {
	cache := dcsdata.New(g.options()...)

	var data [][]string
	for _, n := range cache.Names() {
		path, err := cache.Path(n)
		if err != nil {
			return err
		}

		var size string
		info, err := os.Stat(path)
		switch {
		case err == nil:
			size = strconv.FormatInt(info.Size(), 10)
		case !errors.Is(err, fs.ErrNotExist):
			return err
		default:
			size = "missing"
		}
		data = append(data, []string{n.String(), path, size})
	}

	table := newTable(cmd.OutOrStdout(), []string{"NAME", "PATH", "SIZE"})
	table.AppendBulk(data)
	table.Render()
	return nil
}
