package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/rtbench/fragments"
	"github.com/utkarsh5026/rtbench/internal/render"
	"github.com/utkarsh5026/rtbench/taskset"
)

// fragmentsCmd lists the fragment catalogs
var fragmentsCmd = &cobra.Command{
	Use:   "fragments",
	Short: "List the fragment catalogs and their costs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shared, plain := taskset.SharedCatalog(), taskset.PlainCatalog()

		lib, err := fragments.New(1)
		if err != nil {
			return err
		}
		defer func() {
			_ = lib.Close()
		}()

		for _, c := range []taskset.Catalog{shared, plain} {
			if err := lib.Covers(c); err != nil {
				return err
			}
		}

		if err := render.Catalogs(cmd.OutOrStdout(), shared, plain); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d runtime bodies available\n", len(lib.Names()))
		return nil
	},
}
