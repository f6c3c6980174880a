package untaggedcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/untagged/internal/footprint"
)

func newFootprintCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "footprint",
		Short: "compares bitmap-tracked slots against tagged optional arrays",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.checkFormat(); err != nil {
				return err
			}
			c, err := g.loadConfig()
			if err != nil {
				return err
			}
			entries, err := footprint.Report(c)
			if err != nil {
				return err
			}
			for _, e := range entries {
				if e.Saved < 0 {
					g.log.Warn("untagged slots larger than tagged array",
						zap.String("kind", e.Kind), zap.Int("length", e.Length), zap.Int64("saved", e.Saved))
				}
			}
			if g.format == "yaml" {
				return footprint.WriteYAML(cmd.OutOrStdout(), entries)
			}
			return footprint.WriteEntries(cmd.OutOrStdout(), entries)
		},
	}
}

func newLayoutCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "prints size and alignment of one untagged and one tagged slot per kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.checkFormat(); err != nil {
				return err
			}
			c, err := g.loadConfig()
			if err != nil {
				return err
			}
			layouts, err := footprint.Layouts(c)
			if err != nil {
				return err
			}
			if g.format == "yaml" {
				return footprint.WriteYAML(cmd.OutOrStdout(), layouts)
			}
			return footprint.WriteLayouts(cmd.OutOrStdout(), layouts)
		},
	}
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "lists supported element kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range footprint.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
}
