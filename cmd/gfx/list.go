package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/preset"
)

func newListCmd(_ *app) *cobra.Command {
	var (
		category string
		params   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered filters by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if category != "" && !lo.Contains(gfx.Categories(), category) {
				return fmt.Errorf("unknown category %q (want one of %s)",
					category, strings.Join(gfx.Categories(), ", "))
			}

			out := cmd.OutOrStdout()
			title := cases.Title(language.English)
			current := ""
			for _, info := range gfx.Filters() {
				if category != "" && info.Category != category {
					continue
				}
				if info.Category != current {
					current = info.Category
					fmt.Fprintf(out, "%s:\n", title.String(current))
				}
				fmt.Fprintf(out, "  %-16s %s\n", info.Name, info.DisplayName())
				if !params {
					continue
				}
				defaults, err := preset.Defaults(info.Name)
				if err != nil {
					return err
				}
				for _, line := range strings.Split(strings.TrimSpace(string(defaults)), "\n") {
					fmt.Fprintf(out, "      %s\n", line)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	cmd.Flags().BoolVarP(&params, "params", "p", false, "show default parameters")
	return cmd
}
