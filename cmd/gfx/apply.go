package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/preset"
)

const (
	defaultWidth  = 512
	defaultHeight = 512
)

// filterFlags are the flags that select and configure a single filter.
type filterFlags struct {
	name   string
	set    []string
	width  int
	height int
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&ff.name, "filter", "f", "", "filter name, see gfx list")
	flags.StringArrayVar(&ff.set, "set", nil, "parameter as key=value, repeatable")
	flags.IntVarP(&ff.width, "width", "W", defaultWidth, "canvas width without an input image")
	flags.IntVarP(&ff.height, "height", "H", defaultHeight, "canvas height without an input image")
	_ = cmd.MarkFlagRequired("filter")
}

// build returns the configured filter and its registry entry.
func (ff *filterFlags) build() (gfx.Filter, gfx.Info, error) {
	info, err := gfx.Lookup(ff.name)
	if err != nil {
		return nil, gfx.Info{}, err
	}
	params, err := preset.ParseSet(ff.set)
	if err != nil {
		return nil, gfx.Info{}, err
	}
	step := preset.Step{Filter: info.Name, Params: params}
	f, err := step.Build()
	if err != nil {
		return nil, gfx.Info{}, err
	}
	return f, info, nil
}

func newApplyCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "apply [input] output",
		Short: "Apply one filter to an image or a blank canvas",
		Long: `Apply runs a single filter. Without an input image the filter draws on a
transparent canvas of --width x --height pixels, which suits generators
such as clouds or penrose.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, info, err := ff.build()
			if err != nil {
				return err
			}

			src := gfx.NewImage(ff.width, ff.height)
			if len(args) == 2 {
				if src, err = loadImage(args[0]); err != nil {
					return err
				}
			}

			out, err := gfx.Apply(f, src, gfx.WithName(info.Name))
			if err != nil {
				return err
			}
			dst := args[len(args)-1]
			if err := a.saveImage(out, dst); err != nil {
				return err
			}
			a.logger.Info("wrote", "path", dst, "filter", info.Name,
				"size", fmt.Sprintf("%dx%d", out.Width, out.Height))
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}
