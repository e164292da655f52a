package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/gfx"
)

func newSVGCmd(a *app) *cobra.Command {
	var ff filterFlags
	cmd := &cobra.Command{
		Use:   "svg output.svg",
		Short: "Export the shapes of a vector filter as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) (err error) {
			f, info, err := ff.build()
			if err != nil {
				return err
			}
			vf, ok := f.(gfx.VectorFilter)
			if !ok {
				return fmt.Errorf("%s has no vector output", info.Name)
			}

			file, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer func() {
				if cerr := file.Close(); err == nil {
					err = cerr
				}
			}()

			w := bufio.NewWriter(file)
			if err := vf.SVG(w, ff.width, ff.height); err != nil {
				return fmt.Errorf("%s: %w", info.Name, err)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			a.logger.Info("wrote", "path", args[0], "filter", info.Name)
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}
