package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/preset"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		outDir string
		format string
	)
	cmd := &cobra.Command{
		Use:   "run preset.yaml [input...]",
		Short: "Run a preset pipeline over many images",
		Long: `Run applies the steps of a YAML preset to every input concurrently and
writes each result under the output directory with the input's base name.
Without inputs it renders one image of the preset's width and height.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := preset.LoadFile(args[0])
			if err != nil {
				return err
			}
			// Fail on a bad step before any file is read.
			if _, err := p.Filters(); err != nil {
				return err
			}
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}

			inputs := args[1:]
			if len(inputs) == 0 {
				name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				out, err := p.Run(cmd.Context(), nil)
				if err != nil {
					return err
				}
				return a.write(out, outputPath(outDir, name+".png", format))
			}

			outs, err := outputPaths(inputs, outDir, format)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.jobs())
			for i, in := range inputs {
				g.Go(func() error {
					src, err := loadImage(in)
					if err != nil {
						return err
					}
					out, err := p.Run(ctx, src)
					if err != nil {
						return err
					}
					return a.write(out, outs[i])
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default from settings, else .)")
	cmd.Flags().StringVar(&format, "format", "", "output extension such as png or jpg, default keeps the input's")
	return cmd
}

func (a *app) write(m *gfx.Image, path string) error {
	if err := a.saveImage(m, path); err != nil {
		return err
	}
	a.logger.Info("wrote", "path", path)
	return nil
}

// outputPath joins dir and name, replacing the extension when format is set.
func outputPath(dir, name, format string) string {
	if format != "" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + strings.TrimPrefix(format, ".")
	}
	return filepath.Join(dir, name)
}

// outputPaths maps every input to its output file. It refuses outputs
// that would overwrite an input or that two inputs share.
func outputPaths(inputs []string, dir, format string) ([]string, error) {
	outs := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, in := range inputs {
		out := outputPath(dir, filepath.Base(in), format)
		key, err := filepath.Abs(out)
		if err != nil {
			return nil, err
		}
		if prev, ok := owner[key]; ok {
			return nil, fmt.Errorf("%s and %s both write %s", prev, in, out)
		}
		owner[key] = in
		outs[i] = out
	}
	for _, out := range outs {
		for _, in := range inputs {
			same, err := sameFile(in, out)
			if err != nil {
				return nil, err
			}
			if same {
				return nil, fmt.Errorf("%s would overwrite input %s, choose another directory with -o or another --format", out, in)
			}
		}
	}
	return outs, nil
}

// sameFile reports whether a and b name one existing file. A missing b is
// never the same file.
func sameFile(a, b string) (bool, error) {
	bi, err := os.Stat(b)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
