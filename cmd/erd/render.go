package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/lucasefe/erd"
	"github.com/lucasefe/erd/generator"
	"github.com/lucasefe/erd/parser"
)

func newRenderCmd(v *viper.Viper, name, short string) *cobra.Command {
	var output string
	var watch bool

	cmd := &cobra.Command{
		Use:   name + " [files...]",
		Short: short,
		Long: short + `.

If no file is provided, reads notation from stdin and writes to stdout.
Several files are rendered concurrently. With -o, a single input is written
to the given file; several inputs are written into the given directory,
one output per input, named after the input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := generator.ParseFormat(name)
			if err != nil {
				return err
			}
			r := &renderer{
				config: &erd.Config{Format: format, ErrorPolicy: errorPolicy(v)},
				output: output,
				multi:  len(args) > 1,
			}

			if len(args) == 0 {
				if watch {
					return fmt.Errorf("--watch requires file arguments")
				}
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				out, err := r.render(string(src))
				if err != nil {
					return err
				}
				return r.write(cmd.OutOrStdout(), "", out)
			}

			if err := r.renderFiles(cmd.OutOrStdout(), args); err != nil && !watch {
				return err
			} else if err != nil {
				log().Error(err.Error())
			}

			if watch {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return r.watch(ctx, cmd.OutOrStdout(), args)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, or directory for several inputs (default: stdout)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-render files when they change")

	return cmd
}

type renderer struct {
	config *erd.Config
	output string
	multi  bool
}

func (r *renderer) render(src string) (string, error) {
	return erd.Generate(parser.NormalizeNewlines(src), r.config)
}

// renderFiles renders every file concurrently and writes the results in
// argument order.
func (r *renderer) renderFiles(stdout io.Writer, files []string) error {
	outputs := make([]string, len(files))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			out, err := r.renderFile(file)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, file := range files {
		if err := r.write(stdout, file, outputs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderFile(file string) (string, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	out, err := r.render(string(src))
	if err != nil {
		return "", fmt.Errorf("%s:\n%w", file, err)
	}
	return out, nil
}

// write sends out to stdout or to the path chosen by outputPath.
func (r *renderer) write(stdout io.Writer, input, out string) error {
	path := r.outputPath(input)
	if path == "" {
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, err := io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	log().Infof("wrote %s (%d bytes)", path, len(out))
	return nil
}

func (r *renderer) outputPath(input string) string {
	if r.output == "" {
		return ""
	}
	info, err := os.Stat(r.output)
	isDir := err == nil && info.IsDir()
	if input == "" || (!r.multi && !isDir) {
		return r.output
	}
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + r.config.Format.Extension()
	return filepath.Join(r.output, base)
}

// watch re-renders a file each time it is written until ctx is done.
// Editors that save by rename are handled by watching the parent
// directories and filtering on the watched paths.
func (r *renderer) watch(ctx context.Context, stdout io.Writer, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	log().Noticef("watching %d files", len(files))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			out, err := r.renderFile(event.Name)
			if err != nil {
				log().Error(err.Error())
				continue
			}
			if err := r.write(stdout, event.Name, out); err != nil {
				log().Error(err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log().Errorf("watch: %s", err)
		}
	}
}
