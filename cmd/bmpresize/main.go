// Command bmpresize resizes 24-bit BMP images.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/blang/semver"
	errorsGo "github.com/go-errors/errors"

	"github.com/vearutop/resample"
	"github.com/vearutop/resample/bitmap"
	"github.com/vearutop/resample/internal/config"
	"github.com/vearutop/resample/reference"
)

var version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	// Flags without a command are the resize command.
	if strings.HasPrefix(args[0], "-") {
		return exit(runResize(legacyArgs(args), cfg, logger, stderr), logger, stderr)
	}

	switch args[0] {
	case "resize":
		return exit(runResize(args[1:], cfg, logger, stderr), logger, stderr)
	case "compare":
		return exit(runCompare(args[1:], cfg, stdout, stderr), logger, stderr)
	case "kernels":
		printKernels(stdout)
		return 0
	case "version":
		return exit(printVersion(stdout), logger, stderr)
	case "help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: bmpresize <command> [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  resize  -src in.bmp -dst out.bmp -width 640 -height 480 [-kernel 3] [-workers 4]")
	fmt.Fprintln(w, "  compare -src in.bmp -width 640 -height 480 [-kernel lanczos-3] [-backends nfnt,xdraw]")
	fmt.Fprintln(w, "  kernels")
	fmt.Fprintln(w, "  version")
	fmt.Fprintln(w, "Flags without a command run resize, matched by their first letter.")
	fmt.Fprintln(w, "Environment: "+strings.Join([]string{
		config.EnvKernel, config.EnvWorkers, config.EnvLogLevel, config.EnvMaxDimension,
	}, ", "))
}

var errUsage = errors.New("usage")

// exit maps an error to the process exit status.
func exit(err error, logger *slog.Logger, stderr io.Writer) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	}

	fmt.Fprintln(stderr, "error:", err)

	var ge *errorsGo.Error
	if errors.As(err, &ge) {
		logger.Debug("failure", "stack", ge.ErrorStack())
	}

	return 1
}

type targetFlags struct {
	src     string
	width   int
	height  int
	kernel  string
	workers int
}

func (t *targetFlags) register(fs *flag.FlagSet, cfg config.Config) {
	fs.StringVar(&t.src, "src", "", "input BMP")
	fs.StringVar(&t.src, "s", "", "shorthand for -src")
	fs.IntVar(&t.width, "width", 0, "target width")
	fs.IntVar(&t.width, "w", 0, "shorthand for -width")
	fs.IntVar(&t.height, "height", 0, "target height")
	fs.IntVar(&t.height, "h", 0, "shorthand for -height")
	fs.StringVar(&t.kernel, "kernel", cfg.Kernel.String(), "kernel selector (1-14) or name")
	fs.StringVar(&t.kernel, "k", cfg.Kernel.String(), "shorthand for -kernel")
	fs.IntVar(&t.workers, "workers", cfg.Workers, "goroutines per pass, 0 for all CPUs")
}

func (t *targetFlags) validate(cfg config.Config) (resample.Kernel, error) {
	if t.src == "" {
		return 0, errors.New("missing -src")
	}
	if t.width <= 0 || t.height <= 0 || t.width > cfg.MaxDimension || t.height > cfg.MaxDimension {
		return 0, fmt.Errorf("target size %dx%d must be within 1..%d", t.width, t.height, cfg.MaxDimension)
	}
	if t.workers < 0 {
		return 0, fmt.Errorf("invalid -workers %d", t.workers)
	}
	return resample.ParseKernel(t.kernel)
}

var legacyFlags = map[byte]string{'s': "src", 'd': "dst", 'w': "width", 'h': "height", 'k': "kernel"}

// legacyArgs maps flags of the command-less form by the first letter after
// the dashes, so -source, --wid and -k all reach their flag. -workers and
// -help are kept as is.
func legacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		name := strings.TrimPrefix(strings.TrimPrefix(a, "-"), "-")
		val := ""
		if j := strings.IndexByte(name, '='); j >= 0 {
			name, val = name[:j], name[j:]
		}
		full, ok := "", false
		if name != a && name != "" && name != "workers" && name != "help" {
			full, ok = legacyFlags[name[0]]
		}
		if !ok {
			out = append(out, a)
			continue
		}
		out = append(out, "-"+full+val)
		if val == "" && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

func parseFlags(fs *flag.FlagSet, args []string, stderr io.Writer) error {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "unexpected arguments:", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

func runResize(args []string, cfg config.Config, logger *slog.Logger, stderr io.Writer) error {
	var (
		t   targetFlags
		dst string
	)
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	t.register(fs, cfg)
	fs.StringVar(&dst, "dst", "", "output BMP")
	fs.StringVar(&dst, "d", "", "shorthand for -dst")
	if err := parseFlags(fs, args, stderr); err != nil {
		return err
	}
	if dst == "" {
		return errors.New("missing -dst")
	}
	kernel, err := t.validate(cfg)
	if err != nil {
		return err
	}

	src, err := bitmap.Load(t.src)
	if err != nil {
		return errorsGo.WrapPrefix(err, "load "+t.src, 0)
	}
	logger.Info("loaded", "path", t.src, "width", src.Width, "height", src.Height)

	logger.Info("resampling", "kernel", kernel.String(), "width", t.width, "height", t.height, "workers", t.workers)
	out, err := resample.Resize(src, t.width, t.height, kernel, resample.WithWorkers(t.workers))
	if err != nil {
		return errorsGo.WrapPrefix(err, "resample", 0)
	}

	if err := bitmap.Save(dst, out); err != nil {
		return errorsGo.WrapPrefix(err, "save "+dst, 0)
	}
	logger.Info("saved", "path", dst, "width", out.Width, "height", out.Height)

	return nil
}

func runCompare(args []string, cfg config.Config, stdout, stderr io.Writer) error {
	var (
		t        targetFlags
		backends string
	)
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	t.register(fs, cfg)
	fs.StringVar(&backends, "backends", "", "comma separated backends, all if empty")
	if err := parseFlags(fs, args, stderr); err != nil {
		return err
	}
	kernel, err := t.validate(cfg)
	if err != nil {
		return err
	}

	var list []reference.Backend
	if backends == "" {
		list = reference.All()[1:]
	} else {
		for _, name := range strings.Split(backends, ",") {
			b, err := reference.ByName(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			list = append(list, b)
		}
	}

	src, err := bitmap.Load(t.src)
	if err != nil {
		return errorsGo.WrapPrefix(err, "load "+t.src, 0)
	}
	img := src.RGBA()

	native := reference.Native{Options: []func(o *resample.Options){resample.WithWorkers(t.workers)}}
	want, err := native.Resize(img, t.width, t.height, kernel)
	if err != nil {
		return errorsGo.WrapPrefix(err, "resample", 0)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "backend\tmax\tmean\tpsnr")
	for _, b := range list {
		got, err := b.Resize(img, t.width, t.height, kernel)
		if errors.Is(err, reference.ErrUnsupportedKernel) {
			fmt.Fprintf(tw, "%s\t-\t-\tunsupported\n", b.Name())
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", b.Name(), err)
		}
		d, err := reference.Compare(want, got)
		if err != nil {
			return fmt.Errorf("%s: %w", b.Name(), err)
		}
		fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.2f\n", b.Name(), d.MaxAbs, d.MeanAbs, d.PSNR)
	}
	return tw.Flush()
}

func printKernels(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "selector\tname\tsupport")
	for _, k := range resample.Kernels() {
		fmt.Fprintf(tw, "%d\t%s\t%g\n", int(k), k, k.Filter().Support())
	}
	_ = tw.Flush()
}

func printVersion(w io.Writer) error {
	v, err := semver.Parse(version)
	if err != nil {
		return fmt.Errorf("invalid build version %q: %w", version, err)
	}
	fmt.Fprintln(w, "bmpresize", v.String())
	return nil
}
