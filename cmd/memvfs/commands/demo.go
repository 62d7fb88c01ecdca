package commands

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/marmos91/memvfs/internal/logger"
	"github.com/marmos91/memvfs/pkg/config"
	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/handle"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var demoWait bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show independent handles sharing one file",
	Long: `Create a file with the configured content strategy, open two handles
on it and walk through writes, reads, seeks and a truncate, printing each
handle's cursor along the way.

With metrics enabled in the configuration, --wait keeps the metrics server
running after the walkthrough until interrupted.

Examples:
  memvfs demo
  MEMVFS_CONTENT_TYPE=zero memvfs demo
  MEMVFS_METRICS_ENABLED=true memvfs demo --wait`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&demoWait, "wait", false, "Keep serving metrics until interrupted")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsResult := config.InitializeMetrics(cfg)

	g, ctx := errgroup.WithContext(ctx)
	if metricsResult.Server != nil {
		g.Go(func() error {
			return metricsResult.Server.Start(ctx)
		})
	}

	g.Go(func() error {
		if err := walkthrough(cmd.OutOrStdout(), cfg, metricsResult.HandleMetrics); err != nil {
			return err
		}
		if demoWait && metricsResult.Server != nil {
			logger.Info("Serving metrics on :%d, press Ctrl+C to stop", cfg.Metrics.Port)
			<-ctx.Done()
			return nil
		}
		// Stops the metrics server, if any
		return errDemoDone
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errDemoDone) {
		return err
	}
	return nil
}

var errDemoDone = errors.New("demo finished")

// walkthrough runs the two-handle scenario against a fresh file.
func walkthrough(out io.Writer, cfg *config.Config, metrics handle.Metrics) error {
	f, err := config.NewFile(cfg, "demo.txt", metrics)
	if err != nil {
		return err
	}
	defer func() { _ = f.Unlink() }()

	a, err := f.OpenHandle()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	b, err := f.OpenHandle()
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	step := func(format string, v ...any) {
		_, _ = fmt.Fprintf(out, "%-40s a=%-3d b=%-3d size=%d\n",
			fmt.Sprintf(format, v...), a.Tell(), b.Tell(), f.Size())
	}

	_, _ = fmt.Fprintf(out, "file %s (%s content, id %s)\n", f.Name(), cfg.Content.Type, f.ID())
	step("opened two handles")

	n, err := a.Write([]byte("hello, memvfs"))
	step("a wrote %d bytes (err=%v)", n, err)

	data, err := b.Read(5)
	step("b read %q (err=%v)", data, err)

	err = b.Seek(-6, content.SeekEnd)
	step("b seek -6 from end (err=%v)", err)

	data, err = b.Read(6)
	step("b read %q (err=%v)", data, err)

	err = a.Truncate(5)
	step("a truncated to 5 (err=%v)", err)

	err = a.Seek(0, content.Origin(7))
	step("a seek with unknown origin (err=%v)", err)

	err = a.Seek(0, content.SeekEnd)
	step("a seek to end (err=%v)", err)

	_, _ = fmt.Fprintf(out, "a eof=%t b eof=%t\n", a.EOF(), b.EOF())
	return nil
}
