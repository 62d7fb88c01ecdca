package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/marmos91/memvfs/internal/logger"
	"github.com/marmos91/memvfs/internal/ratelimiter"
	"github.com/marmos91/memvfs/pkg/handle"
	"github.com/marmos91/memvfs/pkg/vfs"
	"github.com/spf13/cobra"
)

var (
	writeOffset   int64
	writeTruncate bool
	writeCreate   bool
	writeRate     string
)

var writeCmd = &cobra.Command{
	Use:   "write <null|zero|random|full|path>",
	Short: "Write stdin through a file handle",
	Long: `Write standard input to a synthetic device or a host file through a
memvfs handle.

Host files are locked for the duration of the write and flushed before the
handle is closed.

Examples:
  # Patch bytes at offset 16
  printf 'abcd' | memvfs write ./data.bin --offset 16

  # Replace the content of a file
  memvfs write ./data.bin --truncate < new.bin

  # Throttle to 64 KiB per second
  memvfs write ./data.bin --rate 64KiB < big.bin

  # See what /dev/full does with data
  echo hi | memvfs write full`,
	Args: cobra.ExactArgs(1),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().Int64Var(&writeOffset, "offset", 0, "Offset to seek to before writing")
	writeCmd.Flags().BoolVar(&writeTruncate, "truncate", false, "Truncate the content to zero length first")
	writeCmd.Flags().BoolVar(&writeCreate, "create", false, "Create the host file if it does not exist")
	writeCmd.Flags().StringVar(&writeRate, "rate", "", "Throttle writes to this many bytes per second (e.g. 512KiB)")
}

func runWrite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limiter, err := parseRate(writeRate)
	if err != nil {
		return err
	}

	flag := os.O_RDWR
	if writeCreate {
		flag |= os.O_CREATE
	}

	src, cleanup, err := openSource(args[0], flag)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := vfs.NewFile(sourceName(args[0]), src, vfs.WithNaming(cfg.NamingRules()))
	if err != nil {
		return err
	}

	h, err := f.OpenHandle()
	if err != nil {
		return err
	}
	rw := handle.NewAdapter(h)
	defer func() { _ = rw.Close() }()

	if writeTruncate {
		if err := h.Truncate(0); err != nil {
			return fmt.Errorf("truncate %s: %w", args[0], err)
		}
	}
	if writeOffset != 0 {
		if _, err := rw.Seek(writeOffset, io.SeekStart); err != nil {
			return err
		}
	}

	n, err := io.Copy(limiter.Writer(cmd.Context(), rw), cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("write %s after %d bytes: %w", args[0], n, err)
	}
	if err := h.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", args[0], err)
	}

	logger.Debug("wrote %d bytes to %s", n, args[0])
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s written, size %s\n",
		humanize.IBytes(uint64(n)), humanize.IBytes(uint64(f.Size())))
	return nil
}

// parseRate turns a human-readable byte rate into a limiter. An empty rate
// means no throttling.
func parseRate(s string) (*ratelimiter.RateLimiter, error) {
	if s == "" {
		return ratelimiter.New(0, 0), nil
	}
	bps, err := humanize.ParseBytes(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --rate %q: %w", s, err)
	}
	return ratelimiter.New(bps, 0), nil
}
