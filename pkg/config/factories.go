package config

import (
	"fmt"

	"github.com/marmos91/memvfs/internal/logger"
	"github.com/marmos91/memvfs/pkg/content"
	"github.com/marmos91/memvfs/pkg/content/buffered"
	"github.com/marmos91/memvfs/pkg/content/device"
	"github.com/marmos91/memvfs/pkg/handle"
	"github.com/marmos91/memvfs/pkg/vfs"
	"github.com/mitchellh/mapstructure"
)

// bufferedOptions is the decoded content.buffered section.
type bufferedOptions struct {
	// MaxSize caps each buffered file; 0 is unbounded.
	MaxSize int64 `mapstructure:"max_size"`
}

// randomOptions is the decoded content.random section.
type randomOptions struct {
	// Seed makes the random device deterministic when set.
	Seed *uint64 `mapstructure:"seed"`
}

type contentOptions struct {
	buffered bufferedOptions
	random   randomOptions
}

// decodeOptions decodes a strategy section. Unknown keys are rejected.
func decodeOptions(options map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       byteSizeDecodeHook(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(options)
}

func decodeContentOptions(cfg *ContentConfig) (contentOptions, error) {
	var opts contentOptions

	if err := decodeOptions(cfg.Buffered, &opts.buffered); err != nil {
		return opts, fmt.Errorf("failed to decode buffered options: %w", err)
	}
	if opts.buffered.MaxSize < 0 {
		return opts, fmt.Errorf("buffered max_size %d: %w", opts.buffered.MaxSize, content.ErrInvalidSize)
	}

	if err := decodeOptions(cfg.Random, &opts.random); err != nil {
		return opts, fmt.Errorf("failed to decode random options: %w", err)
	}

	return opts, nil
}

// CreateContent creates a content strategy based on configuration.
//
// Supported types:
//   - "buffered": an empty in-memory buffered stream (content.buffered.max_size)
//   - "random": a random device (content.random.seed)
//   - "null", "zero", "full": the matching synthetic device
func CreateContent(cfg *ContentConfig) (content.Content, error) {
	opts, err := decodeContentOptions(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Type {
	case "buffered":
		stream, err := buffered.New(nil, buffered.WithMaxSize(opts.buffered.MaxSize))
		if err != nil {
			return nil, fmt.Errorf("failed to create buffered content: %w", err)
		}
		return stream, nil
	case "random":
		var randomOpts []device.RandomOption
		if opts.random.Seed != nil {
			randomOpts = append(randomOpts, device.WithSeed(*opts.random.Seed))
		}
		return device.NewRandom(randomOpts...), nil
	default:
		c, err := device.New(device.Kind(cfg.Type))
		if err != nil {
			return nil, fmt.Errorf("unknown content type: %w", err)
		}
		return c, nil
	}
}

// NamingRules converts the naming section to vfs.Naming.
func (c *Config) NamingRules() vfs.Naming {
	return vfs.Naming{
		Separator:     c.Naming.Separator,
		CaseSensitive: c.Naming.CaseSensitive,
		ShowDotFiles:  c.Naming.ShowDotFiles,
		Blacklist:     append([]string(nil), c.Naming.Blacklist...),
	}
}

// NewFile creates a file node backed by the configured content strategy
// and validated against the configured naming rules. A nil metrics keeps
// the no-op implementation.
func NewFile(cfg *Config, name string, metrics handle.Metrics, opts ...vfs.FileOption) (*vfs.File, error) {
	c, err := CreateContent(&cfg.Content)
	if err != nil {
		return nil, err
	}

	fileOpts := []vfs.FileOption{vfs.WithNaming(cfg.NamingRules())}
	if metrics != nil {
		fileOpts = append(fileOpts, vfs.WithMetrics(metrics))
	}
	fileOpts = append(fileOpts, opts...)

	f, err := vfs.NewFile(name, c, fileOpts...)
	if err != nil {
		_ = c.Unlink()
		return nil, err
	}

	logger.Debug("config: created %s file %s", cfg.Content.Type, name)
	return f, nil
}
