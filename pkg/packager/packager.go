package packager

import (
	"context"
	"os"

	"github.com/arthur-debert/subpack/pkg/archive"
	"github.com/arthur-debert/subpack/pkg/assets"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/internal/hashutil"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/merge"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/arthur-debert/subpack/pkg/staging"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Packager runs packaging pipelines against one cache directory.
type Packager struct {
	cfg    Config
	layout paths.Layout
	logger zerolog.Logger
}

// New validates cfg and returns a Packager.
func New(cfg Config) (*Packager, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	layout, err := paths.NewLayout(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	return &Packager{
		cfg:    cfg,
		layout: layout,
		logger: logging.GetLogger("packager"),
	}, nil
}

// Layout returns the cache layout the packager works in.
func (p *Packager) Layout() paths.Layout {
	return p.layout
}

// DoWork stages and extracts the base archives, merges the configured
// asset directories and application assets over them, and writes the
// output archive.
func (p *Packager) DoWork(ctx context.Context) (*Result, error) {
	return p.run(ctx, "bulk", func(ctx context.Context) ([]error, error) {
		done := logging.LogOperationStart(p.logger, "merge")
		err := merge.Directories(p.layout.ResultDir(), p.cfg.AssetDirs...)
		done()
		if err != nil {
			return nil, err
		}

		if err := checkpoint(ctx, "merge"); err != nil {
			return nil, err
		}
		return p.processApplications(ctx), nil
	})
}

// ProcessPackageRequest stages and extracts the base archives, places the
// request under result/assets, and writes the output archive.
func (p *Packager) ProcessPackageRequest(ctx context.Context, req *assets.PackageRequest) (*Result, error) {
	if req == nil {
		return nil, errors.New(errors.ErrInvalidInput, "package request is required")
	}

	return p.run(ctx, "request", func(ctx context.Context) ([]error, error) {
		done := logging.LogOperationStart(p.logger, "place")
		defer done()
		return assets.Place(ctx, req, p.layout.AssetsDir(), p.logger), nil
	})
}

// CleanCache removes everything inside the cache directory.
func (p *Packager) CleanCache() error {
	p.logger.Info().Str("cache", p.layout.Root()).Msg("cleaning cache")
	return p.layout.Clean()
}

type layerFunc func(ctx context.Context) ([]error, error)

func (p *Packager) run(ctx context.Context, mode string, layer layerFunc) (res *Result, err error) {
	logger := p.logger.With().Str("mode", mode).Str("cache", p.layout.Root()).Logger()
	logger.Info().Msg("packaging started")

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = errors.Newf(errors.ErrPipelineFault, "unexpected fault: %v", r)
		}
		if err != nil {
			err = asPipelineError(err)
			logger.Error().Err(err).Msg("packaging failed")
		}
	}()

	if err := checkpoint(ctx, "start"); err != nil {
		return nil, err
	}

	if err := p.prepare(); err != nil {
		return nil, err
	}

	if err := p.extractBase(ctx); err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, "extract"); err != nil {
		return nil, err
	}

	warnings, err := layer(ctx)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, "layer"); err != nil {
		return nil, err
	}

	res, err = p.serialize()
	if err != nil {
		return nil, err
	}
	res.Warnings = warnings

	logger.Info().
		Str("output", res.OutputPath).
		Str("size", humanize.Bytes(uint64(res.Size))).
		Int("warnings", len(warnings)).
		Msg("packaging finished")
	return res, nil
}

func (p *Packager) prepare() error {
	if p.cfg.CleanCache {
		if err := p.CleanCache(); err != nil {
			return errors.Wrap(err, errors.ErrStagingFailed, "failed to clean cache")
		}
	}
	if err := p.layout.Ensure(); err != nil {
		return err
	}

	done := logging.LogOperationStart(p.logger, "stage")
	defer done()
	return staging.Stage(p.cfg.Resources, p.cfg.BaseArchives, p.layout.Root())
}

func (p *Packager) extractBase(ctx context.Context) error {
	done := logging.LogOperationStart(p.logger, "extract")
	defer done()

	for _, name := range p.cfg.BaseArchives {
		if err := checkpoint(ctx, "extract"); err != nil {
			return err
		}
		if err := archive.Extract(p.layout.StagedPath(name), p.layout.ResultDir()); err != nil {
			return err
		}
		p.logger.Debug().Str("archive", name).Msg("extracted base archive")
	}
	return nil
}

func (p *Packager) serialize() (*Result, error) {
	done := logging.LogOperationStart(p.logger, "serialize")
	defer done()

	output, err := archive.Create(p.layout.ResultDir(), p.layout.OutputPath(p.cfg.OutputName))
	if err != nil {
		return nil, err
	}

	digest, err := hashutil.FileDigest(output)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrOutputMissing, "output archive %s was not produced", output)
		}
		return nil, errors.Wrapf(err, errors.ErrPipelineFault, "failed to read output archive %s", output)
	}

	return &Result{
		OutputPath: output,
		Size:       digest.Size,
		Checksum:   digest.Checksum,
	}, nil
}

func checkpoint(ctx context.Context, step string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrCancelled, "packaging cancelled at %s", step).
			WithDetail("step", step)
	}
	return nil
}

// asPipelineError gives uncoded errors the PIPELINE_FAULT code.
func asPipelineError(err error) error {
	if errors.GetErrorCode(err) == errors.ErrUnknown {
		return errors.Wrap(err, errors.ErrPipelineFault, "unexpected pipeline error")
	}
	return err
}
