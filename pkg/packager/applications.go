package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/subpack/pkg/apps"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/merge"
	"golang.org/x/sync/errgroup"
)

// extractedDirName holds per-application extraction trees under apps/.
const extractedDirName = "extracted"

// processApplications fetches every application and extracts its assets,
// at most Workers at a time. Each application is extracted into its own
// directory; once all workers are done the directories are merged into the
// working tree in application order, so a later application wins
// collisions no matter which worker finished first.
//
// Failures are isolated per application and returned as warnings.
func (p *Packager) processApplications(ctx context.Context) []error {
	if len(p.cfg.Applications) == 0 {
		return nil
	}

	done := logging.LogOperationStart(p.logger, "applications")
	defer done()

	appsDir := p.layout.AppsDir()
	extractRoot := filepath.Join(appsDir, extractedDirName)
	if err := os.RemoveAll(extractRoot); err != nil {
		return []error{errors.Wrap(err, errors.ErrAppExtract, "failed to reset application extraction directory")}
	}

	type outcome struct {
		dir string
		err error
	}
	outcomes := make([]outcome, len(p.cfg.Applications))
	seen := make(map[string]bool)

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for i, info := range p.cfg.Applications {
		if info == nil {
			p.logger.Debug().Int("index", i).Msg("skipping empty application entry")
			continue
		}
		if seen[info.PackageName] {
			p.logger.Debug().Str("package", info.PackageName).Msg("skipping duplicate application")
			continue
		}
		seen[info.PackageName] = true

		dir := filepath.Join(extractRoot, fmt.Sprintf("%03d-%s", i, filepath.Base(info.PackageName)))
		g.Go(func() error {
			// A panicking collaborator fails only its own application
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{dir: dir, err: errors.Newf(errors.ErrPipelineFault,
						"application %s panicked: %v", info.PackageName, r).
						WithDetail("package", info.PackageName)}
				}
			}()
			outcomes[i] = outcome{dir: dir, err: p.processApplication(ctx, appsDir, dir, info)}
			return nil
		})
	}

	// Hard barrier: nothing touches the working tree until every worker is done
	_ = g.Wait()

	var warnings []error
	for i, o := range outcomes {
		if o.dir == "" {
			continue
		}
		if o.err == nil {
			o.err = p.mergeApplication(o.dir, p.cfg.Applications[i])
		}
		if o.err != nil {
			p.logger.Warn().Err(o.err).Str("package", p.cfg.Applications[i].PackageName).
				Msg("application assets skipped")
			warnings = append(warnings, o.err)
		}
	}
	return warnings
}

func (p *Packager) processApplication(ctx context.Context, appsDir, dir string, info *apps.ApplicationInfo) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrAppFetch, "fetch of %s cancelled", info.PackageName)
	}

	file, err := p.cfg.Fetcher.FetchToCache(ctx, appsDir, info)
	if err != nil {
		return ensureCode(err, errors.ErrAppFetch, "failed to fetch %s", info.PackageName)
	}
	if _, err := os.Stat(file); err != nil {
		return errors.Wrapf(err, errors.ErrAppFetch, "fetched package of %s is missing", info.PackageName).
			WithDetail("package", info.PackageName)
	}

	if err := p.cfg.Extractor.ExtractAssets(ctx, file, dir); err != nil {
		return ensureCode(err, errors.ErrAppExtract, "failed to extract assets of %s", info.PackageName)
	}

	p.logger.Debug().Str("package", info.PackageName).Msg("application assets extracted")
	return nil
}

func (p *Packager) mergeApplication(dir string, info *apps.ApplicationInfo) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	if err := merge.Directories(p.layout.ResultDir(), dir); err != nil {
		return errors.Wrapf(err, errors.ErrAppExtract, "failed to merge assets of %s", info.PackageName).
			WithDetail("package", info.PackageName)
	}
	return nil
}

// ensureCode wraps err with code unless it already carries it.
func ensureCode(err error, code errors.ErrorCode, format string, args ...interface{}) error {
	if errors.IsErrorCode(err, code) {
		return err
	}
	return errors.Wrapf(err, code, format, args...)
}
