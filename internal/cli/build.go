package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/subpack/pkg/apps"
	"github.com/arthur-debert/subpack/pkg/assets"
	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/packager"
	"github.com/arthur-debert/subpack/pkg/staging"
	"github.com/arthur-debert/subpack/pkg/ui"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *rootOptions) *cobra.Command {
	var (
		appIDs  []string
		allApps bool
		appsDir string
		workers int
		clean   bool
	)

	cmd := &cobra.Command{
		Use:     "build [asset-dir...]",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if len(args) > 0 {
				overrides["assets.dirs"] = args
			}
			if cmd.Flags().Changed("app") {
				overrides["apps.packages"] = appIDs
			}
			if cmd.Flags().Changed("all-apps") {
				overrides["apps.all"] = allApps
			}
			if cmd.Flags().Changed("apps-dir") {
				overrides["apps.dir"] = appsDir
			}
			if cmd.Flags().Changed("workers") {
				overrides["apps.workers"] = workers
			}
			if cmd.Flags().Changed("clean") {
				overrides["cache.clean"] = clean
			}

			cfg, err := opts.loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd.Context(), cfg)
			defer cancel()

			applications, err := resolveApplications(ctx, cfg)
			if err != nil {
				return err
			}

			pcfg := packagerConfig(cfg)
			pcfg.AssetDirs = cfg.Assets.Dirs
			pcfg.Applications = applications
			pcfg.Workers = cfg.Apps.Workers
			pcfg.Fetcher = apps.CopyFetcher{}
			pcfg.Extractor = apps.AssetExtractor{}

			p, err := packager.New(pcfg)
			if err != nil {
				return err
			}
			res, err := p.DoWork(ctx)
			if err != nil {
				return err
			}
			return renderOutcome(cmd, opts, "bulk", res)
		},
	}

	cmd.Flags().StringArrayVar(&appIDs, "app", nil, MsgFlagApp)
	cmd.Flags().BoolVar(&allApps, "all-apps", false, MsgFlagAllApps)
	cmd.Flags().StringVar(&appsDir, "apps-dir", "", MsgFlagAppsDir)
	cmd.Flags().IntVar(&workers, "workers", packager.DefaultWorkers, MsgFlagWorkers)
	cmd.Flags().BoolVar(&clean, "clean", false, MsgFlagClean)

	return cmd
}

func newPackageCmd(opts *rootOptions) *cobra.Command {
	var (
		requestFile string
		clean       bool
	)
	sources := make(map[assets.Category]*[]string)

	cmd := &cobra.Command{
		Use:     "package",
		Short:   MsgPackageShort,
		Long:    MsgPackageLong,
		Example: MsgPackageExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := assets.NewPackageRequest()
			if requestFile != "" {
				loaded, err := assets.LoadRequest(requestFile)
				if err != nil {
					return err
				}
				req = loaded
			}
			for _, c := range assets.Categories() {
				for _, spec := range *sources[c] {
					info, err := assets.ParseSpec(spec)
					if err != nil {
						return err
					}
					req.Add(c, info)
				}
			}
			if req.Len() == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrEmptyReq)
			}

			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("clean") {
				overrides["cache.clean"] = clean
			}
			cfg, err := opts.loadConfig(cmd, overrides)
			if err != nil {
				return err
			}

			ctx, cancel := withTimeout(cmd.Context(), cfg)
			defer cancel()

			p, err := packager.New(packagerConfig(cfg))
			if err != nil {
				return err
			}
			res, err := p.ProcessPackageRequest(ctx, req)
			if err != nil {
				return err
			}
			return renderOutcome(cmd, opts, "request", res)
		},
	}

	cmd.Flags().StringVarP(&requestFile, "request", "r", "", MsgFlagRequest)
	cmd.Flags().BoolVar(&clean, "clean", false, MsgFlagClean)
	for _, c := range assets.Categories() {
		list := []string{}
		sources[c] = &list
		name := strings.TrimSuffix(c.String(), "s")
		cmd.Flags().StringArrayVar(sources[c], name, nil, fmt.Sprintf(MsgFlagCategory, c.String()))
	}

	return cmd
}

// packagerConfig maps the shared configuration onto a packager.Config.
func packagerConfig(cfg *config.Config) packager.Config {
	return packager.Config{
		CacheDir:     cfg.Cache.Dir,
		Resources:    staging.NewDirStore(cfg.Resources.Dir),
		BaseArchives: cfg.Resources.Archives,
		OutputName:   cfg.Output.Name,
		CleanCache:   cfg.Cache.Clean,
	}
}

func withTimeout(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Apps.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Apps.Timeout)
}

// resolveApplications selects the applications configured for a bulk build.
// Package names missing from the inventory are skipped with a warning.
func resolveApplications(ctx context.Context, cfg *config.Config) ([]*apps.ApplicationInfo, error) {
	if !cfg.Apps.All && len(cfg.Apps.Packages) == 0 {
		return nil, nil
	}
	if cfg.Apps.Dir == "" {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoAppsDir)
	}

	logger := logging.GetLogger("cli.build")
	inv := apps.NewLocalInventory(cfg.Apps.Dir)

	if cfg.Apps.All {
		list, err := inv.ListInstalled(ctx)
		if err != nil {
			return nil, err
		}
		selected := make([]*apps.ApplicationInfo, len(list))
		for i := range list {
			selected[i] = &list[i]
		}
		return selected, nil
	}

	selected := make([]*apps.ApplicationInfo, 0, len(cfg.Apps.Packages))
	for _, id := range cfg.Apps.Packages {
		info, err := inv.FindByIdentifier(ctx, id)
		if err != nil {
			return nil, err
		}
		if info == nil {
			logger.Warn().Str("package", id).Msg("application is not installed, skipping")
			continue
		}
		selected = append(selected, info)
	}
	return selected, nil
}

func renderOutcome(cmd *cobra.Command, opts *rootOptions, mode string, res *packager.Result) error {
	r, err := opts.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.RenderResult(ui.NewOutcome(mode, res))
}
