package cli

import (
	"github.com/arthur-debert/subpack/pkg/apps"
	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/ui"
	"github.com/spf13/cobra"
)

func newAppsCmd(opts *rootOptions) *cobra.Command {
	var appsDir string

	cmd := &cobra.Command{
		Use:     "apps",
		Short:   MsgAppsShort,
		GroupID: "core",
	}
	cmd.PersistentFlags().StringVar(&appsDir, "apps-dir", "", MsgFlagAppsDir)

	inventory := func(cmd *cobra.Command) (*apps.LocalInventory, error) {
		overrides := map[string]interface{}{}
		if cmd.Flags().Changed("apps-dir") {
			overrides["apps.dir"] = appsDir
		}
		cfg, err := opts.loadConfig(cmd, overrides)
		if err != nil {
			return nil, err
		}
		return inventoryFor(cfg)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgAppsListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := inventory(cmd)
			if err != nil {
				return err
			}
			list, err := inv.ListInstalled(cmd.Context())
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(&ui.AppList{Source: inv.Path, Apps: list})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show ID",
		Short: MsgAppsShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := inventory(cmd)
			if err != nil {
				return err
			}
			info, err := inv.FindByIdentifier(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if info == nil {
				return errors.Newf(errors.ErrNotFound, MsgErrAppNotFound, args[0])
			}
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(&ui.AppDetail{App: *info})
		},
	})

	return cmd
}

func inventoryFor(cfg *config.Config) (*apps.LocalInventory, error) {
	if cfg.Apps.Dir == "" {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoAppsDir)
	}
	return apps.NewLocalInventory(cfg.Apps.Dir), nil
}
