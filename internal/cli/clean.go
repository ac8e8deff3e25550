package cli

import (
	"fmt"

	"github.com/arthur-debert/subpack/pkg/packager"
	"github.com/spf13/cobra"
)

func newCleanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd, nil)
			if err != nil {
				return err
			}

			p, err := packager.New(packagerConfig(cfg))
			if err != nil {
				return err
			}
			if err := p.CleanCache(); err != nil {
				return err
			}

			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgCacheCleaned, cfg.Cache.Dir))
		},
	}
}
