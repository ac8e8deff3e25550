package cli

import (
	"fmt"

	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	var template bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateTemplate())
				return err
			}

			cfg, err := opts.loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			content, err := config.Generate(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)

	return cmd
}
