package cli

import (
	"github.com/arthur-debert/subpack/pkg/archive"
	"github.com/arthur-debert/subpack/pkg/ui"
	"github.com/spf13/cobra"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect ARCHIVE",
		Short:   MsgInspectShort,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := archive.Entries(args[0])
			if err != nil {
				return err
			}
			r, err := opts.renderer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return r.RenderResult(&ui.EntryList{Archive: args[0], Entries: entries})
		},
	}
}
