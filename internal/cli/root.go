package cli

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/arthur-debert/subpack/internal/version"
	"github.com/arthur-debert/subpack/pkg/cobrax/topics"
	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var helpTopics embed.FS

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbosity    int
	configFile   string
	cacheDir     string
	resourcesDir string
	format       string
}

// loadConfig layers the persistent flags and the command's own overrides
// over the configuration files and environment.
func (o *rootOptions) loadConfig(cmd *cobra.Command, overrides map[string]interface{}) (*config.Config, error) {
	if overrides == nil {
		overrides = make(map[string]interface{})
	}
	if cmd.Flags().Changed("cache-dir") {
		overrides["cache.dir"] = o.cacheDir
	}
	if cmd.Flags().Changed("resources") {
		overrides["resources.dir"] = o.resourcesDir
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("cache", cfg.Cache.Dir).
		Str("resources", cfg.Resources.Dir).
		Msg("configuration loaded")
	return cfg, nil
}

func (o *rootOptions) renderer(w io.Writer) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, w)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "subpack",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.cacheDir, "cache-dir", "", MsgFlagCacheDir)
	flags.StringVar(&opts.resourcesDir, "resources", "", MsgFlagResources)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBuildCmd(opts))
	rootCmd.AddCommand(newPackageCmd(opts))
	rootCmd.AddCommand(newCleanCmd(opts))
	rootCmd.AddCommand(newAppsCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	sub, err := fs.Sub(helpTopics, "topics")
	if err == nil {
		_, err = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		// Logging is not set up yet, plain command help still works
		rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	}

	return rootCmd
}

// Execute runs the command line and returns the process exit status. Errors
// are rendered in the selected output format on stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		r, rerr := (&rootOptions{format: format}).renderer(stderr)
		if rerr != nil {
			r, _ = ui.NewRenderer(ui.FormatText, stderr)
		}
		_ = r.RenderError(err)
		return 1
	}
	return 0
}
