package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Assemble theme package archives"
	MsgBuildShort      = "Build a package from asset directories and applications"
	MsgPackageShort    = "Build a package from per-category asset requests"
	MsgCleanShort      = "Empty the working cache"
	MsgAppsShort       = "Inspect the application inventory"
	MsgAppsListShort   = "List installed applications"
	MsgAppsShowShort   = "Show one installed application"
	MsgInspectShort    = "List the entries of an archive"
	MsgGenConfigShort  = "Print the effective configuration as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	MsgCacheCleaned = "Cache %s emptied"

	// Error messages
	MsgErrNoAppsDir   = "apps.dir is not set; use --apps-dir or SUBPACK_APPS_DIR"
	MsgErrAppNotFound = "application %s is not installed"
	MsgErrEmptyReq    = "nothing to package; pass --request or a category flag"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Configuration file (default $XDG_CONFIG_HOME/subpack/config.toml)"
	MsgFlagCacheDir  = "Working cache directory"
	MsgFlagResources = "Directory holding the base archives"
	MsgFlagFormat    = "Output format: auto, terminal, text or json"
	MsgFlagApp       = "Package name of an application whose assets are included (repeatable)"
	MsgFlagAllApps   = "Include the assets of every installed application"
	MsgFlagAppsDir   = "Package index or directory of installed packages"
	MsgFlagWorkers   = "Concurrent application workers"
	MsgFlagClean     = "Empty the cache before building"
	MsgFlagRequest   = "YAML request file"
	MsgFlagTemplate  = "Print the defaults with every value commented out"
	MsgFlagCategory  = "%s source as SRC[=DEST] (repeatable)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/package-long.txt
	msgPackageLongRaw string
	MsgPackageLong    = strings.TrimSpace(msgPackageLongRaw)

	//go:embed msgs/package-example.txt
	msgPackageExampleRaw string
	MsgPackageExample    = strings.TrimRight(msgPackageExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
