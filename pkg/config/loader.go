package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SUBPACK_"

// Options controls Load.
type Options struct {
	// ConfigFile replaces the default user file. It must exist.
	ConfigFile string
	// Overrides are dotted keys (e.g. "cache.dir") applied last.
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	userPath, required := opts.ConfigFile, true
	if userPath == "" {
		userPath, required = paths.DefaultConfigPath(), false
	}
	userPath = paths.ExpandHome(userPath)
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", userPath)
		}
		logger.Debug().Str("path", userPath).Msg("loaded user configuration")
	} else if required {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", userPath)
	}

	// 3. Env vars, the first underscore separates section from key
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	postProcess(&cfg)
	return &cfg, nil
}

func postProcess(cfg *Config) {
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = paths.DefaultCacheDir()
	}
	if cfg.Resources.Dir == "" {
		cfg.Resources.Dir = paths.DefaultResourcesDir()
	}
	if len(cfg.Resources.Archives) == 0 {
		cfg.Resources.Archives = paths.BaseArchives()
	}
	if cfg.Output.Name == "" {
		cfg.Output.Name = paths.DefaultOutputName
	}

	cfg.Cache.Dir = paths.ExpandHome(cfg.Cache.Dir)
	cfg.Resources.Dir = paths.ExpandHome(cfg.Resources.Dir)
	cfg.Apps.Dir = paths.ExpandHome(cfg.Apps.Dir)
	for i, dir := range cfg.Assets.Dirs {
		cfg.Assets.Dirs[i] = paths.ExpandHome(dir)
	}
}
