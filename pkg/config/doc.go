// Package config loads subpack configuration.
//
// Sources are layered, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/subpack/config.toml or --config
//  3. SUBPACK_ environment variables (SUBPACK_CACHE_DIR -> cache.dir)
//  4. explicit command line overrides
package config
