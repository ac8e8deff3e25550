package config

import (
	"time"
)

// Config is the effective subpack configuration.
type Config struct {
	Cache     Cache     `koanf:"cache"`
	Resources Resources `koanf:"resources"`
	Assets    Assets    `koanf:"assets"`
	Apps      Apps      `koanf:"apps"`
	Output    Output    `koanf:"output"`
}

type Cache struct {
	Dir   string `koanf:"dir"`
	Clean bool   `koanf:"clean"`
}

type Resources struct {
	Dir      string   `koanf:"dir"`
	Archives []string `koanf:"archives"`
}

type Assets struct {
	Dirs []string `koanf:"dirs"`
}

type Apps struct {
	Dir      string        `koanf:"dir"`
	Packages []string      `koanf:"packages"`
	All      bool          `koanf:"all"`
	Workers  int           `koanf:"workers"`
	Timeout  time.Duration `koanf:"timeout"`
}

type Output struct {
	Name string `koanf:"name"`
}
