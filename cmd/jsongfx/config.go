package main

import (
	"strings"

	"github.com/kjarosh/jsongfx/scene"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// config is resolved from, by decreasing priority, the command line flags,
// the JSONGFX_* environment variables and the optional config file.
type config struct {
	Output      string `mapstructure:"output"`
	Viewer      string `mapstructure:"viewer"`
	Framebuffer string `mapstructure:"framebuffer"`
	Strict      bool   `mapstructure:"strict"`
	WarnUnknown bool   `mapstructure:"warn-unknown"`
	LogLevel    string `mapstructure:"log-level"`
}

func (c config) errorMode() scene.ErrorMode {
	switch {
	case c.Strict:
		return scene.StrictErrorMode
	case c.WarnUnknown:
		return scene.WarnErrorMode
	default:
		return scene.IgnoreErrorMode
	}
}

func addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "write the image to this file instead of displaying it (png, jpg, gif, bmp, tiff or pdf)")
	flags.String("viewer", "", "command used to display the image (default: the desktop image viewer)")
	flags.String("framebuffer", "", "display the image on this framebuffer device, e.g. /dev/fb0")
	flags.Bool("strict", false, "reject unknown fields in the screen and figure objects")
	flags.Bool("warn-unknown", false, "log unknown fields in the screen and figure objects")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("config", "", "config file providing default values for the flags")
	cmd.MarkFlagsMutuallyExclusive("strict", "warn-unknown")
}

func loadConfig(cmd *cobra.Command) (config, error) {
	v := viper.New()
	v.SetEnvPrefix("JSONGFX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := cmd.Flags()
	for _, name := range []string{"output", "viewer", "framebuffer", "strict", "warn-unknown", "log-level"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return config{}, err
		}
	}

	if file, _ := flags.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return config{}, err
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}
