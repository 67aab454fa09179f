package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config holds the resolved settings for a single compile invocation,
// layered CLI flag > environment variable > config file > default, the way
// Viper composes them.
type config struct {
	InputPath  string
	OutputPath string
	BasePath   []string
	SkipProof  bool
	LogLevel   string
}

// bindFlags registers flags on fs and binds them into v, so that v.Get*
// reflects CLI > env > file > default precedence.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("input", "", "path to the ASN.1 spec JSON file to compile")
	fs.String("output", "", "path to write the compiled grammar JSON to (default: stdout)")
	fs.StringSlice("base-path", nil, "namespace path components prepended to every module")
	fs.Bool("skip-proof", true, "skip the target model's determinism proof, running only structural checks")
	fs.String("log-level", "info", "zap log level: debug, info, warn, error")

	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix("ASN1GRAMMAR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

func loadConfig(v *viper.Viper) config {
	return config{
		InputPath:  v.GetString("input"),
		OutputPath: v.GetString("output"),
		BasePath:   v.GetStringSlice("base-path"),
		SkipProof:  v.GetBool("skip-proof"),
		LogLevel:   v.GetString("log-level"),
	}
}
