// Command asn1grammar compiles ASN.1 type definitions into a target message
// grammar.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zl)
	return cfg.Build()
}

func main() {
	v := viper.New()
	v.SetConfigName("asn1grammar")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "asn1grammar: reading config:", err)
			os.Exit(1)
		}
	}

	root := &cobra.Command{
		Use:   "asn1grammar",
		Short: "Compile ASN.1 BER type definitions into a target message grammar",
	}
	if err := bindFlags(v, root.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "asn1grammar:", err)
		os.Exit(1)
	}

	logger, err := newLogger(v.GetString("log-level"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "asn1grammar:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	root.AddCommand(newCompileCmd(v, logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
