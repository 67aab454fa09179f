package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	asn1grammar "github.com/asn1msg/asn1grammar"
	"github.com/asn1msg/asn1grammar/asnast"
)

func newCompileCmd(v *viper.Viper, logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile an ASN.1 spec into a target message grammar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(loadConfig(v), logger)
		},
	}
	return cmd
}

func runCompile(cfg config, logger *zap.Logger) error {
	if cfg.InputPath == "" {
		return fmt.Errorf("--input is required")
	}

	raw, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.InputPath, err)
	}

	spec, err := asnast.DecodeSpec(raw)
	if err != nil {
		return err
	}
	logger.Info("decoded spec", zap.Int("modules", len(spec.Modules)), zap.String("input", cfg.InputPath))

	compiler := asn1grammar.NewCompiler(asn1grammar.Options{
		BasePath:  cfg.BasePath,
		FullProof: !cfg.SkipProof,
	})
	types, err := compiler.ConvertSpec(spec)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", cfg.InputPath, err)
	}
	logger.Info("compiled grammar", zap.Int("types", len(types)))

	out := make(map[string]any, len(types))
	for id, t := range types {
		out[id] = encodeType(t)
	}
	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding grammar: %w", err)
	}

	if cfg.OutputPath == "" {
		_, err := os.Stdout.Write(append(encoded, '\n'))
		return err
	}
	return writeFileAtomic(cfg.OutputPath, encoded)
}

// writeFileAtomic writes data to a temp file alongside path and renames it
// into place, so a failed or interrupted write never leaves a truncated
// grammar file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
