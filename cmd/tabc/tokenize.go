package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tabc/internal/diag"
	"tabc/internal/diagfmt"
	"tabc/internal/driver"
	"tabc/internal/source"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.tab]",
	Short: "Tokenize a source file and print its token stream",
	Long:  "Tokenize a source file and print its token stream. With no argument, falls back to the entry file named by tabc.toml.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	target, _, err := resolveTarget(args)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	toks, tokErr := driver.Tokenize(fs, target)
	if tokErr != nil {
		var derr *diag.Error
		if errors.As(tokErr, &derr) {
			opts := diagfmt.PrettyOpts{Color: resolveColor(cmd, os.Stderr)}
			_ = diagfmt.Pretty(os.Stderr, derr, fs, opts)
			return fmt.Errorf("tokenization failed")
		}
		return tokErr
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
