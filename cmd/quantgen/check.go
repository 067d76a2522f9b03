package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quantgen/internal/diag"
	"quantgen/internal/diagfmt"
	"quantgen/internal/source"
	"quantgen/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.yaml...]",
	Short: "Validate unit and quantity declarations",
	Long: `Validate unit and quantity declarations and report every problem found.
Without file arguments the inputs of the nearest quantgen.toml are checked.`,
	RunE: runCheck,
}

func init() {
	addRunFlags(checkCmd)
	addDiagnosticFlags(checkCmd)
}

func addDiagnosticFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostic format (pretty|json|short|sarif)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	res, err := s.run(cmd)
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd, cmd.OutOrStdout(), s, res.Bag, res.FileSet); err != nil {
		return err
	}
	if !s.quiet && res.Bag.Len() == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d unit types, %d quantities\n", len(res.Units), len(res.Quantities))
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, w io.Writer, s *runSettings, bag *diag.Bag, fs *source.FileSet) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	if s.project != nil && !fullPath {
		fs.SetBaseDir(s.project.Root)
		pathMode = diagfmt.PathModeRelative
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	case "short":
		return diagfmt.Short(w, bag, fs, withNotes)
	case "sarif":
		return diagfmt.Sarif(w, bag, fs, diagfmt.SarifRunMeta{
			ToolName:    "quantgen",
			ToolVersion: version.Collect().Version,
			PathMode:    pathMode,
		})
	}
	return fmt.Errorf("unknown format %q (must be pretty, json, short or sarif)", format)
}
