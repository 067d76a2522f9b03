package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"quantgen/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan [flags] [file.yaml...]",
	Short: "Write the ordered definition plan for a code generator",
	Long: `Validate the declarations and, when no errors are found, write the plan:
every unit type with its instances in emission order and every quantity.
Diagnostics go to standard error.`,
	RunE: runPlan,
}

func init() {
	addRunFlags(planCmd)
	addDiagnosticFlags(planCmd)
	planCmd.Flags().String("plan-format", "", "plan encoding (json|msgpack|toml); defaults to the project setting or json")
	planCmd.Flags().StringP("output", "o", "", "write the plan to this file instead of the project output path")
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	name, formatName, outPath := "quantgen", "json", ""
	if s.project != nil {
		name = s.project.Config.Project.Name
		formatName = s.project.Config.Output.Format
		outPath = s.project.OutputPath()
	}
	if v, _ := cmd.Flags().GetString("plan-format"); v != "" {
		formatName = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		outPath = v
	}
	format, err := plan.ParseFormat(formatName)
	if err != nil {
		return err
	}

	res, err := s.run(cmd)
	if err != nil {
		return err
	}
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), s, res.Bag, res.FileSet); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}

	p := plan.Build(name, res)
	if outPath == "" {
		return plan.Encode(cmd.OutOrStdout(), p, format)
	}
	if err := writePlan(outPath, p, format); err != nil {
		return err
	}
	if !s.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s plan to %s\n", format, outPath)
	}
	return nil
}

func writePlan(path string, p *plan.Plan, format plan.Format) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return plan.Encode(f, p, format)
}
