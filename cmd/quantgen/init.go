package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"quantgen/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new quantgen project",
	Long: `Initialize a new quantgen project by creating a configuration (quantgen.toml)
and a starter declaration file (units/length.yaml). If [path|name] is omitted,
initializes the current directory. If a non-existing name is provided, a
directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const starterDeclarations = `units:
  - type: UnitOfLength
    quantity: Length
    fixed:
      - name: Metre
    aliases:
      - name: Meter
        alias_of: Metre
    scaled:
      - name: Kilometre
        from: Metre
        scale: 1000
quantities:
  - type: Length
    unit: UnitOfLength
`

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "quantgen-project"
	}

	if _, err := project.WriteDefault(target, name); err != nil {
		return fmt.Errorf("project already initialized or not writable: %w", err)
	}

	declPath := filepath.Join(target, "units", "length.yaml")
	createdDecl := false
	if _, err := os.Stat(declPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(declPath), 0o755); err != nil {
			return fmt.Errorf("failed to create units directory: %w", err)
		}
		if err := os.WriteFile(declPath, []byte(starterDeclarations), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", declPath, err)
		}
		createdDecl = true
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized quantgen project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ConfigName)
	if createdDecl {
		fmt.Fprintf(out, "  - units/length.yaml\n")
	} else {
		fmt.Fprintf(out, "  - units/length.yaml (existing)\n")
	}
	return nil
}
