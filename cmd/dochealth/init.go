package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/config"
)

//go:embed templates/dochealth.yaml
var configTemplate embed.FS

// templateName is the embedded template path.
const templateName = "templates/dochealth.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .dochealth.yaml",
		Long: `Init writes a commented .dochealth.yaml into the repository root (--root),
pre-filled with the default thresholds, stale window and watch list.

Examples:
  # Create .dochealth.yaml in the current directory
  dochealth init

  # Create it in another repository
  dochealth init -r ../agent

  # Write somewhere else, replacing an existing file
  dochealth init -o configs/dochealth.yaml -f

  # Print the template instead of writing it
  dochealth init --stdout`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	// A local --output shadows the report --output of the root command.
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: .dochealth.yaml in --root)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	cmd.Flags().Bool("stdout", false, "Print the template to stdout")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	content, err := configTemplate.ReadFile(templateName)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	if toStdout {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	target, err := initTarget(cmd)
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		_, err := os.Stat(target)
		switch {
		case err == nil:
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", target)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to check %s: %w", target, err)
		}
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(target, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", target)
	fmt.Fprintln(cmd.OutOrStdout(), "Run `dochealth` in the same directory to use it.")
	return nil
}

// initTarget returns --output, or .dochealth.yaml inside --root.
func initTarget(cmd *cobra.Command) (string, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	if output != "" {
		return output, nil
	}

	root := "."
	if cmd.Flags().Lookup("root") != nil {
		if root, err = cmd.Flags().GetString("root"); err != nil {
			return "", err
		}
	}
	return filepath.Join(root, config.DefaultConfigFile), nil
}
