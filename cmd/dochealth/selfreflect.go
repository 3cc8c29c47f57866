package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lifeform/dochealth/internal/selfreflect"
)

// NewSelfReflectCmd creates the self-reflect command.
func NewSelfReflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self-reflect",
		Short: "Pick a random component and report which of its files are referenced",
		Long: `Self-reflect picks one directory under the components directory ("core" by
default) at random, lists its files and reports which of them are mentioned
by name anywhere else in the repository. Unreferenced files are candidates
for removal or for a link from the documentation.

Use --seed to make the choice reproducible.`,
		Args: cobra.NoArgs,
		RunE: runSelfReflectCmd,
	}

	cmd.Flags().Uint64("seed", 0, "Random seed for the component choice (0 picks a fresh seed)")

	return cmd
}

// runSelfReflectCmd executes the self-reflect command.
func runSelfReflectCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	seed, err := cmd.Flags().GetUint64("seed")
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // only seeds a non-cryptographic choice
	}

	logger := setupLogger(cmd)
	r := selfreflect.New(os.DirFS(cfg.Root), cfg.ComponentsDir,
		rand.New(rand.NewPCG(seed, seed>>1|1)), //nolint:gosec // selection does not need a secure source
		logger,
	)

	refl, err := r.Reflect(commandContext(cmd))
	if err != nil {
		// Nothing to reflect on is not a failure of the tool itself.
		if errors.Is(err, selfreflect.ErrNoComponents) {
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to reflect on: %v\n", err)
			return nil
		}
		return err
	}
	return refl.Write(cmd.OutOrStdout())
}
