// centermap-export converts a source tabular file into the published
// snapshot JSON the server prefers at load time. It runs once before
// deployment; empty optional fields are omitted from the output.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"centermap/internal/center"
)

var (
	inPath  string
	outPath string
	compact bool
)

var rootCmd = &cobra.Command{
	Use:   "centermap-export",
	Short: "Convert a centers CSV into the published snapshot JSON",
	Long: `centermap-export parses a tabular centers file, validates every
record, and writes the snapshot document served to public visitors.
Validation failures abort the export; a partially valid snapshot is
never written.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&inPath, "in", "", "source CSV file (required)")
	rootCmd.Flags().StringVar(&outPath, "out", "data/centers.json", "output snapshot path")
	rootCmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON instead of indented")
	rootCmd.MarkFlagRequired("in")
}

func run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	centers, err := center.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	if err := center.Validate(centers, nil); err != nil {
		return fmt.Errorf("validate %s: %w", inPath, err)
	}

	var out []byte
	if compact {
		out, err = json.Marshal(centers)
	} else {
		out, err = json.MarshalIndent(centers, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d centers to %s\n", len(centers), outPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
