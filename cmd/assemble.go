package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HeroicKatora/vid-from-pdf/config"
	"github.com/HeroicKatora/vid-from-pdf/internal/assemble"
	"github.com/HeroicKatora/vid-from-pdf/internal/mkv"
)

// Exit codes of the assemble command: 0 on success, 1 for conditions the
// caller can report (bad input data), 2 for transport failures.
const (
	exitDomain = 1
	exitFatal  = 2
)

// callResult is the structured reply written to stdout: exactly one of the
// two fields is set.
type callResult struct {
	Error string           `json:"error,omitempty"`
	OK    *assemble.Result `json:"ok,omitempty"`
}

func NewAssembleCommand() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Assemble a slide show job into a WebM file",
		Long: `Reads one JSON job description from stdin (or --input) and writes the
assembled WebM to the job's target path. The reply on stdout is either
{"ok":{"length":N}} or {"error":"message"}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var job assemble.Job
			if err := json.NewDecoder(in).Decode(&job); err != nil {
				reply(cmd.OutOrStdout(), callResult{Error: fmt.Sprintf("invalid job description: %v", err)})
				os.Exit(exitDomain)
			}
			if job.Memory == 0 {
				job.Memory = config.MemoryBudget()
			}

			result, err := assemble.Run(job, config.AppName())
			if err != nil {
				reply(cmd.OutOrStdout(), callResult{Error: err.Error()})
				fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("✗"), err)
				if mkv.IsDomain(err) {
					os.Exit(exitDomain)
				}
				os.Exit(exitFatal)
			}

			reply(cmd.OutOrStdout(), callResult{OK: result})
			fmt.Fprintf(os.Stderr, "%s wrote %s (%d bytes)\n",
				color.GreenString("✓"), job.Target, result.Length)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read the job description from a file instead of stdin")
	return cmd
}

func reply(w io.Writer, result callResult) {
	if err := json.NewEncoder(w).Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
		os.Exit(exitFatal)
	}
}
