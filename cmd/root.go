package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HeroicKatora/vid-from-pdf/internal/version"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "vfp",
		Short: "Assemble slide shows into WebM video files",
		Long: `vfp turns an ordered list of still images with per-slide narration into a
single WebM file, streaming the container through a bounded staging buffer so
that long slide shows never need the whole output in memory.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flag("version").Changed {
				info := version.ClientInfo()
				fmt.Printf("vfp version %s, build %s\n", info["Version"], info["GitCommit"])
				return nil
			}
			return cmd.Help()
		},
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(NewAssembleCommand())
	rootCmd.AddCommand(NewVersionCommand())
}
