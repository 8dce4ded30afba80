package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dayreplay/tdx"
	"github.com/rustyeddy/dayreplay/view"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.day>",
	Short: "Decode a .day file and print its bars",
	Long: `Decode a TDX .day file and print a summary and its most recent bars.

Examples:
  dayreplay inspect ./tdx/vipdoc/sh/lday/sh600000.day
  dayreplay inspect sz000001.day --tail 60`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var inspectTail int

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVarP(&inspectTail, "tail", "n", 10, "number of trailing bars to print (0 for all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := args[0]

	bars, err := tdx.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d bars\n", tdx.Code(path), len(bars))
	if len(bars) == 0 {
		return nil
	}
	fmt.Fprintf(out, "  from %s to %s\n\n", bars[0].DateString(), bars[len(bars)-1].DateString())

	size := inspectTail
	if size <= 0 {
		size = len(bars)
	}
	w, err := view.Build(bars, len(bars)-1, size, nil, nil)
	if err != nil {
		return err
	}
	view.Print(out, w, 0)
	return nil
}
