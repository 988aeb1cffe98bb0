package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command.
var resolveCmd = &cobra.Command{
	Use:   "resolve <sensor-orientation> [output-orientation]",
	Short: "Show the orientation the detection engine is told",
	Long: `Resolve a sensor orientation, optionally against a requested output
orientation, into the orientation handed to the detection engine.

Without an output orientation the sensor orientation is used, with left and
right swapped. With one, the clockwise residual rotation between the two
decides the result.

Examples:
  textframe resolve left
  textframe resolve up landscape-right
  textframe resolve --table`,
	Args:         cobra.RangeArgs(0, 2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if table, _ := cmd.Flags().GetBool("table"); table {
			return writeResolveTable(out)
		}
		if len(args) == 0 {
			return cmd.Help()
		}

		sensor, err := orientation.Parse(args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			_, err = fmt.Fprintf(out, "sensor=%s resolved=%s\n", sensor, orientation.Resolve(sensor, "", false))
			return err
		}
		if !orientation.KnownOutput(args[1]) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unknown output orientation %q, treating it as %s\n",
				args[1], orientation.Portrait)
		}
		output := orientation.ParseOutput(args[1])
		_, err = fmt.Fprintf(out, "sensor=%s output=%s delta=%d resolved=%s\n",
			sensor, output, orientation.Delta(sensor, output), orientation.Resolve(sensor, args[1], true))
		return err
	},
}

// writeResolveTable prints the resolution of every sensor orientation with
// no output orientation and with each named output orientation.
func writeResolveTable(out io.Writer) error {
	outputs := []orientation.Output{
		orientation.Portrait,
		orientation.LandscapeLeft,
		orientation.PortraitUpsideDown,
		orientation.LandscapeRight,
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprint(w, "SENSOR\t(none)")
	for _, o := range outputs {
		_, _ = fmt.Fprintf(w, "\t%s", o)
	}
	_, _ = fmt.Fprintln(w)

	for _, sensor := range orientation.All {
		_, _ = fmt.Fprintf(w, "%s\t%s", sensor, orientation.Resolve(sensor, "", false))
		for _, o := range outputs {
			_, _ = fmt.Fprintf(w, "\t%s", orientation.Resolve(sensor, o.String(), true))
		}
		_, _ = fmt.Fprintln(w)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Bool("table", false, "print the full resolution table")
}
