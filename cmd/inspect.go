package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/they4kman/broadside/game"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect SNAPSHOT",
	Short: "Print the boards of a saved match snapshot",
	Long: `inspect reads a snapshot saved with --snapshots, replays the
opponent's shots onto the saved board and prints the result.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading snapshot")
		}

		snapshot, err := game.LoadSnapshot(string(in))
		if err != nil {
			return err
		}

		board, err := snapshot.CreateBoard()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Result: %s (seed %d)\n", snapshot.Result, snapshot.Seed)
		fmt.Fprintf(out, "Shots fired: %d", len(snapshot.ShotsFired))
		if len(snapshot.ShotsFired) > 0 {
			fmt.Fprintf(out, " (%s)", strings.Join(snapshot.ShotsFired, " "))
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Ships afloat: %d of %d\n", board.RemainingShips(), len(board.Ships()))
		fmt.Fprintf(out, "Enemy board:\n%s", snapshot.SerializedView)
		fmt.Fprintf(out, "Your board:\n%s", board)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
