package main

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/brensch/snakesaver/viewer"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snakesaver",
		Short: "An autonomous snake that plays itself in the terminal",
		Long: `snakesaver simulates a snake chasing food on a grid, torus or ring board.
Runs can be played back live, exported as parquet and replayed later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newReplayCmd(), newVersionCmd())
	return root
}

// interactive reports whether playback can take over the terminal.
func interactive(in io.Reader, out io.Writer) bool {
	fin, ok := in.(*os.File)
	if !ok {
		return false
	}
	fout, ok := out.(*os.File)
	if !ok {
		return false
	}
	return viewer.Interactive(fin) && viewer.Interactive(fout)
}

// renderMarkdown styles md for a terminal, or keeps it close to plain text
// when the output is not one.
func renderMarkdown(md string, tty bool) (string, error) {
	style := "notty"
	if tty {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
