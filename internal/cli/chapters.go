package cli

import (
	"context"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hurbes/gita-tui/internal/gita"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the chapters and verse counts from the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		client := gita.NewClient(viper.GetString("source"))
		chapters, err := client.FetchChapters(ctx)
		if err != nil {
			return err
		}
		printChapters(cmd.OutOrStdout(), chapters)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chaptersCmd)
}

func printChapters(w io.Writer, chapters []gita.Chapter) {
	title := color.New(color.FgYellow, color.Bold)
	muted := color.New(color.Faint)

	for i, ch := range chapters {
		title.Fprintf(w, "%2d. %s", i+1, ch.Name)
		muted.Fprintf(w, "  (%d verses)\n", len(ch.Verses))
	}
	muted.Fprintf(w, "\n%d chapters, %d verses\n", len(chapters), gita.TotalVerses(chapters))
}
