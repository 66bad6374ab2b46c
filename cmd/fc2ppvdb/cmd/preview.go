package cmd

import (
	"fc2ppvdb-scraper/lib/stash"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <url or id>",
	Short: "Scrape a scene and render it as a table, handy for checking a session cookie by hand.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		frag := stash.SceneFragment{Url: args[0]}
		if !strings.Contains(args[0], "/") {
			frag = stash.SceneFragment{Code: args[0]}
		}

		scene := scrape(cmd.Context(), frag)

		performers := make([]string, len(scene.Performers))
		for i, p := range scene.Performers {
			performers[i] = p.Name
		}
		tags := make([]string, len(scene.Tags))
		for i, tag := range scene.Tags {
			tags[i] = tag.Name
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRows([]table.Row{
			{"title", scene.Title},
			{"date", scene.Date},
			{"code", scene.Code},
			{"studio", scene.Studio.Name},
			{"director", scene.Director},
			{"tags", strings.Join(tags, ", ")},
			{"performers", strings.Join(performers, ", ")},
			{"image", scene.Image},
			{"url", scene.Url},
		})
		t.Render()
	},
}
