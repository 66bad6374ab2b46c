package cmd

import (
	"context"
	"fc2ppvdb-scraper/lib/scrapers/fc2ppvdb"
	"fc2ppvdb-scraper/lib/stash"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sceneByFragmentCmd)
	rootCmd.AddCommand(sceneByUrlCmd)
}

var sceneByFragmentCmd = &cobra.Command{
	Use:   string(stash.SceneByFragment),
	Short: "Scrape the scene described by the fragment JSON on stdin.",
	Run:   runScene,
}

var sceneByUrlCmd = &cobra.Command{
	Use:   string(stash.SceneByURL),
	Short: "Scrape the scene behind the url in the fragment JSON on stdin.",
	Run:   runScene,
}

func runScene(cmd *cobra.Command, args []string) {
	frag, err := stash.ReadFragment(os.Stdin)
	if err != nil {
		slog.Error("failed to read scene fragment", "err", err.Error())
		os.Exit(1)
	}

	scene := scrape(cmd.Context(), frag)

	err = stash.WriteScene(os.Stdout, scene)
	if err != nil {
		slog.Error("failed to write scene", "err", err.Error())
		os.Exit(1)
	}
}

// scrape runs the id extraction and the article handshake, exiting the
// process on any failure. extraction happens before the client is even
// constructed, so a hopeless fragment never touches the session file or
// the network.
func scrape(ctx context.Context, frag stash.SceneFragment) stash.ScrapedScene {
	videoId, err := fc2ppvdb.ExtractId(frag)
	if err != nil {
		slog.Error("failed to extract video id", "err", err.Error())
		os.Exit(1)
	}
	slog.Debug("extracted video id", "video_id", videoId)

	scene, err := newClient().Scene(ctx, videoId)
	if err != nil {
		slog.Error("failed to scrape scene", "video_id", videoId, "err", err.Error())
		os.Exit(1)
	}
	return scene
}
