package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rigcam/prefabs"
	"github.com/milk9111/rigcam/scene"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	screenWidth  = 960
	screenHeight = 720
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		level     string
		prefabDir string
		watch     bool
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:          "rigview",
		Short:        "Top-down view of a camera rig scene",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			zerolog.SetGlobalLevel(lvl)
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
				With().Timestamp().Str("app", "rigview").Logger()
			if prefabDir != "" {
				prefabs.Dir = prefabDir
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(level)
			if err != nil {
				return err
			}

			v := newViewer(s)
			if watch {
				w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
				if err != nil {
					log.Warn().Err(err).Str("dir", prefabs.Dir).Msg("hot reload disabled")
				} else {
					defer w.Close()
					v.watcher = w
					log.Info().Str("dir", prefabs.Dir).Msg("watching prefabs")
				}
			}

			ebiten.SetWindowSize(screenWidth, screenHeight)
			ebiten.SetWindowTitle("rigview: " + s.Level.Name)
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			return ebiten.RunGame(v)
		},
	}
	cmd.Flags().StringVar(&level, "level", "courtyard", "level to load")
	cmd.Flags().StringVar(&prefabDir, "prefabs", prefabs.Dir, "directory of prefab overrides to load and watch")
	cmd.Flags().BoolVar(&watch, "watch", true, "hot reload prefab and script edits")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")
	return cmd
}
