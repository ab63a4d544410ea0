package cmd

import (
	"os"
	"time"

	"github.com/bep/debounce"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kinoshitayoshihiro/haru/render"
)

var renderFlags struct {
	commonFlags
	outputDir      string
	outputFilename string
	watch          bool
}

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVar(&renderFlags.outputDir, "output-dir", "midi_output", "directory for the rendered file")
	renderCmd.Flags().StringVar(&renderFlags.outputFilename, "output-filename", "", "explicit output filename, overrides the template")
	renderCmd.Flags().BoolVar(&renderFlags.watch, "watch", false, "re-render whenever the chordmap changes")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <chordmap.json>",
	Short: "Renders a chordmap to a MIDI file",
	Long:  `Renders a chordmap to a MIDI file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderFlags.watch {
			return watchAndRender(args[0])
		}
		return renderOnce(args[0])
	},
}

func renderOnce(chordmapPath string) error {
	started := time.Now()
	cfg, cm, lib, blocks, err := renderFlags.loadAll(chordmapPath)
	if err != nil {
		return err
	}
	cfg.OutputDir = renderFlags.outputDir
	cfg.OutputFilename = renderFlags.outputFilename

	song, err := render.New(cfg, lib).Render(cm, blocks)
	if err != nil {
		return err
	}
	path := render.OutputPath(cfg.OutputDir, cfg.OutputFilename, cfg.OutputFilenameTemplate, cm.ProjectTitle)
	if err := render.WriteSMF(song, path); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":    path,
		"tracks":  len(song.Tracks),
		"blocks":  len(blocks),
		"beats":   song.TotalBeats(),
		"elapsed": time.Since(started).Round(time.Millisecond),
	}).Info("rendered")
	return nil
}

// watchAndRender polls the chordmap's mtime and re-renders on change,
// debounced so editor save bursts trigger one render.
func watchAndRender(chordmapPath string) error {
	if err := renderOnce(chordmapPath); err != nil {
		log.WithError(err).Error("initial render failed")
	}

	debounced := debounce.New(300 * time.Millisecond)
	var lastMod time.Time
	if st, err := os.Stat(chordmapPath); err == nil {
		lastMod = st.ModTime()
	}

	log.WithField("file", chordmapPath).Info("watching for changes")
	for {
		time.Sleep(250 * time.Millisecond)
		st, err := os.Stat(chordmapPath)
		if err != nil {
			continue
		}
		if st.ModTime().After(lastMod) {
			lastMod = st.ModTime()
			debounced(func() {
				if err := renderOnce(chordmapPath); err != nil {
					log.WithError(err).Error("render failed")
				}
			})
		}
	}
}
