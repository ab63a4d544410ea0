package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/config"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/rhythm"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "haru",
	Short: "Chordmap-driven MIDI arrangement generator",
	Long:  `Generates multi-track MIDI arrangements from a chordmap document and a rhythm pattern library.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// commonFlags are shared by render, plan and serve.
type commonFlags struct {
	settingsFile  string
	rhythmLibrary string
	tempo         float64
	seed          int64
	lenient       bool
	sets          []string

	noPiano       bool
	noDrums       bool
	noGuitar      bool
	noChords      bool
	includeBass   bool
	includeMelody bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.settingsFile, "settings-file", "", "JSON settings overriding the built-in defaults")
	cmd.Flags().StringVar(&f.rhythmLibrary, "rhythm-library", "data/rhythm_library.yml", "rhythm pattern library file")
	cmd.Flags().Float64Var(&f.tempo, "tempo", 0, "override the global tempo")
	cmd.Flags().Int64Var(&f.seed, "seed", 1, "random seed for velocity and probability draws")
	cmd.Flags().BoolVar(&f.lenient, "lenient", false, "substitute defaults instead of failing on bad input")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "CLI parameter override, family.key=value")
	cmd.Flags().BoolVar(&f.noPiano, "no-piano", false, "skip the piano part")
	cmd.Flags().BoolVar(&f.noDrums, "no-drums", false, "skip the drum part")
	cmd.Flags().BoolVar(&f.noGuitar, "no-guitar", false, "skip the guitar part")
	cmd.Flags().BoolVar(&f.noChords, "no-chords", false, "skip the chords pad part")
	cmd.Flags().BoolVar(&f.includeBass, "include-bass", false, "generate the bass part")
	cmd.Flags().BoolVar(&f.includeMelody, "include-melody", false, "generate the melody part")
}

// buildConfig assembles the run configuration in cascade order:
// defaults, settings file, chordmap globals, then flags.
func (f *commonFlags) buildConfig(cm *model.ChordMap) (*config.Config, error) {
	cfg := config.Default()
	if f.settingsFile != "" {
		if err := config.LoadSettings(cfg, f.settingsFile); err != nil {
			return nil, err
		}
	}
	cfg.ApplyChordMapGlobals(cm)

	if f.tempo > 0 {
		cfg.GlobalTempo = f.tempo
	}
	cfg.Seed = f.seed
	cfg.Lenient = f.lenient
	if f.noPiano {
		cfg.PartsToGenerate[model.FamilyPiano] = false
	}
	if f.noDrums {
		cfg.PartsToGenerate[model.FamilyDrums] = false
	}
	if f.noGuitar {
		cfg.PartsToGenerate[model.FamilyGuitar] = false
	}
	if f.noChords {
		cfg.PartsToGenerate[model.FamilyChords] = false
	}
	if f.includeBass {
		cfg.PartsToGenerate[model.FamilyBass] = true
	}
	if f.includeMelody {
		cfg.PartsToGenerate[model.FamilyMelody] = true
	}
	for _, spec := range f.sets {
		if err := cfg.ApplySet(spec); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadAll loads every input for one run and builds the block stream.
func (f *commonFlags) loadAll(chordmapPath string) (*config.Config, *model.ChordMap, *rhythm.Library, []model.ResolvedBlock, error) {
	cm, err := arrange.LoadChordMap(chordmapPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	cfg, err := f.buildConfig(cm)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	lib, err := rhythm.Load(f.rhythmLibrary)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	blocks, err := arrange.BuildStream(cm, lib, cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, cm, lib, blocks, nil
}
