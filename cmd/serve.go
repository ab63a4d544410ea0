package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kinoshitayoshihiro/haru/arrange"
	"github.com/kinoshitayoshihiro/haru/model"
	"github.com/kinoshitayoshihiro/haru/render"
	"github.com/kinoshitayoshihiro/haru/rhythm"
)

var serveFlags struct {
	commonFlags
	addr string
}

func init() {
	serveFlags.register(serveCmd)
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves render and plan over HTTP",
	Long:  `Serves render and plan over HTTP. The request body is a chordmap document; POST /render answers with the MIDI file, POST /plan with the resolved block stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := rhythm.Load(serveFlags.rhythmLibrary)
		if err != nil {
			return err
		}
		srv := &ArrangeServer{Lib: lib, Flags: &serveFlags.commonFlags}
		handler := cors.Default().Handler(srv.Router())
		log.WithField("addr", serveFlags.addr).Info("listening")
		return http.ListenAndServe(serveFlags.addr, handler)
	},
}

// NewArrangeServer builds a server over an already loaded library with
// default flag values, mainly for tests.
func NewArrangeServer(lib *rhythm.Library) *ArrangeServer {
	return &ArrangeServer{Lib: lib, Flags: &commonFlags{seed: 1}}
}

// Router mounts the HTTP handlers.
func (s *ArrangeServer) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", s.HandleRender).Methods("POST")
	router.HandleFunc("/plan", s.HandlePlan).Methods("POST")
	return router
}

// ArrangeServer holds the state shared by the HTTP handlers: the rhythm
// library loaded once at startup and the base flag set each request's
// config is built from.
type ArrangeServer struct {
	Lib   *rhythm.Library
	Flags *commonFlags
}

// prepare decodes the request body into a chordmap and builds the block
// stream for it.
func (s *ArrangeServer) prepare(w http.ResponseWriter, r *http.Request) (*model.ChordMap, []model.ResolvedBlock, *render.Renderer, bool) {
	reqID := uuid.NewString()
	logger := log.WithField("request", reqID)
	w.Header().Set("X-Request-Id", reqID)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading body: "+err.Error(), http.StatusBadRequest)
		return nil, nil, nil, false
	}
	var cm model.ChordMap
	if err := json.Unmarshal(body, &cm); err != nil {
		http.Error(w, "parsing chordmap: "+err.Error(), http.StatusBadRequest)
		return nil, nil, nil, false
	}
	if len(cm.Sections) == 0 {
		http.Error(w, "chordmap has no sections", http.StatusBadRequest)
		return nil, nil, nil, false
	}

	cfg, err := s.Flags.buildConfig(&cm)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, nil, false
	}
	blocks, err := arrange.BuildStream(&cm, s.Lib, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, nil, nil, false
	}
	logger.WithFields(log.Fields{"title": cm.ProjectTitle, "blocks": len(blocks)}).Info("prepared")
	return &cm, blocks, render.New(cfg, s.Lib), true
}

// HandleRender answers with the rendered standard MIDI file.
func (s *ArrangeServer) HandleRender(w http.ResponseWriter, r *http.Request) {
	cm, blocks, renderer, ok := s.prepare(w, r)
	if !ok {
		return
	}
	song, err := renderer.Render(cm, blocks)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", render.OutputPath("", "", "{song_title}.mid", cm.ProjectTitle)))
	if err := render.WriteSMFTo(song, w); err != nil {
		log.WithError(err).Error("writing response")
	}
}

// HandlePlan answers with the resolved block stream as JSON.
func (s *ArrangeServer) HandlePlan(w http.ResponseWriter, r *http.Request) {
	_, blocks, _, ok := s.prepare(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(blocks); err != nil {
		log.WithError(err).Error("writing response")
	}
}
