package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/roomgen/pkg/buildinfo"
	"github.com/matzehuels/roomgen/pkg/dungeon"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/generator"
	"github.com/matzehuels/roomgen/pkg/pipeline"
	"github.com/matzehuels/roomgen/pkg/store"
)

// Response headers describing a generated dungeon.
const (
	SeedHeader  = "X-Roomgen-Seed"
	CacheHeader = "X-Roomgen-Cache"
)

// contentTypes maps formats to response media types.
var contentTypes = map[string]string{
	pipeline.FormatText:     "text/plain; charset=utf-8",
	pipeline.FormatANSI:     "text/plain; charset=utf-8",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatGraphSVG: "image/svg+xml",
	pipeline.FormatGraphPNG: "image/png",
}

// graphFormats maps /graph?format= values to pipeline formats.
var graphFormats = map[string]string{
	"dot": pipeline.FormatDOT,
	"svg": pipeline.FormatGraphSVG,
	"png": pipeline.FormatGraphPNG,
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// createRequest is the POST body: generation options with an optional seed.
type createRequest struct {
	pipeline.Options
	Seed *uint64 `json:"seed"`
}

type createResponse struct {
	ID      string          `json:"id"`
	Summary store.Summary   `json:"summary"`
	Stats   generator.Stats `json:"stats"`
}

type listResponse struct {
	Dungeons []store.Summary `json:"dungeons"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// generate handles GET /v1/dungeons.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	opts, err := generateQuery(r.URL.Query())
	if err == nil {
		err = s.prepare(r, &opts)
	}
	if err == nil {
		err = opts.ValidateForRender()
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set(SeedHeader, strconv.FormatUint(res.Dungeon.Seed, 10))
	w.Header().Set(CacheHeader, cacheStatus(res.CacheInfo.GenerateHit))
	format := opts.Formats[0]
	writeArtifact(w, format, res.Artifacts[format])
}

// create handles POST /v1/dungeons.
func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !stderrors.Is(err, io.EOF) {
		respondError(w, r, badRequest("invalid request body: %v", err))
		return
	}

	opts := req.Options
	opts.Seed = seedOrRandom(req.Seed)
	if err := s.prepare(r, &opts); err != nil {
		respondError(w, r, err)
		return
	}

	d, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	id, err := s.store.Put(r.Context(), d)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/dungeons/"+id)
	w.Header().Set(SeedHeader, strconv.FormatUint(d.Seed, 10))
	w.Header().Set(CacheHeader, cacheStatus(hit))
	respondJSON(w, http.StatusCreated, createResponse{ID: id, Summary: store.Summarize(d), Stats: d.Stats})
}

// getDungeon handles GET /v1/dungeons/{id}.
func (s *Server) getDungeon(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	p := &queryParser{q: r.URL.Query()}
	opts := pipeline.Options{Logger: loggerFrom(r.Context())}
	renderQuery(p, &opts, pipeline.FormatJSON)
	if p.err != nil {
		respondError(w, r, p.err)
		return
	}
	s.render(w, r, d, opts)
}

// getGraph handles GET /v1/dungeons/{id}/graph.
func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = "svg"
	}
	format, ok := graphFormats[name]
	if !ok {
		respondError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q (want dot, svg or png)", name))
		return
	}

	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.render(w, r, d, pipeline.Options{Formats: []string{format}, Logger: loggerFrom(r.Context())})
}

// deleteDungeon handles DELETE /v1/dungeons/{id}.
func (s *Server) deleteDungeon(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listSaved handles GET /v1/saved.
func (s *Server) listSaved(w http.ResponseWriter, r *http.Request) {
	p := &queryParser{q: r.URL.Query()}
	limit := p.intParam("limit")
	if p.err != nil {
		respondError(w, r, p.err)
		return
	}
	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	respondJSON(w, http.StatusOK, listResponse{Dungeons: summaries})
}

// =============================================================================
// Helpers
// =============================================================================

// prepare validates generation options and enforces the map size cap.
func (s *Server) prepare(r *http.Request, opts *pipeline.Options) error {
	opts.Logger = loggerFrom(r.Context())
	opts.Refresh = false
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}
	if cells := opts.Height * opts.Width; cells > s.cfg.MaxCells {
		return errors.New(errors.ErrCodeInvalidSize, "map of %d cells exceeds the limit of %d", cells, s.cfg.MaxCells)
	}
	return nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, d *dungeon.Dungeon, opts pipeline.Options) {
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set(CacheHeader, cacheStatus(hit))
	format := opts.Formats[0]
	writeArtifact(w, format, artifacts[format])
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
