package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/VoidMesh/strata/internal/biome"
	"github.com/VoidMesh/strata/internal/block"
	"github.com/VoidMesh/strata/internal/chunk"
	"github.com/VoidMesh/strata/internal/persistence"
	"github.com/VoidMesh/strata/internal/world"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const maxPreviewSize = 512

type Handler struct {
	catalog *block.Catalog
	biomes  *biome.Field
	source  *world.Source
	loop    *world.Loop
	saved   persistence.Store
	width   int
	height  int
}

// NewHandler wires the debug API. saved may be nil when persistence is off.
func NewHandler(catalog *block.Catalog, biomes *biome.Field, source *world.Source, loop *world.Loop, saved persistence.Store, width, height int) *Handler {
	return &Handler{
		catalog: catalog,
		biomes:  biomes,
		source:  source,
		loop:    loop,
		saved:   saved,
		width:   width,
		height:  height,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "strata",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) ListBlocks(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, h.catalog.Defs())
}

func (h *Handler) GetBiome(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.ParseFloat(chi.URLParam(r, "x"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid world x coordinate", err)
		return
	}

	b := h.biomes.Sample(x)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, BiomeResponse{
		X:         x,
		Primary:   b.Primary.String(),
		Secondary: b.Secondary.String(),
		Factor:    b.Factor,
		Surface:   h.blockName(b.Surface),
		Tree:      b.Tree.String(),
		Blended:   b,
	})
}

// PreviewChunk generates a chunk without touching the running world.
func (h *Handler) PreviewChunk(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk index", err)
		return
	}

	q := r.URL.Query()
	seed := h.loopSeed()
	if raw := q.Get("seed"); raw != "" {
		if seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid seed", err)
			return
		}
	}
	width, ok := h.sizeParam(w, r, "width", h.width)
	if !ok {
		return
	}
	height, ok := h.sizeParam(w, r, "height", h.height)
	if !ok {
		return
	}

	start := time.Now()
	c := h.source.GenerateSized(index, width, height, seed)
	log.Debug("preview chunk generated", "chunk_index", index, "seed", seed, "width", width, "height", height, "duration", time.Since(start))

	h.renderChunk(w, r, c, q.Get("format"))
}

func (h *Handler) GetWorldChunk(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk index", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	format := r.URL.Query().Get("format")
	var (
		c         *chunk.Chunk
		frame     []byte
		ok        bool
		renderErr error
	)
	err = h.loop.Do(ctx, func(s *chunk.Store) {
		var loaded *chunk.Chunk
		if loaded, ok = s.Get(index); !ok {
			return
		}
		if format == "text" {
			frame, renderErr = s.Composite(index, time.Now())
			return
		}
		c = loaded.Clone()
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to read chunk", err)
		return
	}
	if !ok {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ChunkStatusResponse{Index: index, State: h.loop.Scheduler().State(index).String()})
		return
	}

	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(frame)
		return
	}
	h.renderChunk(w, r, c, "")
}

func (h *Handler) SetCamera(w http.ResponseWriter, r *http.Request) {
	var req CameraRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.X == nil {
		h.renderError(w, r, http.StatusBadRequest, "x is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.loop.SetCamera(ctx, *req.X); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to move camera", err)
		return
	}

	var window chunk.Window
	if err := h.loop.Do(ctx, func(s *chunk.Store) { window = s.Window() }); err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to read window", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, CameraResponse{X: *req.X, Window: window})
}

func (h *Handler) SetBlock(w http.ResponseWriter, r *http.Request) {
	var req SetBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	id, ok := h.catalog.ID(req.Block)
	if !ok {
		h.renderError(w, r, http.StatusBadRequest, "unknown block", block.ErrUnknownName)
		return
	}
	def, err := h.catalog.Resolve(id)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to resolve block", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var setErr error
	err = h.loop.Do(ctx, func(s *chunk.Store) {
		setErr = s.SetBlock(req.Chunk, req.X, req.Y, id, block.NewInstance(id, def.Kind))
	})
	if err == nil {
		err = setErr
	}
	switch {
	case errors.Is(err, chunk.ErrNotLoaded):
		h.renderError(w, r, http.StatusNotFound, "chunk not loaded", err)
		return
	case errors.Is(err, chunk.ErrOutOfBounds):
		h.renderError(w, r, http.StatusBadRequest, "cell out of bounds", err)
		return
	case err != nil:
		h.renderError(w, r, http.StatusInternalServerError, "failed to set block", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, SetBlockResponse{Chunk: req.Chunk, X: req.X, Y: req.Y, Block: def.Name, ID: uint16(id)})
}

func (h *Handler) RetryChunk(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid chunk index", err)
		return
	}

	sched := h.loop.Scheduler()
	if !sched.Retry(index) {
		h.renderError(w, r, http.StatusConflict, "chunk generation has not failed", nil)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, ChunkStatusResponse{Index: index, State: sched.State(index).String()})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := StatsResponse{Seed: h.loop.Seed(), Scheduler: h.loop.Scheduler().Stats()}
	err := h.loop.Do(ctx, func(s *chunk.Store) { resp.Store = s.Stats() })
	if err == nil {
		resp.CameraX, resp.Frames, err = h.loop.Camera(ctx)
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to read stats", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	if h.saved == nil {
		h.renderError(w, r, http.StatusNotFound, "persistence is disabled", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := h.saved.List(ctx, h.loop.Seed())
	if err != nil {
		log.Error("failed to list saved chunks", "error", err)
		h.renderError(w, r, http.StatusInternalServerError, "failed to list saved chunks", err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"seed":   h.loop.Seed(),
		"chunks": list,
	})
}

func (h *Handler) renderChunk(w http.ResponseWriter, r *http.Request, c *chunk.Chunk, format string) {
	if format == "text" {
		frame, err := world.NewTextCompositor(h.catalog).Render(c)
		if err != nil {
			h.renderError(w, r, http.StatusInternalServerError, "failed to render chunk", err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(frame)
		return
	}

	doc, err := persistence.Encode(c)
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "failed to encode chunk", err)
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, json.RawMessage(doc))
}

func (h *Handler) sizeParam(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxPreviewSize {
		h.renderError(w, r, http.StatusBadRequest, name+" must be between 1 and "+strconv.Itoa(maxPreviewSize), err)
		return 0, false
	}
	return v, true
}

func (h *Handler) loopSeed() int64 {
	if h.loop == nil {
		return 0
	}
	return h.loop.Seed()
}

func (h *Handler) blockName(id block.ID) string {
	def, err := h.catalog.Resolve(id)
	if err != nil {
		return ""
	}
	return def.Name
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		// Don't expose internal errors to the client
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
