package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/yuin/goldmark"

	"recapstream/api"
	"recapstream/models"
	"recapstream/services/metadata"
	"recapstream/services/recap"
)

type recapService interface {
	GenerateMovieRecap(context.Context, models.MovieRecapRequest) (models.RecapResult, error)
	GenerateSeriesRecap(context.Context, models.SeriesRecapRequest) (models.RecapResult, error)
	GeneratePreviouslyOn(context.Context, models.PreviouslyOnRequest) (models.RecapResult, error)
}

type recapCache interface {
	Len() int
	Purge()
}

type metadataCache interface {
	ClearCache() error
}

var (
	_ recapService  = (*recap.Service)(nil)
	_ recapCache    = (*recap.ResultCache)(nil)
	_ metadataCache = (*metadata.TMDBClient)(nil)
)

// RecapHandler is the HTTP face of the recap service. It only parses requests and
// maps results; validation and caching happen in the service.
type RecapHandler struct {
	Service  recapService
	Cache    recapCache
	// Metadata, when set, lets DELETE /recap/cache?metadata=true drop provider responses too.
	Metadata metadataCache
	md       goldmark.Markdown
}

func NewRecapHandler(s recapService, c recapCache) *RecapHandler {
	return &RecapHandler{
		Service: s,
		Cache:   c,
		md:      goldmark.New(),
	}
}

// RecapResponse is a RecapResult plus the optional rendered HTML.
type RecapResponse struct {
	models.RecapResult
	ContentHTML string `json:"contentHtml,omitempty"`
}

// RegisterRoutes mounts the recap endpoints on r.
func (h *RecapHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/recap/movie/{movieId}", h.MovieRecap).Methods(http.MethodPost)
	r.HandleFunc("/recap/series/{seriesId}", h.SeriesRecap).Methods(http.MethodPost)
	r.HandleFunc("/recap/series/{seriesId}/previously", h.PreviouslyOn).Methods(http.MethodPost)
	r.HandleFunc("/recap/cache", h.PurgeCache).Methods(http.MethodDelete)
}

func (h *RecapHandler) MovieRecap(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseID(mux.Vars(r)["movieId"], "movieId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var opts models.MovieRecapOptions
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	res, err := h.Service.GenerateMovieRecap(r.Context(), models.MovieRecapRequest{MovieID: movieID, Options: opts})
	h.respond(w, r, res, err)
}

func (h *RecapHandler) SeriesRecap(w http.ResponseWriter, r *http.Request) {
	seriesID, err := parseID(mux.Vars(r)["seriesId"], "seriesId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	season, err := queryInt(query.Get("season"), "season")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, err := queryInt(query.Get("episodeFrom"), "episodeFrom")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := queryInt(query.Get("episodeTo"), "episodeTo")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	enriched, err := queryBool(query.Get("useEnrichedContext"), false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "useEnrichedContext must be true or false")
		return
	}

	res, err := h.Service.GenerateSeriesRecap(r.Context(), models.SeriesRecapRequest{
		SeriesID:           seriesID,
		Season:             season,
		EpisodeFrom:        from,
		EpisodeTo:          to,
		UseEnrichedContext: enriched,
	})
	h.respond(w, r, res, err)
}

func (h *RecapHandler) PreviouslyOn(w http.ResponseWriter, r *http.Request) {
	seriesID, err := parseID(mux.Vars(r)["seriesId"], "seriesId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	query := r.URL.Query()
	season, err := queryInt(query.Get("season"), "season")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	episode, err := queryInt(query.Get("episode"), "episode")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.GeneratePreviouslyOn(r.Context(), models.PreviouslyOnRequest{
		SeriesID:      seriesID,
		TargetSeason:  season,
		TargetEpisode: episode,
	})
	h.respond(w, r, res, err)
}

func (h *RecapHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	n := h.Cache.Len()
	h.Cache.Purge()
	log.Printf("[recap] cache purged (%d entries)", n)

	body := map[string]any{"purged": n}
	if clearMeta, _ := queryBool(r.URL.Query().Get("metadata"), false); clearMeta && h.Metadata != nil {
		if err := h.Metadata.ClearCache(); err != nil {
			log.Printf("[recap] metadata cache clear failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		body["metadataCleared"] = true
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *RecapHandler) respond(w http.ResponseWriter, r *http.Request, res models.RecapResult, err error) {
	if err != nil {
		switch {
		case errors.Is(err, recap.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), recap.ErrInvalidRequest.Error()+": "))
		case errors.Is(err, recap.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("[recap] %s failed requestId=%s: %v", r.URL.Path, api.RequestIDFrom(r.Context()), err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	out := RecapResponse{RecapResult: res}
	if strings.EqualFold(r.URL.Query().Get("format"), "html") {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(res.Content), &buf); err != nil {
			log.Printf("[recap] markdown render failed: %v", err)
		} else {
			out.ContentHTML = buf.String()
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func queryInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func queryBool(raw string, def bool) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
