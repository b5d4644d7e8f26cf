package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amakane-hakari/scorecache/internal/store"
)

// defaultCost はリクエストで cost が省略された場合のコスト。
const defaultCost = 1.0

type kvHandler struct {
	st *store.Store[string, string]
}

func (h *kvHandler) mount(r chi.Router) {
	r.Route("/kvs", func(r chi.Router) {
		r.Method(http.MethodPut, "/{key}", HandlerFunc(h.put))
		r.Method(http.MethodGet, "/{key}", HandlerFunc(h.get))
		r.Method(http.MethodDelete, "/{key}", HandlerFunc(h.del))
		r.Method(http.MethodGet, "/{key}/score", HandlerFunc(h.score))
	})
	r.Method(http.MethodGet, "/stats", HandlerFunc(h.stats))
}

type putRequest struct {
	Value string   `json:"value"`
	Cost  *float64 `json:"cost,omitempty"`
}

type valueDTO struct {
	Key       string `json:"key"`
	Value     string `json:"value,omitempty"`
	Admission string `json:"admission,omitempty"`
}

type deleteDTO struct {
	Key     string `json:"key"`
	Deleted bool   `json:"deleted"`
}

type scoreDTO struct {
	Key      string  `json:"key"`
	Resident bool    `json:"resident"`
	Score    float64 `json:"score"`
	OldScore float64 `json:"old_score"`
}

func (h *kvHandler) put(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	var req putRequest
	if err := DecodeJSON(r, &req); err != nil {
		return err
	}
	cost := defaultCost
	if req.Cost != nil {
		cost = *req.Cost
	}
	ad, err := h.st.Put(key, req.Value, cost)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCost) || errors.Is(err, store.ErrInvalidSize) {
			return BadRequest(err.Error())
		}
		return err
	}
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Value: req.Value, Admission: ad.String()})
	return nil
}

func (h *kvHandler) get(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	v, ok := h.st.Get(key)
	if !ok {
		return NotFound("key not found")
	}
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Value: v})
	return nil
}

func (h *kvHandler) del(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	writeSuccess(w, http.StatusOK, deleteDTO{Key: key, Deleted: h.st.Delete(key)})
	return nil
}

func (h *kvHandler) score(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	scr, ok := h.st.Score(key)
	writeSuccess(w, http.StatusOK, scoreDTO{
		Key:      key,
		Resident: ok,
		Score:    scr,
		OldScore: h.st.OldScore(key),
	})
	return nil
}

func (h *kvHandler) stats(w http.ResponseWriter, _ *http.Request) error {
	writeSuccess(w, http.StatusOK, h.st.Stats())
	return nil
}
