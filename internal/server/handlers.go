package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/polynav/polynav/pkg/errors"
	"github.com/polynav/polynav/pkg/neighborhood"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": s.graph != nil,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"server":    s.cfg.API.Server,
		"serverUrl": s.cfg.ServerURL(),
		"version":   s.cfg.API.Version,
		"language":  s.cfg.API.Language,
		"release":   s.cfg.API.Release,
	})
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := s.fetcher.Entity(r.Context(), id)
	if err != nil {
		s.respondCoded(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, e.Detail())
}

func (s *Server) handleMMS(w http.ResponseWriter, r *http.Request) {
	raw, err := s.fetcher.MMSEntity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondCoded(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, raw)
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	raw, err := s.fetcher.CodeInfo(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.respondCoded(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, raw)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	hits, err := s.fetcher.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondCoded(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"hits": hits})
}

// conceptJSON is the wire form of a graph node's stats.
type conceptJSON struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	ParentCount     int      `json:"parentCount"`
	ChildCount      int      `json:"childCount"`
	ChildOrder      []string `json:"childOrder,omitempty"`
	DescendantCount int      `json:"descendantCount"`
	Depth           int      `json:"depth"`
	Height          int      `json:"height"`
	MaxDepth        int      `json:"maxDepth"`
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	if s.graph == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	id := chi.URLParam(r, "id")
	n, ok := s.graph.Node(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "unknown concept id")
		return
	}

	s.respondJSON(w, http.StatusOK, conceptJSON{
		ID:              n.ID,
		Title:           n.Title,
		ParentCount:     n.ParentCount,
		ChildCount:      n.ChildCount,
		ChildOrder:      n.ChildOrder,
		DescendantCount: n.DescendantCount,
		Depth:           n.Depth,
		Height:          n.Height,
		MaxDepth:        n.MaxDepth,
	})
}

// subgraphJSON is the wire form of an induced neighborhood subgraph.
// Item ids use the storage form, so cluster placeholders carry the
// "cluster:" prefix.
type subgraphJSON struct {
	FocusID   string             `json:"focusId"`
	Displayed []string           `json:"displayed"`
	Nodes     []subgraphNodeJSON `json:"nodes"`
	Edges     []subgraphEdgeJSON `json:"edges"`
}

type subgraphNodeJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	ChildCount      int `json:"childCount,omitempty"`
	ParentCount     int `json:"parentCount,omitempty"`
	DescendantCount int `json:"descendantCount,omitempty"`
	Depth           int `json:"depth,omitempty"`

	Cluster          bool     `json:"cluster,omitempty"`
	Count            int      `json:"count,omitempty"`
	ChildIDs         []string `json:"childIds,omitempty"`
	TotalDescendants int      `json:"totalDescendants,omitempty"`
}

type subgraphEdgeJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	if s.graph == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	focusID := chi.URLParam(r, "id")
	if !s.graph.Has(focusID) {
		s.respondError(w, http.StatusNotFound, "unknown concept id")
		return
	}

	b := neighborhood.Builder{Logger: s.logger}
	displayed := b.Build(s.graph, focusID)
	sg := neighborhood.BuildSubgraph(s.graph, displayed)
	s.respondJSON(w, http.StatusOK, subgraphToJSON(sg, focusID, displayed))
}

func (s *Server) handleSubgraph(w http.ResponseWriter, r *http.Request) {
	if s.graph == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	focusID := r.URL.Query().Get("focus")
	rawIDs := r.URL.Query().Get("ids")
	if focusID == "" || rawIDs == "" {
		s.respondError(w, http.StatusBadRequest, "focus and ids query parameters are required")
		return
	}

	displayed := neighborhood.SetFromStrings(strings.Split(rawIDs, ","))
	sg := neighborhood.BuildSubgraph(s.graph, displayed)
	s.respondJSON(w, http.StatusOK, subgraphToJSON(sg, focusID, displayed))
}

func subgraphToJSON(sg *neighborhood.Subgraph, focusID string, displayed neighborhood.Set) subgraphJSON {
	out := subgraphJSON{
		FocusID:   focusID,
		Displayed: displayed.Strings(),
		Nodes:     make([]subgraphNodeJSON, 0, sg.Len()),
		Edges:     make([]subgraphEdgeJSON, 0, len(sg.Edges())),
	}

	for _, it := range sg.Items() {
		n := sg.Node(it)
		out.Nodes = append(out.Nodes, subgraphNodeJSON{
			ID:               it.String(),
			Title:            n.Title,
			ChildCount:       n.ChildCount,
			ParentCount:      n.ParentCount,
			DescendantCount:  n.DescendantCount,
			Depth:            n.Depth,
			Cluster:          it.IsCluster(),
			Count:            n.Count,
			ChildIDs:         n.ChildIDs,
			TotalDescendants: n.TotalDescendants,
		})
	}
	for _, e := range sg.Edges() {
		out.Edges = append(out.Edges, subgraphEdgeJSON{From: e.From.String(), To: e.To.String()})
	}
	return out
}

// respondCoded maps a coded error from pkg/errors onto an HTTP status.
func (s *Server) respondCoded(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidEntity, errors.ErrCodeInvalidLanguage:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeEntityNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		status = http.StatusBadGateway
	}
	s.respondError(w, status, errors.UserMessage(err))
}
