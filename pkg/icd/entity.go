package icd

import (
	"strings"
)

// entityURIPrefix is the canonical URI namespace for Foundation entities.
// The hierarchy root is addressed by the bare prefix with no id segment.
const entityURIPrefix = "http://id.who.int/icd/entity"

// ExtractID returns the concept id from a Foundation entity URI, or "root"
// for the bare entity namespace.
func ExtractID(uri string) string {
	trimmed := strings.TrimSuffix(uri, "/")
	if trimmed == entityURIPrefix || trimmed == strings.Replace(entityURIPrefix, "http://", "https://", 1) {
		return "root"
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// langValue is the API's language-tagged string wrapper.
type langValue struct {
	Value string `json:"@value"`
}

// rawTerm is a labeled term as returned by the API, optionally pointing at
// another Foundation entity.
type rawTerm struct {
	Label         langValue `json:"label"`
	FoundationRef string    `json:"foundationReference"`
}

// Entity is the raw Foundation entity record as returned by the API.
// Parent and Child hold full URIs; everything else is language-tagged.
type Entity struct {
	ID             string    `json:"@id"`
	Title          langValue `json:"title"`
	Definition     langValue `json:"definition"`
	LongDefinition langValue `json:"longDefinition"`
	Parent         []string  `json:"parent"`
	Child          []string  `json:"child"`
	Synonym        []rawTerm `json:"synonym"`
	NarrowerTerm   []rawTerm `json:"narrowerTerm"`
	Inclusion      []rawTerm `json:"inclusion"`
	Exclusion      []rawTerm `json:"exclusion"`
	BrowserURL     string    `json:"browserUrl"`
}

// Term is a labeled term in an entity detail, optionally referencing
// another Foundation concept by id.
type Term struct {
	Label         string `json:"label"`
	FoundationRef string `json:"foundationRef,omitempty"`
}

// EntityDetail is the flattened, explorer-facing view of a Foundation
// entity: language wrappers unwrapped and URIs reduced to concept ids.
type EntityDetail struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Definition     string   `json:"definition,omitempty"`
	LongDefinition string   `json:"longDefinition,omitempty"`
	ParentIDs      []string `json:"parentIds,omitempty"`
	ChildIDs       []string `json:"childIds,omitempty"`
	Synonyms       []Term   `json:"synonyms,omitempty"`
	NarrowerTerms  []Term   `json:"narrowerTerms,omitempty"`
	Inclusions     []Term   `json:"inclusions,omitempty"`
	Exclusions     []Term   `json:"exclusions,omitempty"`
	BrowserURL     string   `json:"browserUrl,omitempty"`
}

// Detail flattens the raw entity into an EntityDetail.
func (e *Entity) Detail() *EntityDetail {
	return &EntityDetail{
		ID:             ExtractID(e.ID),
		Title:          e.Title.Value,
		Definition:     e.Definition.Value,
		LongDefinition: e.LongDefinition.Value,
		ParentIDs:      extractIDs(e.Parent),
		ChildIDs:       extractIDs(e.Child),
		Synonyms:       mapTerms(e.Synonym),
		NarrowerTerms:  mapTerms(e.NarrowerTerm),
		Inclusions:     mapTerms(e.Inclusion),
		Exclusions:     mapTerms(e.Exclusion),
		BrowserURL:     e.BrowserURL,
	}
}

func extractIDs(uris []string) []string {
	if len(uris) == 0 {
		return nil
	}
	ids := make([]string, len(uris))
	for i, u := range uris {
		ids[i] = ExtractID(u)
	}
	return ids
}

func mapTerms(raw []rawTerm) []Term {
	if len(raw) == 0 {
		return nil
	}
	terms := make([]Term, len(raw))
	for i, t := range raw {
		terms[i] = Term{Label: t.Label.Value}
		if t.FoundationRef != "" {
			terms[i].FoundationRef = ExtractID(t.FoundationRef)
		}
	}
	return terms
}
