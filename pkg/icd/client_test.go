package icd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polynav/polynav/pkg/config"
	"github.com/polynav/polynav/pkg/errors"
	"github.com/polynav/polynav/pkg/httputil"
	"github.com/polynav/polynav/pkg/store"
)

// testConfig points the client at a test server over the local entry.
func testConfig(serverURL string) config.Config {
	cfg := config.Default()
	cfg.Servers["local"] = serverURL
	return cfg
}

func entityJSON(id, title string, children ...string) string {
	childJSON := ""
	for i, c := range children {
		if i > 0 {
			childJSON += ","
		}
		childJSON += fmt.Sprintf("%q", "http://id.who.int/icd/entity/"+c)
	}
	return fmt.Sprintf(`{
		"@id": "http://id.who.int/icd/entity/%s",
		"title": {"@value": %q},
		"child": [%s]
	}`, id, title, childJSON)
}

func TestClient_Entity(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/icd/entity/1435254666":
			fmt.Fprint(w, entityJSON("1435254666", "Diseases of the immune system", "1954798891"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	st := store.NewMemoryStore()
	c := NewClient(testConfig(srv.URL), st, nil, nil)

	t.Run("fetchAndCache", func(t *testing.T) {
		e, err := c.Entity(context.Background(), "1435254666")
		if err != nil {
			t.Fatalf("Entity() failed: %v", err)
		}
		if e.Title.Value != "Diseases of the immune system" {
			t.Errorf("got title %q", e.Title.Value)
		}

		// Second call must come from the store.
		before := hits.Load()
		if _, err := c.Entity(context.Background(), "1435254666"); err != nil {
			t.Fatalf("cached Entity() failed: %v", err)
		}
		if hits.Load() != before {
			t.Errorf("cached lookup hit the server (%d extra requests)", hits.Load()-before)
		}
	})

	t.Run("notFound", func(t *testing.T) {
		_, err := c.Entity(context.Background(), "999999")
		if !errors.Is(err, errors.ErrCodeEntityNotFound) {
			t.Errorf("got %v, want ENTITY_NOT_FOUND", err)
		}
	})

	t.Run("invalidID", func(t *testing.T) {
		_, err := c.Entity(context.Background(), "../etc/passwd")
		if !errors.Is(err, errors.ErrCodeInvalidEntity) {
			t.Errorf("got %v, want INVALID_ENTITY", err)
		}
	})
}

func TestClient_Entity_root(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/icd/entity" {
			t.Errorf("root fetched via %q, want /icd/entity", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, entityJSON("root", "ICD-11 Foundation", "1435254666"))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), store.NewMemoryStore(), nil, nil)
	e, err := c.Entity(context.Background(), "root")
	if err != nil {
		t.Fatalf("Entity(root) failed: %v", err)
	}
	if e.Title.Value != "ICD-11 Foundation" {
		t.Errorf("got title %q", e.Title.Value)
	}
}

func TestClient_Entity_headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("API-Version"); got != "v2" {
			t.Errorf("got API-Version %q, want v2", got)
		}
		if got := r.Header.Get("Accept-Language"); got != "en" {
			t.Errorf("got Accept-Language %q, want en", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("got Accept %q", got)
		}
		fmt.Fprint(w, entityJSON("7", "x"))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), store.NewMemoryStore(), nil, nil)
	if _, err := c.Entity(context.Background(), "7"); err != nil {
		t.Fatalf("Entity() failed: %v", err)
	}
}

func TestClient_Entity_coalesced(t *testing.T) {
	var hits atomic.Int64
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		fmt.Fprint(w, entityJSON("42", "shared"))
	}))
	defer srv.Close()

	// No store: every lookup would go upstream without coalescing.
	c := NewClient(testConfig(srv.URL), nil, nil, nil)

	const callers = 8
	var wg, ready sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		ready.Add(1)
		go func() {
			defer wg.Done()
			ready.Done()
			_, errs[i] = c.Entity(context.Background(), "42")
		}()
	}
	ready.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("caller %d: %v", i, err)
		}
	}
	if n := hits.Load(); n > 2 {
		t.Errorf("got %d upstream requests for %d concurrent callers", n, callers)
	}
}

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/icd/entity/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("q"); got != "diabetes" {
			t.Errorf("got query %q, want diabetes", got)
		}
		fmt.Fprint(w, `{"destinationEntities": [
			{"id": "http://id.who.int/icd/entity/1697306310", "title": "<em class='found'>Diabetes</em> mellitus", "score": 0.96},
			{"id": "http://id.who.int/icd/entity/119724091", "title": "Gestational diabetes", "score": 0.41}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), store.NewMemoryStore(), nil, nil)
	hits, err := c.Search(context.Background(), "diabetes")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].ID != "1697306310" {
		t.Errorf("got first hit id %q", hits[0].ID)
	}
	if hits[0].Title != "Diabetes mellitus" {
		t.Errorf("search markup not stripped: %q", hits[0].Title)
	}
	if hits[1].Score != 0.41 {
		t.Errorf("got score %v, want 0.41", hits[1].Score)
	}
}

func TestClient_MMSEntity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/icd/release/11/2024-01/mms/123456" {
			t.Errorf("got path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"@id": "http://id.who.int/icd/release/11/2024-01/mms/123456", "code": "1A00"}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), store.NewMemoryStore(), nil, nil)
	raw, err := c.MMSEntity(context.Background(), "123456")
	if err != nil {
		t.Fatalf("MMSEntity() failed: %v", err)
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Code != "1A00" {
		t.Errorf("got code %q, want 1A00", body.Code)
	}
}

func TestClient_CodeInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/icd/release/11/2024-01/mms/codeinfo/1A00" {
			t.Errorf("got path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"code": "1A00", "stemId": "http://id.who.int/icd/release/11/2024-01/mms/123456"}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), store.NewMemoryStore(), nil, nil)
	raw, err := c.CodeInfo(context.Background(), "1A00")
	if err != nil {
		t.Fatalf("CodeInfo() failed: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("CodeInfo() returned an empty body")
	}

	if _, err := c.CodeInfo(context.Background(), "1A00/other"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT for a code with a path separator", err)
	}
}

func TestClient_Search_cached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"destinationEntities": [
			{"id": "http://id.who.int/icd/entity/1697306310", "title": "Diabetes mellitus", "score": 0.96}
		]}`)
	}))
	defer srv.Close()

	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(testConfig(srv.URL), store.NewMemoryStore(), cache, nil)

	for i := 0; i < 2; i++ {
		got, err := c.Search(context.Background(), "diabetes")
		if err != nil {
			t.Fatalf("Search() call %d failed: %v", i+1, err)
		}
		if len(got) != 1 || got[0].ID != "1697306310" {
			t.Fatalf("Search() call %d returned %+v", i+1, got)
		}
	}

	if n := hits.Load(); n != 1 {
		t.Errorf("got %d upstream requests, want 1 (second search should be served from cache)", n)
	}
}

func TestClient_Search_invalidQuery(t *testing.T) {
	c := NewClient(config.Default(), store.NewMemoryStore(), nil, nil)
	if _, err := c.Search(context.Background(), ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}
