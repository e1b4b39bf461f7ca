package lci_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"lci-gateway/pkg/lci"
)

type recordedPost struct {
	Item   string
	Body   string
	Accept string
}

// fakeGateway serves /rest/things/ and /rest/items/ from memory and records
// every write.
type fakeGateway struct {
	server *httptest.Server

	mu         sync.Mutex
	things     string
	items      map[string]string
	posts      []recordedPost
	gets       []string
	postStatus int
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{
		things:     "[]",
		items:      make(map[string]string),
		postStatus: http.StatusOK,
	}
	g.server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.server.Close)
	return g
}

func (g *fakeGateway) serve(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r.URL.Path == "/rest/things/" && r.Method == http.MethodGet {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, g.things)
		return
	}

	item, ok := strings.CutPrefix(r.URL.Path, "/rest/items/")
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		g.gets = append(g.gets, item)
		state, ok := g.items[item]
		if !ok {
			http.Error(w, `{"error":{"message":"Item not found"}}`, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"link":  g.server.URL + r.URL.Path,
			"state": state,
		})
	case http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		g.posts = append(g.posts, recordedPost{Item: item, Body: string(body), Accept: r.Header.Get("Accept")})
		w.WriteHeader(g.postStatus)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (g *fakeGateway) client() *lci.Client {
	return lci.NewClient(g.server.URL + "/")
}

func (g *fakeGateway) setItem(name, state string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items[name] = state
}

func (g *fakeGateway) setThings(raw string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.things = raw
}

func (g *fakeGateway) setPostStatus(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.postStatus = code
}

func (g *fakeGateway) recordedPosts() []recordedPost {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]recordedPost(nil), g.posts...)
}

func (g *fakeGateway) getCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.gets)
}

func newThing(uid, label string, code float64) lci.Thing {
	return lci.Thing{
		UID:           uid,
		Label:         label,
		Configuration: lci.Configuration{DeviceType: &code},
	}
}
