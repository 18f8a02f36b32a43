package sources

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testVideoID = "dQw4w9WgXcQ"

// fakeYouTube serves every upstream the strategies talk to. Handlers that
// are not set answer 404.
type fakeYouTube struct {
	srv *httptest.Server

	player, next, getTranscript, watch, timedText http.HandlerFunc

	mu   sync.Mutex
	hits map[string]int
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	t.Helper()
	f := &fakeYouTube{hits: map[string]int{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeYouTube) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.mu.Unlock()

	var h http.HandlerFunc
	switch r.URL.Path {
	case "/youtubei/v1/player":
		h = f.player
	case "/youtubei/v1/next":
		h = f.next
	case "/youtubei/v1/get_transcript":
		h = f.getTranscript
	case "/watch":
		h = f.watch
	case "/api/timedtext":
		h = f.timedText
	}
	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeYouTube) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeYouTube) endpoints() *Endpoints {
	return &Endpoints{
		Player:        f.srv.URL + "/youtubei/v1/player",
		Next:          f.srv.URL + "/youtubei/v1/next",
		GetTranscript: f.srv.URL + "/youtubei/v1/get_transcript",
		Watch:         f.srv.URL + "/watch",
		TimedText:     f.srv.URL + "/api/timedtext",
	}
}

func (f *fakeYouTube) options() Options {
	return Options{
		Language:   "en",
		Endpoints:  f.endpoints(),
		SettleWait: 20 * time.Millisecond,
	}
}

func (f *fakeYouTube) session() *Session {
	s := NewSession(testVideoID, "en", *f.endpoints(), nil)
	s.SettleWait = 20 * time.Millisecond
	return s
}

func writeBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func fail(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

const srv3Payload = `<?xml version="1.0" encoding="utf-8" ?><timedtext format="3"><body>
<p t="0" d="1500">Hello &amp; welcome</p>
<p t="1500" d="2000">to the show</p>
<p t="40000" d="1000">later on</p>
</body></timedtext>`

const vttPayload = "WEBVTT\n\n00:00:01.000 --> 00:00:02.500\n<c>from vtt</c>\n"

// recorder collects values seen by handlers.
type recorder struct {
	mu   sync.Mutex
	vals []string
}

func (r *recorder) add(v string) {
	r.mu.Lock()
	r.vals = append(r.vals, v)
	r.mu.Unlock()
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.vals...)
}
