package webapp

import (
	"os"
	"path/filepath"
	"sync"
)

// redirectSink collects the navigation target requested by a session
// operation so the handler that triggered it can answer with an HTTP
// redirect. The app owns one backend session, so a single pending slot
// is enough.
type redirectSink struct {
	mu   sync.Mutex
	path string
	set  bool
}

func (r *redirectSink) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
	r.set = true
}

// Consume returns and clears the pending redirect.
func (r *redirectSink) Consume() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, set := r.path, r.set
	r.path, r.set = "", false
	return path, set
}

// Toast is a transient notification queued for the UI.
type Toast struct {
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
}

// toastQueue buffers notifications until the UI drains them.
type toastQueue struct {
	mu     sync.Mutex
	toasts []Toast
}

func (q *toastQueue) Success(msg string) { q.push(Toast{Level: "success", Message: msg}) }
func (q *toastQueue) Error(msg string)   { q.push(Toast{Level: "error", Message: msg}) }

func (q *toastQueue) push(t Toast) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.toasts = append(q.toasts, t)
}

// Drain returns all queued toasts and empties the queue.
func (q *toastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.toasts
	q.toasts = nil
	return out
}

// downloadSaver writes downloaded content into the configured directory.
type downloadSaver struct {
	dir string
}

func (d downloadSaver) Save(name string, content []byte) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.dir, filepath.Base(name)), content, 0o644)
}
