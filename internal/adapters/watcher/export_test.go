package watcher

// ShouldSkip exposes the ignored directory check to tests.
func ShouldSkip(w *Watcher, name string) bool {
	return w.shouldSkip(name)
}
