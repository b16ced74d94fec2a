// Package store holds the memoized dataset snapshot. It loads the CSV file
// once, keeps the decoded table and its analysis behind a RWMutex, and
// reloads only when the file changes on disk (Run watches it with fsnotify).
// A failed load is recorded in the snapshot so every view can report it.
package store
