package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound indicates that no transcript file could be located. Callers
// are expected to fall back to a generic notification rather than fail.
var ErrNotFound = errors.New("transcript not found")

// Resolve returns the transcript file to parse. Resolution order:
//
//  1. path, if it names an existing readable file.
//  2. The most recently modified <sessionID>.jsonl under
//     claudeHome/projects/.
//  3. ErrNotFound.
func Resolve(path, sessionID, claudeHome string) (string, error) {
	if path != "" {
		if f, err := os.Open(path); err == nil {
			f.Close()
			return path, nil
		}
	}

	if sessionID != "" {
		if found := findSessionFile(claudeHome, sessionID); found != "" {
			return found, nil
		}
	}

	return "", ErrNotFound
}

// findSessionFile scans claudeHome/projects/*/ for the session's JSONL file
// and returns the most recently modified match, or "" when none exists.
func findSessionFile(claudeHome, sessionID string) string {
	projectsDir := filepath.Join(claudeHome, "projects")
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return ""
	}

	want := sessionID + ".jsonl"
	var newest string
	var newestMod time.Time

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(projectsDir, entry.Name(), want)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest = candidate
			newestMod = info.ModTime()
		}
	}
	return newest
}

// SessionID derives a session identifier from a transcript path by
// stripping the .jsonl extension from the filename.
func SessionID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}
