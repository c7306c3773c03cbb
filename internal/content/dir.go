package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DirSource reads <Dir>/<id>.md. Include and Exclude are doublestar
// patterns over file names; an excluded file behaves as missing.
type DirSource struct {
	Dir     string
	Include []string
	Exclude []string
}

// Fetch reads the article file.
func (s *DirSource) Fetch(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &FetchError{ID: id, Err: err}
	}
	if !ValidID(id) {
		return "", &FetchError{ID: id, Status: http.StatusNotFound, Err: ErrInvalidID}
	}
	name := id + ".md"
	if !s.allowed(name) {
		return "", &FetchError{ID: id, Status: http.StatusNotFound, Err: ErrNotFound}
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &FetchError{ID: id, Status: http.StatusNotFound, Err: ErrNotFound}
		}
		return "", &FetchError{ID: id, Err: err}
	}
	return string(data), nil
}

// List returns the ids of every article file in Dir, sorted.
func (s *DirSource) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir: %w", err)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".md") || !s.allowed(name) {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		if ValidID(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Path returns the file backing id.
func (s *DirSource) Path(id string) string {
	return filepath.Join(s.Dir, id+".md")
}

func (s *DirSource) allowed(name string) bool {
	return MatchesInclude(name, s.Include) && !MatchesExclude(name, s.Exclude)
}
