// Package history persists sent documents and the responses they got as numbered file pairs:
// <n>.request.txt and <n>.response.json.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/renameio/v2"

	"github.com/Mohammadwh/Graphqler/graphqljson"
)

const (
	requestSuffix  = ".request.txt"
	responseSuffix = ".response.json"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the pair under the next free id and returns the id.
func (s *Store) Save(query string, response jsontext.Value) (int, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create log directory: %w", err)
	}

	last, err := s.Last()
	if err != nil {
		return 0, err
	}
	id := last + 1

	if err := renameio.WriteFile(s.RequestPath(id), []byte(query), 0o644); err != nil {
		return 0, fmt.Errorf("write request log: %w", err)
	}

	pretty, err := graphqljson.Indent(response)
	if err != nil {
		return 0, err
	}
	if err := renameio.WriteFile(s.ResponsePath(id), []byte(pretty), 0o644); err != nil {
		return 0, fmt.Errorf("write response log: %w", err)
	}

	return id, nil
}

// Last returns the highest id in the store, 0 when it is empty or missing.
func (s *Store) Last() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read log directory: %w", err)
	}

	last := 0
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), requestSuffix)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		last = max(last, id)
	}

	return last, nil
}

func (s *Store) RequestPath(id int) string {
	return filepath.Join(s.dir, strconv.Itoa(id)+requestSuffix)
}

func (s *Store) ResponsePath(id int) string {
	return filepath.Join(s.dir, strconv.Itoa(id)+responseSuffix)
}
