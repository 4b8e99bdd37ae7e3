// Package export publishes the cached snapshot as a JSON document.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	itemRepo "libas.GO/model/repository/item"
)

// Publisher pushes a file to the remote host with conditional update
// semantics. Satisfied by *ghub.Client.
type Publisher interface {
	PutFile(ctx context.Context, path string, content []byte, message string) (string, error)
}

// Result reports one export run.
type Result struct {
	Rows     int    `json:"rows"`
	Path     string `json:"path"`
	URL      string `json:"url,omitempty"`
	Uploaded bool   `json:"uploaded"`
}

// Service dumps the items table to a local JSON file and, when a publisher is
// configured, pushes it to the remote host.
type Service struct {
	items     *itemRepo.ItemRepository
	publisher Publisher
	localPath string
	remote    string
}

func NewService(items *itemRepo.ItemRepository, publisher Publisher, localPath string) *Service {
	return &Service{items: items, publisher: publisher, localPath: localPath, remote: "items.json"}
}

// Export writes the snapshot locally, then uploads it. A failed upload still
// leaves the local file in place and is reported in the returned error; the
// local write result is kept in Result either way.
func (s *Service) Export(ctx context.Context) (*Result, error) {
	items, err := s.items.All()
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.localPath, data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", s.localPath, err)
	}

	res := &Result{Rows: len(items), Path: s.localPath}
	if s.publisher == nil {
		return res, nil
	}
	msg := fmt.Sprintf("Auto update items.json %s", time.Now().UTC().Format(time.RFC3339))
	url, err := s.publisher.PutFile(ctx, s.remote, data, msg)
	if err != nil {
		return res, fmt.Errorf("upload %s: %w", s.remote, err)
	}
	res.URL = url
	res.Uploaded = true
	return res, nil
}
