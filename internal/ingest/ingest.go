package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docqa/internal/domain"
)

// FileIngestor reads plain-text documents from disk. It stands in for the
// heavier PDF/image extraction pipeline behind the same ingestion contract:
// extracted text plus opaque metadata.
type FileIngestor struct{}

func NewFileIngestor() *FileIngestor {
	return &FileIngestor{}
}

var supportedExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
}

// Ingest reads the file and returns its text with basic file metadata.
func (f *FileIngestor) Ingest(path string) (domain.IngestResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return domain.IngestResult{}, fmt.Errorf("unsupported format %q (supported: txt, md)", ext)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("stat document: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.IngestResult{}, fmt.Errorf("read document: %w", err)
	}

	return domain.IngestResult{
		Text: string(data),
		Metadata: map[string]any{
			"format":    strings.TrimPrefix(ext, "."),
			"file_name": filepath.Base(path),
			"file_size": stat.Size(),
		},
	}, nil
}
