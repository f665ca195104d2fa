package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akolanti/MentorAPI/internal/config"
	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
)

// Two artifacts: the ordered chunk records with embeddings, and the
// per-document bookkeeping. They are always written together; a mismatch
// between them at load time means corruption.

type vectorData struct {
	Dimension int                          `json:"dimension"`
	Chunks    []commonModels.DocumentChunk `json:"chunks"`
}

type documentMeta struct {
	Documents []commonModels.DocumentMeta `json:"documents"`
}

func (s *FileStore) vectorPath() string {
	return filepath.Join(s.dir, config.VectorDataFile)
}

func (s *FileStore) metaPath() string {
	return filepath.Join(s.dir, config.DocumentMetaFile)
}

func (s *FileStore) load() error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}

	var vd vectorData
	var dm documentMeta
	vecFound, err := readJSON(s.vectorPath(), &vd)
	if err != nil {
		return err
	}
	metaFound, err := readJSON(s.metaPath(), &dm)
	if err != nil {
		return err
	}
	if vecFound != metaFound {
		return fmt.Errorf("store corrupted: only one of %s, %s exists", config.VectorDataFile, config.DocumentMetaFile)
	}
	if !vecFound {
		return nil //fresh store
	}

	//cross-check before trusting either artifact
	perDoc := make(map[string]int)
	for _, c := range vd.Chunks {
		perDoc[c.SourceFile]++
		if len(c.Embedding) != vd.Dimension {
			return fmt.Errorf("store corrupted: chunk %d of %q has dimension %d, header says %d",
				c.ChunkIndex, c.SourceFile, len(c.Embedding), vd.Dimension)
		}
	}
	total := 0
	seen := make(map[string]bool)
	for _, meta := range dm.Documents {
		if perDoc[meta.Filename] != meta.ChunkCount {
			return fmt.Errorf("store corrupted: %q has %d chunks in vector data, metadata says %d",
				meta.Filename, perDoc[meta.Filename], meta.ChunkCount)
		}
		if seen[meta.Fingerprint] {
			return fmt.Errorf("store corrupted: duplicate fingerprint %s", meta.Fingerprint)
		}
		seen[meta.Fingerprint] = true
		total += meta.ChunkCount
	}
	if total != len(vd.Chunks) {
		return fmt.Errorf("store corrupted: %d chunks in vector data, metadata accounts for %d", len(vd.Chunks), total)
	}

	s.dimension = vd.Dimension
	s.chunks = vd.Chunks
	for _, meta := range dm.Documents {
		s.docs[meta.Filename] = meta
		s.docOrder = append(s.docOrder, meta.Filename)
	}
	return nil
}

// persist writes both artifacts. Callers hold the write lock.
func (s *FileStore) persist() error {
	vd := vectorData{Dimension: s.dimension, Chunks: s.chunks}
	dm := documentMeta{Documents: make([]commonModels.DocumentMeta, 0, len(s.docOrder))}
	for _, name := range s.docOrder {
		dm.Documents = append(dm.Documents, s.docs[name])
	}

	if err := writeJSON(s.vectorPath(), vd); err != nil {
		return err
	}
	return writeJSON(s.metaPath(), dm)
}

func readJSON(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("store corrupted: parsing %s: %w", path, err)
	}
	return true, nil
}

// writeJSON goes through a temp file and rename so readers of the
// artifact never see a partial write.
func writeJSON(path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
