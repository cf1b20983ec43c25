package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"blog-platform/metrics"
	"blog-platform/models"

	"go.uber.org/zap"
)

// DocumentStore persists one whole document of type D.
//
// Load never fails because the stored document is missing or unreadable: it
// reinitializes the document to empty collections, persists that and returns it.
type DocumentStore[D any] interface {
	Load(ctx context.Context) (*D, error)
	Save(ctx context.Context, doc *D) error
	Initialize(ctx context.Context) (*D, error)
	// Ensure creates the empty document if nothing is stored yet.
	Ensure(ctx context.Context) error
}

type normalizer interface {
	Normalize()
}

func normalize[D any](doc *D) {
	if n, ok := any(doc).(normalizer); ok {
		n.Normalize()
	}
}

func storeError(op, name string, err error) error {
	return models.ErrorInternalServer{Op: op + " " + name + " document", Err: err}
}

type fileStore[D any] struct {
	path    string
	name    string
	empty   func() *D
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

// NewFileStore keeps the document as indented JSON in the file at path.
func NewFileStore[D any](name, path string, empty func() *D, logger *zap.SugaredLogger, m *metrics.Metrics) DocumentStore[D] {
	return &fileStore[D]{
		path:    path,
		name:    name,
		empty:   empty,
		logger:  logger,
		metrics: m,
	}
}

func (s *fileStore[D]) Load(ctx context.Context) (*D, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warnw("Document unreadable, reinitializing",
			"document", s.name,
			"path", s.path,
			"error", err,
		)
		s.metrics.RecordDocumentReset(ctx, s.name, "unreadable")
		return s.Initialize(ctx)
	}

	doc := new(D)
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Errorw("Document corrupt, reinitializing",
			"document", s.name,
			"path", s.path,
			"error", err,
		)
		s.metrics.RecordDocumentReset(ctx, s.name, "corrupt")
		return s.Initialize(ctx)
	}
	normalize(doc)

	s.metrics.RecordDocumentLoad(ctx, s.name)
	return doc, nil
}

// Save writes to a temporary file next to the target and renames it over the
// target, so a reader never sees a half written document.
func (s *fileStore[D]) Save(ctx context.Context, doc *D) error {
	err := s.write(doc)
	s.metrics.RecordDocumentSave(ctx, s.name, err)
	if err != nil {
		s.logger.Errorw("Document save failed", "document", s.name, "path", s.path, "error", err)
		return storeError("save", s.name, err)
	}
	return nil
}

func (s *fileStore[D]) write(doc *D) error {
	normalize(doc)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}

func (s *fileStore[D]) Initialize(ctx context.Context) (*D, error) {
	doc := s.empty()
	normalize(doc)
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *fileStore[D]) Ensure(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return storeError("stat", s.name, err)
	}
	s.logger.Infow("Creating empty document", "document", s.name, "path", s.path)
	_, err = s.Initialize(ctx)
	return err
}
