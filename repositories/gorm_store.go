package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"blog-platform/metrics"
	"blog-platform/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore[D any] struct {
	db      *gorm.DB
	name    string
	empty   func() *D
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
}

// NewGormStore keeps the document as a JSON body in the documents table, keyed by name.
func NewGormStore[D any](db *gorm.DB, name string, empty func() *D, logger *zap.SugaredLogger, m *metrics.Metrics) DocumentStore[D] {
	return &gormStore[D]{
		db:      db,
		name:    name,
		empty:   empty,
		logger:  logger,
		metrics: m,
	}
}

func (s *gormStore[D]) Load(ctx context.Context) (*D, error) {
	var record models.DocumentRecord
	err := s.db.WithContext(ctx).Where("name = ?", s.name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warnw("Document missing, reinitializing", "document", s.name)
		s.metrics.RecordDocumentReset(ctx, s.name, "missing")
		return s.Initialize(ctx)
	}
	if err != nil {
		return nil, storeError("load", s.name, err)
	}

	doc := new(D)
	if err := json.Unmarshal([]byte(record.Body), doc); err != nil {
		s.logger.Errorw("Document corrupt, reinitializing", "document", s.name, "error", err)
		s.metrics.RecordDocumentReset(ctx, s.name, "corrupt")
		return s.Initialize(ctx)
	}
	normalize(doc)

	s.metrics.RecordDocumentLoad(ctx, s.name)
	return doc, nil
}

func (s *gormStore[D]) Save(ctx context.Context, doc *D) error {
	normalize(doc)
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.metrics.RecordDocumentSave(ctx, s.name, err)
		return storeError("encode", s.name, err)
	}

	record := models.DocumentRecord{
		Name:      s.name,
		Body:      string(body),
		UpdatedAt: time.Now().UTC(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(&record).Error

	s.metrics.RecordDocumentSave(ctx, s.name, err)
	if err != nil {
		s.logger.Errorw("Document save failed", "document", s.name, "error", err)
		return storeError("save", s.name, err)
	}
	return nil
}

func (s *gormStore[D]) Initialize(ctx context.Context) (*D, error) {
	doc := s.empty()
	normalize(doc)
	if err := s.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *gormStore[D]) Ensure(ctx context.Context) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.DocumentRecord{}).Where("name = ?", s.name).Count(&count).Error
	if err != nil {
		return storeError("check", s.name, err)
	}
	if count > 0 {
		return nil
	}
	s.logger.Infow("Creating empty document", "document", s.name)
	_, err = s.Initialize(ctx)
	return err
}
