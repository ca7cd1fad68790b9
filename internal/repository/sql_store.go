package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRecord documents 表的行结构；(collection, doc_id) 唯一
type DocumentRecord struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	Collection string         `gorm:"size:64;not null;uniqueIndex:idx_collection_doc,priority:1"`
	DocID      string         `gorm:"size:64;not null;uniqueIndex:idx_collection_doc,priority:2"`
	Data       datatypes.JSON `gorm:"not null"`
	Version    int64          `gorm:"not null;default:1"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DocumentRecord) TableName() string {
	return "documents"
}

// SQLStore 远端持久存储：MySQL 单表 JSON 文档
type SQLStore struct {
	DB *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var row DocumentRecord
	err := s.DB.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Collection: collection, ID: id}
		}
		return nil, &TransientStoreError{Op: "get", Err: err}
	}
	return rowToDocument(&row), nil
}

func (s *SQLStore) List(ctx context.Context, collection string) ([]Document, error) {
	var rows []DocumentRecord
	err := s.DB.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_id").
		Find(&rows).Error
	if err != nil {
		return nil, &TransientStoreError{Op: "list", Err: err}
	}

	docs := make([]Document, len(rows))
	for i := range rows {
		docs[i] = *rowToDocument(&rows[i])
	}
	return docs, nil
}

func (s *SQLStore) Upsert(ctx context.Context, collection, id string, patch json.RawMessage, expectedVersion int64) (*Document, error) {
	var result *Document

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row DocumentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND doc_id = ?", collection, id).
			First(&row).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if expectedVersion != VersionAny && expectedVersion != VersionNew {
				return &ConflictError{Collection: collection, ID: id, ExpectedVersion: expectedVersion}
			}
			merged, mErr := mergePatch(nil, patch)
			if mErr != nil {
				return mErr
			}
			row = DocumentRecord{
				Collection: collection,
				DocID:      id,
				Data:       datatypes.JSON(merged),
				Version:    1,
			}
			if cErr := tx.Create(&row).Error; cErr != nil {
				return &TransientStoreError{Op: "upsert", Err: cErr}
			}
			result = rowToDocument(&row)
			return nil
		}
		if err != nil {
			return &TransientStoreError{Op: "upsert", Err: err}
		}

		if expectedVersion == VersionNew {
			return &ConflictError{Collection: collection, ID: id, ExpectedVersion: expectedVersion, ActualVersion: row.Version}
		}
		if expectedVersion != VersionAny && expectedVersion != row.Version {
			return &ConflictError{Collection: collection, ID: id, ExpectedVersion: expectedVersion, ActualVersion: row.Version}
		}

		merged, mErr := mergePatch(json.RawMessage(row.Data), patch)
		if mErr != nil {
			return mErr
		}
		row.Data = datatypes.JSON(merged)
		row.Version++
		if sErr := tx.Save(&row).Error; sErr != nil {
			return &TransientStoreError{Op: "upsert", Err: sErr}
		}
		result = rowToDocument(&row)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLStore) Remove(ctx context.Context, collection, id string) error {
	res := s.DB.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&DocumentRecord{})
	if res.Error != nil {
		return &TransientStoreError{Op: "remove", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Collection: collection, ID: id}
	}
	return nil
}

func rowToDocument(row *DocumentRecord) *Document {
	data := make(json.RawMessage, len(row.Data))
	copy(data, row.Data)
	return &Document{
		ID:        row.DocID,
		Data:      data,
		Version:   row.Version,
		UpdatedAt: row.UpdatedAt,
	}
}
