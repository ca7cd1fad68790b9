package repository

import (
	"context"
	"encoding/json"
	"sort"

	"program_hub_backend/internal/model"
)

type DiscussionRepository struct {
	GW *Gateway
}

func NewDiscussionRepository(gw *Gateway) *DiscussionRepository {
	return &DiscussionRepository{GW: gw}
}

func (r *DiscussionRepository) FindByID(ctx context.Context, id string) (*model.Discussion, error) {
	doc, err := r.GW.Get(ctx, CollectionDiscussions, id)
	if err != nil {
		return nil, err
	}

	var d model.Discussion
	if err := json.Unmarshal(doc.Data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByProgram 按课程过滤，发帖时间倒序
func (r *DiscussionRepository) FindByProgram(ctx context.Context, programID string) ([]model.Discussion, error) {
	docs, err := r.GW.List(ctx, CollectionDiscussions)
	if err != nil {
		return nil, err
	}

	messages := make([]model.Discussion, 0, len(docs))
	for i := range docs {
		var d model.Discussion
		if err := json.Unmarshal(docs[i].Data, &d); err != nil {
			return nil, err
		}
		if d.ProgramID == programID {
			messages = append(messages, d)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *DiscussionRepository) Save(ctx context.Context, d *model.Discussion) error {
	if err := d.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}

	_, err = r.GW.Upsert(ctx, CollectionDiscussions, d.ID, data, VersionAny)
	return err
}

func (r *DiscussionRepository) Delete(ctx context.Context, id string) error {
	return r.GW.Remove(ctx, CollectionDiscussions, id)
}
