package repository

import (
	"context"
	"encoding/json"

	"program_hub_backend/internal/model"
)

type ProgramRepository struct {
	GW *Gateway
}

func NewProgramRepository(gw *Gateway) *ProgramRepository {
	return &ProgramRepository{GW: gw}
}

// FindByID 返回课程及其文档版本，版本用于后续带校验的写回
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*model.Program, int64, error) {
	doc, err := r.GW.Get(ctx, CollectionPrograms, id)
	if err != nil {
		return nil, 0, err
	}

	var p model.Program
	if err := json.Unmarshal(doc.Data, &p); err != nil {
		return nil, 0, err
	}
	return &p, doc.Version, nil
}

func (r *ProgramRepository) FindAll(ctx context.Context) ([]model.Program, error) {
	docs, err := r.GW.List(ctx, CollectionPrograms)
	if err != nil {
		return nil, err
	}

	programs := make([]model.Program, 0, len(docs))
	for i := range docs {
		var p model.Program
		if err := json.Unmarshal(docs[i].Data, &p); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, nil
}

// FindBySlug 全量扫描按 slug 匹配；未命中返回 (nil, nil)
func (r *ProgramRepository) FindBySlug(ctx context.Context, slug string) (*model.Program, error) {
	programs, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range programs {
		if programs[i].Slug == slug {
			return &programs[i], nil
		}
	}
	return nil, nil
}

// Save 校验后整体写回；expectedVersion 不匹配时返回 ConflictError
func (r *ProgramRepository) Save(ctx context.Context, p *model.Program, expectedVersion int64) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}

	doc, err := r.GW.Upsert(ctx, CollectionPrograms, p.ID, data, expectedVersion)
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	return r.GW.Remove(ctx, CollectionPrograms, id)
}
