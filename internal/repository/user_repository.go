package repository

import (
	"context"
	"encoding/json"
	"time"

	"program_hub_backend/internal/model"
)

type UserRepository struct {
	GW *Gateway
}

func NewUserRepository(gw *Gateway) *UserRepository {
	return &UserRepository{GW: gw}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := r.GW.Get(ctx, CollectionUsers, id)
	if err != nil {
		return nil, err
	}

	var u model.User
	if err := json.Unmarshal(doc.Data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	docs, err := r.GW.List(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(docs))
	for i := range docs {
		var u model.User
		if err := json.Unmarshal(docs[i].Data, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// FindByEmail 全量扫描按邮箱匹配；未命中返回 (nil, nil)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Save 用户文档由本人会话独占写入，跳过版本校验
func (r *UserRepository) Save(ctx context.Context, u *model.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(u)
	if err != nil {
		return err
	}

	_, err = r.GW.Upsert(ctx, CollectionUsers, u.ID, data, VersionAny)
	return err
}

// UpdateLastSeen 活跃时间戳的轻量合并写
func (r *UserRepository) UpdateLastSeen(ctx context.Context, id string) error {
	patch, err := json.Marshal(map[string]time.Time{"lastSeen": time.Now()})
	if err != nil {
		return err
	}
	_, err = r.GW.Upsert(ctx, CollectionUsers, id, patch, VersionAny)
	return err
}
