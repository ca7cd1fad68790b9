package repository

import (
	"context"
	"encoding/json"
	"time"
)

// 持久化集合名；文档以实体 id 为键，周/元素/条目以嵌套数组内联
const (
	CollectionPrograms    = "programs"
	CollectionUsers       = "users"
	CollectionVouchers    = "vouchers"
	CollectionBanners     = "banners"
	CollectionDiscussions = "discussions"
)

// VersionAny 跳过乐观版本校验（用户文档由本人会话独占写入时使用）
// VersionNew 要求文档尚不存在（创建语义）
const (
	VersionAny int64 = -1
	VersionNew int64 = 0
)

// Document 存储层返回的文档快照
type Document struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store 文档存储的统一能力面。Upsert 为浅合并：patch 中出现的顶层字段
// 覆盖已存字段，未出现的保留；调用方提供全部字段时等价于整体替换
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string) ([]Document, error)
	Upsert(ctx context.Context, collection, id string, patch json.RawMessage, expectedVersion int64) (*Document, error)
	Remove(ctx context.Context, collection, id string) error
}

// SnapshotCache 远端读结果的本地快照，读取为同步操作
type SnapshotCache interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	GetAll(ctx context.Context, collection string) ([]Document, error)
	Put(ctx context.Context, collection string, doc *Document) error
	PutAll(ctx context.Context, collection string, docs []Document) error
	Remove(ctx context.Context, collection, id string) error
}

// mergePatch 对已存文档做顶层字段浅合并
func mergePatch(existing, patch json.RawMessage) (json.RawMessage, error) {
	base := map[string]json.RawMessage{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &base); err != nil {
			return nil, err
		}
	}

	overlay := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return nil, err
	}

	for k, v := range overlay {
		base[k] = v
	}
	return json.Marshal(base)
}
