package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const cacheTTL = 24 * time.Hour

// RedisCache 远端读结果的 Redis 快照；仅作降级兜底，不做权威存储
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

func docKey(collection, id string) string {
	return "doc:" + collection + ":" + id
}

func setKey(collection string) string {
	return "docs:" + collection
}

func (c *RedisCache) Get(ctx context.Context, collection, id string) (*Document, error) {
	raw, err := c.Client.Get(ctx, docKey(collection, id)).Bytes()
	if err == redis.Nil {
		return nil, &NotFoundError{Collection: collection, ID: id}
	}
	if err != nil {
		return nil, &TransientStoreError{Op: "cache get", Err: err}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *RedisCache) GetAll(ctx context.Context, collection string) ([]Document, error) {
	ids, err := c.Client.SMembers(ctx, setKey(collection)).Result()
	if err != nil {
		return nil, &TransientStoreError{Op: "cache list", Err: err}
	}
	if len(ids) == 0 {
		return nil, &NotFoundError{Collection: collection, ID: "*"}
	}

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		doc, err := c.Get(ctx, collection, id)
		if err != nil {
			// 个别键过期时跳过，整体快照仍可用
			continue
		}
		docs = append(docs, *doc)
	}
	if len(docs) == 0 {
		return nil, &NotFoundError{Collection: collection, ID: "*"}
	}
	return docs, nil
}

func (c *RedisCache) Put(ctx context.Context, collection string, doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	pipe := c.Client.TxPipeline()
	pipe.Set(ctx, docKey(collection, doc.ID), raw, cacheTTL)
	pipe.SAdd(ctx, setKey(collection), doc.ID)
	pipe.Expire(ctx, setKey(collection), cacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return &TransientStoreError{Op: "cache put", Err: err}
	}
	return nil
}

func (c *RedisCache) PutAll(ctx context.Context, collection string, docs []Document) error {
	for i := range docs {
		if err := c.Put(ctx, collection, &docs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *RedisCache) Remove(ctx context.Context, collection, id string) error {
	pipe := c.Client.TxPipeline()
	pipe.Del(ctx, docKey(collection, id))
	pipe.SRem(ctx, setKey(collection), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return &TransientStoreError{Op: "cache remove", Err: err}
	}
	return nil
}
