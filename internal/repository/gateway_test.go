package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore 模拟远端不可达，所有操作都返回瞬时错误
type failingStore struct{}

func (failingStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	return nil, &TransientStoreError{Op: "get", Err: context.DeadlineExceeded}
}

func (failingStore) List(ctx context.Context, collection string) ([]Document, error) {
	return nil, &TransientStoreError{Op: "list", Err: context.DeadlineExceeded}
}

func (failingStore) Upsert(ctx context.Context, collection, id string, patch json.RawMessage, expectedVersion int64) (*Document, error) {
	return nil, &TransientStoreError{Op: "upsert", Err: context.DeadlineExceeded}
}

func (failingStore) Remove(ctx context.Context, collection, id string) error {
	return &TransientStoreError{Op: "remove", Err: context.DeadlineExceeded}
}

func TestUpsertMergesTopLevelFields(t *testing.T) {
	gw := NewGateway(NewMemoryStore(), NewMemorySnapshotCache())
	ctx := context.Background()

	_, err := gw.Upsert(ctx, CollectionPrograms, "p1",
		json.RawMessage(`{"title":"入职培训","tags":["hr"]}`), VersionNew)
	require.NoError(t, err)

	// 只更新 title，tags 必须保留
	doc, err := gw.Upsert(ctx, CollectionPrograms, "p1",
		json.RawMessage(`{"title":"入职培训 V2"}`), 1)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Data, &data))
	assert.Equal(t, "入职培训 V2", data["title"])
	assert.Equal(t, []interface{}{"hr"}, data["tags"])
	assert.Equal(t, int64(2), doc.Version)
}

func TestUpsertVersionConflict(t *testing.T) {
	gw := NewGateway(NewMemoryStore(), NewMemorySnapshotCache())
	ctx := context.Background()

	_, err := gw.Upsert(ctx, CollectionPrograms, "p1", json.RawMessage(`{"title":"v1"}`), VersionNew)
	require.NoError(t, err)

	// 过期版本写入被拒绝
	_, err = gw.Upsert(ctx, CollectionPrograms, "p1", json.RawMessage(`{"title":"stale"}`), 99)
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	// VersionNew 对已存在文档同样冲突
	_, err = gw.Upsert(ctx, CollectionPrograms, "p1", json.RawMessage(`{"title":"dup"}`), VersionNew)
	assert.True(t, IsConflict(err))

	// VersionAny 跳过校验
	doc, err := gw.Upsert(ctx, CollectionPrograms, "p1", json.RawMessage(`{"title":"any"}`), VersionAny)
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.Version)
}

func TestGetFallsBackToSnapshotOnTransientError(t *testing.T) {
	cache := NewMemorySnapshotCache()
	ctx := context.Background()

	// 先用健康的存储写入一份，填充快照
	healthy := NewGateway(NewMemoryStore(), cache)
	_, err := healthy.Upsert(ctx, CollectionPrograms, "p1", json.RawMessage(`{"title":"缓存版"}`), VersionNew)
	require.NoError(t, err)

	// 远端故障后同一快照依然可读
	degraded := NewGateway(failingStore{}, cache)
	doc, err := degraded.Get(ctx, CollectionPrograms, "p1")
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(doc.Data, &data))
	assert.Equal(t, "缓存版", data["title"])
}

func TestListFallsBackToSnapshot(t *testing.T) {
	cache := NewMemorySnapshotCache()
	ctx := context.Background()

	healthy := NewGateway(NewMemoryStore(), cache)
	for _, id := range []string{"a", "b"} {
		_, err := healthy.Upsert(ctx, CollectionUsers, id, json.RawMessage(`{"name":"x"}`), VersionNew)
		require.NoError(t, err)
	}
	// List 成功时刷新整集合快照
	_, err := healthy.List(ctx, CollectionUsers)
	require.NoError(t, err)

	degraded := NewGateway(failingStore{}, cache)
	docs, err := degraded.List(ctx, CollectionUsers)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestTransientErrorWithoutSnapshotSurfaces(t *testing.T) {
	degraded := NewGateway(failingStore{}, NewMemorySnapshotCache())

	_, err := degraded.Get(context.Background(), CollectionPrograms, "missing")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
}

func TestWritesNeverHitCacheOnFailure(t *testing.T) {
	cache := NewMemorySnapshotCache()
	degraded := NewGateway(failingStore{}, cache)
	ctx := context.Background()

	_, err := degraded.Upsert(ctx, CollectionPrograms, "p1", json.RawMessage(`{"title":"x"}`), VersionNew)
	require.Error(t, err)

	// 写失败不得污染快照
	_, err = cache.Get(ctx, CollectionPrograms, "p1")
	assert.True(t, IsNotFound(err))
}

func TestRemoveDeletesFromStoreAndSnapshot(t *testing.T) {
	cache := NewMemorySnapshotCache()
	gw := NewGateway(NewMemoryStore(), cache)
	ctx := context.Background()

	_, err := gw.Upsert(ctx, CollectionBanners, "b1", json.RawMessage(`{"title":"x"}`), VersionNew)
	require.NoError(t, err)

	require.NoError(t, gw.Remove(ctx, CollectionBanners, "b1"))

	_, err = gw.Get(ctx, CollectionBanners, "b1")
	assert.True(t, IsNotFound(err))
	_, err = cache.Get(ctx, CollectionBanners, "b1")
	assert.True(t, IsNotFound(err))
}

func TestRemoveMissingDocument(t *testing.T) {
	gw := NewGateway(NewMemoryStore(), NewMemorySnapshotCache())
	err := gw.Remove(context.Background(), CollectionBanners, "ghost")
	assert.True(t, IsNotFound(err))
}
