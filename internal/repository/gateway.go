package repository

import (
	"context"
	"encoding/json"

	"program_hub_backend/pkg/logger"
	"program_hub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Gateway 对上层屏蔽"远端持久存储 vs 本地缓存"的差异：
// 读命中远端时刷新快照，远端瞬时失败时回退最近一次快照（无快照则上抛）；
// 写只走远端，成功后尽力镜像到快照。启动期按配置选定主存储，运行期不切换
type Gateway struct {
	primary Store
	cache   SnapshotCache
}

func NewGateway(primary Store, cache SnapshotCache) *Gateway {
	return &Gateway{primary: primary, cache: cache}
}

func (g *Gateway) Get(ctx context.Context, collection, id string) (*Document, error) {
	doc, err := g.primary.Get(ctx, collection, id)
	if err == nil {
		g.refresh(ctx, collection, doc)
		return doc, nil
	}

	if IsTransient(err) && g.cache != nil {
		if cached, cErr := g.cache.Get(ctx, collection, id); cErr == nil {
			logger.Log.Warn("remote store unreachable, serving cached snapshot",
				zap.String("collection", collection), zap.String("id", id))
			monitoring.CacheFallbacks.Inc()
			return cached, nil
		}
	}
	return nil, err
}

func (g *Gateway) List(ctx context.Context, collection string) ([]Document, error) {
	docs, err := g.primary.List(ctx, collection)
	if err == nil {
		if g.cache != nil {
			if cErr := g.cache.PutAll(ctx, collection, docs); cErr != nil {
				logger.Log.Warn("snapshot refresh failed", zap.String("collection", collection), zap.Error(cErr))
			}
		}
		return docs, nil
	}

	if IsTransient(err) && g.cache != nil {
		if cached, cErr := g.cache.GetAll(ctx, collection); cErr == nil {
			logger.Log.Warn("remote store unreachable, serving cached snapshot",
				zap.String("collection", collection))
			monitoring.CacheFallbacks.Inc()
			return cached, nil
		}
	}
	return nil, err
}

func (g *Gateway) Upsert(ctx context.Context, collection, id string, patch json.RawMessage, expectedVersion int64) (*Document, error) {
	doc, err := g.primary.Upsert(ctx, collection, id, patch, expectedVersion)
	if err != nil {
		return nil, err
	}
	g.refresh(ctx, collection, doc)
	return doc, nil
}

func (g *Gateway) Remove(ctx context.Context, collection, id string) error {
	if err := g.primary.Remove(ctx, collection, id); err != nil {
		return err
	}
	if g.cache != nil {
		if err := g.cache.Remove(ctx, collection, id); err != nil {
			logger.Log.Warn("snapshot remove failed",
				zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

func (g *Gateway) refresh(ctx context.Context, collection string, doc *Document) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Put(ctx, collection, doc); err != nil {
		logger.Log.Warn("snapshot refresh failed",
			zap.String("collection", collection), zap.String("id", doc.ID), zap.Error(err))
	}
}
