package repository

import (
	"context"
	"encoding/json"

	"program_hub_backend/internal/model"
)

type BannerRepository struct {
	GW *Gateway
}

func NewBannerRepository(gw *Gateway) *BannerRepository {
	return &BannerRepository{GW: gw}
}

func (r *BannerRepository) FindAll(ctx context.Context) ([]model.Banner, error) {
	docs, err := r.GW.List(ctx, CollectionBanners)
	if err != nil {
		return nil, err
	}

	banners := make([]model.Banner, 0, len(docs))
	for i := range docs {
		var b model.Banner
		if err := json.Unmarshal(docs[i].Data, &b); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, nil
}

func (r *BannerRepository) Save(ctx context.Context, b *model.Banner) error {
	if err := b.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(b)
	if err != nil {
		return err
	}

	_, err = r.GW.Upsert(ctx, CollectionBanners, b.ID, data, VersionAny)
	return err
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	return r.GW.Remove(ctx, CollectionBanners, id)
}
