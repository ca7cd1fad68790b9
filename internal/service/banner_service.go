package service

import (
	"context"
	"sort"
	"time"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"
)

type BannerService struct {
	Banners *repository.BannerRepository
}

func NewBannerService(banners *repository.BannerRepository) *BannerService {
	return &BannerService{Banners: banners}
}

type BannerRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl" binding:"required"`
	LinkURL  string `json:"linkUrl"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

func (s *BannerService) Create(ctx context.Context, req BannerRequest) (*model.Banner, error) {
	banner := &model.Banner{
		ID:        util.NewEntityID(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Order:     req.Order,
		IsActive:  req.IsActive,
		CreatedAt: time.Now(),
	}
	if err := s.Banners.Save(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Update(ctx context.Context, id string, req BannerRequest) (*model.Banner, error) {
	banner := &model.Banner{
		ID:        id,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		Order:     req.Order,
		IsActive:  req.IsActive,
		CreatedAt: time.Now(),
	}
	if err := s.Banners.Save(ctx, banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	return s.Banners.Delete(ctx, id)
}

func (s *BannerService) ListAll(ctx context.Context) ([]model.Banner, error) {
	banners, err := s.Banners.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortBanners(banners)
	return banners, nil
}

// ListActive 首页展示位：仅启用中的，按 order 排列
func (s *BannerService) ListActive(ctx context.Context) ([]model.Banner, error) {
	banners, err := s.Banners.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]model.Banner, 0, len(banners))
	for _, b := range banners {
		if b.IsActive {
			active = append(active, b)
		}
	}
	sortBanners(active)
	return active, nil
}

func sortBanners(banners []model.Banner) {
	sort.Slice(banners, func(i, j int) bool {
		if banners[i].Order != banners[j].Order {
			return banners[i].Order < banners[j].Order
		}
		return banners[i].ID < banners[j].ID
	})
}
