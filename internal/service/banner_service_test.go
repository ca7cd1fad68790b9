package service

import (
	"context"
	"testing"

	"program_hub_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bannerTestEnv() *BannerService {
	gw := repository.NewGateway(repository.NewMemoryStore(), repository.NewMemorySnapshotCache())
	return NewBannerService(repository.NewBannerRepository(gw))
}

func TestListActiveFiltersAndSorts(t *testing.T) {
	svc := bannerTestEnv()
	ctx := context.Background()

	_, err := svc.Create(ctx, BannerRequest{Title: "新课上线", ImageURL: "https://img/1.png", Order: 2, IsActive: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, BannerRequest{Title: "下线活动", ImageURL: "https://img/2.png", Order: 1, IsActive: false})
	require.NoError(t, err)
	_, err = svc.Create(ctx, BannerRequest{Title: "置顶公告", ImageURL: "https://img/3.png", Order: 1, IsActive: true})
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "置顶公告", active[0].Title)
	assert.Equal(t, "新课上线", active[1].Title)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBannerDelete(t *testing.T) {
	svc := bannerTestEnv()
	ctx := context.Background()

	banner, err := svc.Create(ctx, BannerRequest{Title: "临时", ImageURL: "https://img/x.png", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, banner.ID))
	err = svc.Delete(ctx, banner.ID)
	assert.True(t, repository.IsNotFound(err))
}
