package service

import (
	"context"
	"testing"

	"program_hub_backend/internal/model"
	"program_hub_backend/internal/repository"
	"program_hub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discussionTestEnv(t *testing.T) *DiscussionService {
	t.Helper()

	gw := repository.NewGateway(repository.NewMemoryStore(), repository.NewMemorySnapshotCache())
	users := repository.NewUserRepository(gw)
	programs := repository.NewProgramRepository(gw)
	discussions := repository.NewDiscussionRepository(gw)

	ctx := context.Background()
	_, err := programs.Save(ctx, &model.Program{ID: "p1", Slug: "onboarding", Title: "入职培训"}, repository.VersionNew)
	require.NoError(t, err)

	// unlocked 持有有效凭证，locked 没有
	require.NoError(t, users.Save(ctx, &model.User{
		ID: "unlocked", Email: "in@example.com", Name: "李雷", Role: model.Learner,
		Vouchers: []model.Voucher{{
			ID: "v1", ProgramID: "p1", UserID: "unlocked",
			Status: model.VoucherActive, AccessExpiresDate: "2099-12-31",
		}},
	}))
	require.NoError(t, users.Save(ctx, &model.User{
		ID: "locked", Email: "out@example.com", Name: "韩梅梅", Role: model.Learner,
	}))
	require.NoError(t, users.Save(ctx, &model.User{
		ID: "admin", Email: "admin@example.com", Name: "管理员", Role: model.Admin,
	}))

	access := NewAccessService(users, programs)
	return NewDiscussionService(discussions, users, access)
}

func TestDiscussionRequiresProgramAccess(t *testing.T) {
	svc := discussionTestEnv(t)
	ctx := context.Background()

	message, err := svc.Post(ctx, "unlocked", "p1", "第一周的内容很实用")
	require.NoError(t, err)
	assert.Equal(t, "李雷", message.AuthorName)

	_, err = svc.Post(ctx, "locked", "p1", "我也想说两句")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.List(ctx, "locked", "p1")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	messages, err := svc.List(ctx, "unlocked", "p1")
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestDiscussionDeletePermissions(t *testing.T) {
	svc := discussionTestEnv(t)
	ctx := context.Background()

	message, err := svc.Post(ctx, "unlocked", "p1", "待删除")
	require.NoError(t, err)

	// 非作者的普通学员不能删除
	err = svc.Delete(ctx, "locked", model.Learner, message.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 管理员可以删任何人的
	require.NoError(t, svc.Delete(ctx, "admin", model.Admin, message.ID))

	err = svc.Delete(ctx, "admin", model.Admin, message.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestDiscussionAuthorCanDeleteOwn(t *testing.T) {
	svc := discussionTestEnv(t)
	ctx := context.Background()

	message, err := svc.Post(ctx, "unlocked", "p1", "我自己的帖子")
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, "unlocked", model.Learner, message.ID))
}
