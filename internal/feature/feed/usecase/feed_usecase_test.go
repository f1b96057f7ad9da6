package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "feed_backend/internal/feature/auth/domain/entity"
	"feed_backend/internal/feature/post/domain/entity"
)

// mockPostReader is a mock implementation of the PostReader interface.
type mockPostReader struct {
	ListFunc        func(ctx context.Context, offset, limit int) ([]entity.Post, error)
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]entity.Post, error)
}

func (m *mockPostReader) List(ctx context.Context, offset, limit int) ([]entity.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (m *mockPostReader) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Post, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

// mockAuthorRepository is a mock implementation of the AuthorRepository interface.
type mockAuthorRepository struct {
	FindAuthorsFunc func(ctx context.Context, ids []uint) (map[uint]authentity.Author, error)
	calls           int
}

func (m *mockAuthorRepository) FindAuthors(ctx context.Context, ids []uint) (map[uint]authentity.Author, error) {
	m.calls++
	if m.FindAuthorsFunc != nil {
		return m.FindAuthorsFunc(ctx, ids)
	}
	return map[uint]authentity.Author{}, nil
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative values", -3, -1, 1, 20},
		{"explicit values", 3, 5, 3, 5},
		{"size capped", 1, 500, 1, MaxPageSize},
		{"size at cap", 2, MaxPageSize, 2, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := NormalizePage(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, size)
		})
	}
}

func TestFeedUsecase_ListAll(t *testing.T) {
	t.Run("computes offset from page and size", func(t *testing.T) {
		var gotOffset, gotLimit int
		reader := &mockPostReader{ListFunc: func(ctx context.Context, offset, limit int) ([]entity.Post, error) {
			gotOffset, gotLimit = offset, limit
			return []entity.Post{}, nil
		}}
		uc := NewFeedUsecase(reader, &mockAuthorRepository{})

		page, err := uc.ListAll(context.Background(), 3, 10)
		require.NoError(t, err)
		assert.Equal(t, 20, gotOffset)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 3, page.Page)
		assert.Equal(t, 10, page.PageSize)
		assert.NotNil(t, page.Posts)
		assert.Empty(t, page.Posts)
	})

	t.Run("applies defaults", func(t *testing.T) {
		var gotOffset, gotLimit int
		reader := &mockPostReader{ListFunc: func(ctx context.Context, offset, limit int) ([]entity.Post, error) {
			gotOffset, gotLimit = offset, limit
			return nil, nil
		}}
		uc := NewFeedUsecase(reader, &mockAuthorRepository{})

		page, err := uc.ListAll(context.Background(), 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, gotOffset)
		assert.Equal(t, DefaultPageSize, gotLimit)
		assert.Equal(t, DefaultPage, page.Page)
	})

	t.Run("page whose offset overflows is empty", func(t *testing.T) {
		for _, p := range []int{math.MaxInt, math.MaxInt/2 + 2} {
			reader := &mockPostReader{ListFunc: func(ctx context.Context, offset, limit int) ([]entity.Post, error) {
				t.Fatalf("List must not be called, got offset %d", offset)
				return nil, nil
			}}
			authors := &mockAuthorRepository{}
			uc := NewFeedUsecase(reader, authors)

			page, err := uc.ListAll(context.Background(), p, 2)
			require.NoError(t, err)
			assert.Equal(t, p, page.Page)
			assert.Equal(t, 2, page.PageSize)
			assert.NotNil(t, page.Posts)
			assert.Empty(t, page.Posts)
			assert.Zero(t, authors.calls)
		}
	})

	t.Run("largest addressable page keeps a non-negative offset", func(t *testing.T) {
		gotOffset := -1
		reader := &mockPostReader{ListFunc: func(ctx context.Context, offset, limit int) ([]entity.Post, error) {
			gotOffset = offset
			return nil, nil
		}}
		uc := NewFeedUsecase(reader, &mockAuthorRepository{})

		_, err := uc.ListAll(context.Background(), math.MaxInt/2+1, 2)
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt-1, gotOffset)
	})

	t.Run("store error is wrapped", func(t *testing.T) {
		dbErr := errors.New("db down")
		reader := &mockPostReader{ListFunc: func(ctx context.Context, offset, limit int) ([]entity.Post, error) {
			return nil, dbErr
		}}
		uc := NewFeedUsecase(reader, &mockAuthorRepository{})

		_, err := uc.ListAll(context.Background(), 1, 20)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestFeedUsecase_ListByOwner(t *testing.T) {
	now := time.Now()
	reader := &mockPostReader{ListByOwnerFunc: func(ctx context.Context, ownerID uint) ([]entity.Post, error) {
		assert.Equal(t, uint(7), ownerID)
		return []entity.Post{
			{ID: 2, UserID: 7, Content: "b", CreatedAt: now},
			{ID: 1, UserID: 7, Content: "a", CreatedAt: now.Add(-time.Hour)},
		}, nil
	}}
	authors := &mockAuthorRepository{FindAuthorsFunc: func(ctx context.Context, ids []uint) (map[uint]authentity.Author, error) {
		return map[uint]authentity.Author{7: {ID: 7, Name: "Ada"}}, nil
	}}
	uc := NewFeedUsecase(reader, authors)

	views, err := uc.ListByOwner(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, uint(2), views[0].ID)
	assert.Equal(t, uint(1), views[1].ID)
	assert.Equal(t, "Ada", views[0].Author.Name)
}

func TestFeedUsecase_Enrich(t *testing.T) {
	t.Run("one lookup with deduplicated ids, order preserved", func(t *testing.T) {
		var gotIDs []uint
		authors := &mockAuthorRepository{FindAuthorsFunc: func(ctx context.Context, ids []uint) (map[uint]authentity.Author, error) {
			gotIDs = ids
			return map[uint]authentity.Author{
				1: {ID: 1, Name: "Ada", Headline: "engineer"},
				2: {ID: 2, Name: "Grace"},
			}, nil
		}}
		uc := NewFeedUsecase(&mockPostReader{}, authors)

		views, err := uc.Enrich(context.Background(), []entity.Post{
			{ID: 30, UserID: 1},
			{ID: 20, UserID: 2, Likes: []uint{1}},
			{ID: 10, UserID: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, authors.calls)
		assert.Equal(t, []uint{1, 2}, gotIDs)
		require.Len(t, views, 3)
		assert.Equal(t, []uint{30, 20, 10}, []uint{views[0].ID, views[1].ID, views[2].ID})
		assert.Equal(t, "Ada", views[0].Author.Name)
		assert.Equal(t, "engineer", views[2].Author.Headline)
		assert.Equal(t, "Grace", views[1].Author.Name)
		assert.Equal(t, []uint{}, views[0].Likes)
		assert.Equal(t, []uint{1}, views[1].Likes)
	})

	t.Run("missing author keeps the id", func(t *testing.T) {
		uc := NewFeedUsecase(&mockPostReader{}, &mockAuthorRepository{})

		views, err := uc.Enrich(context.Background(), []entity.Post{{ID: 1, UserID: 9}})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, authentity.Author{ID: 9}, views[0].Author)
	})

	t.Run("empty input skips the lookup", func(t *testing.T) {
		authors := &mockAuthorRepository{}
		uc := NewFeedUsecase(&mockPostReader{}, authors)

		views, err := uc.Enrich(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, views)
		assert.Equal(t, 0, authors.calls)
	})

	t.Run("author lookup error", func(t *testing.T) {
		authors := &mockAuthorRepository{FindAuthorsFunc: func(ctx context.Context, ids []uint) (map[uint]authentity.Author, error) {
			return nil, errors.New("boom")
		}}
		uc := NewFeedUsecase(&mockPostReader{}, authors)

		_, err := uc.Enrich(context.Background(), []entity.Post{{ID: 1, UserID: 1}})
		assert.Error(t, err)
	})
}
