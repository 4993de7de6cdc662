package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/files"
)

func setupTestRepository(t *testing.T) *Repository {
	repo, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newFile(id, ref, name, caption string) *files.File {
	return &files.File{
		ID:              id,
		ExternalRef:     ref,
		Name:            name,
		Caption:         caption,
		SourceMessageID: 7,
		SourceChannelID: -100123,
		Kind:            files.KindVideo,
	}
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	first := newFile("id-1", "ref-1", "Inception.mkv", "")
	require.NoError(t, repo.Upsert(ctx, first))
	assert.Equal(t, "id-1", first.ID)

	t.Run("same external ref replaces metadata and keeps id", func(t *testing.T) {
		second := newFile("id-2", "ref-1", "Inception.2010.mkv", "new caption")
		second.Kind = files.KindDocument
		require.NoError(t, repo.Upsert(ctx, second))
		assert.Equal(t, "id-1", second.ID)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		got, err := repo.FindByID(ctx, "id-1")
		require.NoError(t, err)
		assert.Equal(t, "Inception.2010.mkv", got.Name)
		assert.Equal(t, "new caption", got.Caption)
		assert.Equal(t, files.KindDocument, got.Kind)
	})

	t.Run("different external ref adds a record", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, newFile("id-3", "ref-3", "Other", "")))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	require.NoError(t, repo.Upsert(ctx, newFile("a", "ref-a", "The.Dark.Knight.mkv", "")))
	require.NoError(t, repo.Upsert(ctx, newFile("b", "ref-b", "", "BATMAN begins")))
	require.NoError(t, repo.Upsert(ctx, newFile("c", "ref-c", "Batman.Returns", "1992")))
	require.NoError(t, repo.Upsert(ctx, newFile("d", "ref-d", "Амели", "Французский фильм")))

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "matches caption and name in insertion order", query: "batman", expected: []string{"b", "c"}},
		{name: "substring inside name", query: "ark.kni", expected: []string{"a"}},
		{name: "caption only", query: "1992", expected: []string{"c"}},
		{name: "unicode case folding", query: "АМЕЛИ", expected: []string{"d"}},
		{name: "like wildcards are literal", query: "%", expected: nil},
		{name: "no match", query: "xyz", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)

			var ids []string
			for _, f := range found {
				ids = append(ids, f.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSearchOrderIsStable(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)

	for i := 0; i < 23; i++ {
		require.NoError(t, repo.Upsert(ctx, newFile(
			fmt.Sprintf("id-%02d", i), fmt.Sprintf("ref-%02d", i), fmt.Sprintf("Batman part %d", i), "")))
	}

	first, err := repo.Search(ctx, "batman")
	require.NoError(t, err)
	second, err := repo.Search(ctx, "BATMAN")
	require.NoError(t, err)

	require.Len(t, first, 23)
	assert.Equal(t, first, second)
	assert.Equal(t, "id-00", first[0].ID)
	assert.Equal(t, "id-22", first[22].ID)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, files.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t)
	require.NoError(t, repo.Upsert(ctx, newFile("a", "ref-a", "name", "")))

	require.NoError(t, repo.Delete(ctx, "a"))
	assert.ErrorIs(t, repo.Delete(ctx, "a"), files.ErrNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
