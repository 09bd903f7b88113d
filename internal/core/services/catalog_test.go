package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offgrid-labs/knowledge-cli/internal/core/domain"
)

func TestAddFileIdempotentByPath(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("mesh networking basics"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	first, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	assert.Equal(t, domain.KindPlainText, first.Kind)
	assert.Equal(t, "guide.txt", first.Name)

	second, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	files, err := catalog.ListFiles(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestAddFileIndexesInBackground(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("solar panel maintenance"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)

	// Registration returns before indexing completes.
	require.NoError(t, catalog.WaitForIndexing(ctx))

	file, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, file.Indexed)
	require.NotNil(t, file.Index)
	assert.Equal(t, 1, file.Index.ArticleCount())
	assert.Equal(t, 1, file.Metadata.ArticleCount)
	assert.NotZero(t, file.Checksum)
}

func TestAddFileMissingPath(t *testing.T) {
	catalog := newTestCatalog(newMockFileReader(), nil)
	defer catalog.Close()

	_, err := catalog.AddFile(context.Background(), "/docs/absent.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddFileAfterClose(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("late arrival"))

	catalog := newTestCatalog(reader, nil)
	require.NoError(t, catalog.Close())

	_, err := catalog.AddFile(context.Background(), "/docs/guide.txt")
	assert.ErrorIs(t, err, domain.ErrCatalogClosed)
}

func TestExtractionFailureLeavesEntryUnindexed(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/broken.json", `{"articles": [`)

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.AddFile(ctx, "/docs/broken.json")
	require.NoError(t, err)
	require.NoError(t, catalog.WaitForIndexing(ctx))

	// The entry stays registered but unindexed, distinguishable from a
	// legitimately empty file.
	file, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, file.Indexed)
	assert.Nil(t, file.Index)
	assert.Zero(t, file.Checksum)

	// Once the content is repaired, a refresh indexes it.
	reader.put("/docs/broken.json", `{"articles": [{"title": "Fixed", "content": "now valid"}]}`)
	require.NoError(t, catalog.Refresh(ctx, added.ID))
	require.NoError(t, catalog.WaitForIndexing(ctx))

	file, err = catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, file.Indexed)
	assert.Equal(t, 1, file.Index.ArticleCount())
}

func TestRemoveFile(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("water purification"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)
	require.NoError(t, catalog.WaitForIndexing(ctx))

	require.NoError(t, catalog.RemoveFile(ctx, added.ID))

	_, err = catalog.GetFile(ctx, added.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = catalog.GetFileByPath(ctx, "/docs/guide.txt")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removing an absent ID is not an error.
	assert.NoError(t, catalog.RemoveFile(ctx, "no-such-id"))
}

func TestUpdateMetadataMergesNonZeroFields(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("field medicine"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)

	require.NoError(t, catalog.UpdateMetadata(ctx, added.ID, domain.FileMetadata{
		Title:  "Field Medicine",
		Author: "anonymous",
	}))
	require.NoError(t, catalog.UpdateMetadata(ctx, added.ID, domain.FileMetadata{
		Language: "en",
	}))

	file, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Field Medicine", file.Metadata.Title)
	assert.Equal(t, "anonymous", file.Metadata.Author)
	assert.Equal(t, "en", file.Metadata.Language)
}

func TestRefreshSkipsUnchangedContent(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("knot tying"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)
	require.NoError(t, catalog.WaitForIndexing(ctx))

	before, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)

	require.NoError(t, catalog.Refresh(ctx, added.ID))
	require.NoError(t, catalog.WaitForIndexing(ctx))

	after, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Checksum, after.Checksum)
	// Same checksum keeps the previously built index.
	assert.Equal(t, before.Index.LastUpdated, after.Index.LastUpdated)
}

func TestRefreshPicksUpChangedContent(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/docs/guide.txt", longParagraph("original"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.AddFile(ctx, "/docs/guide.txt")
	require.NoError(t, err)
	require.NoError(t, catalog.WaitForIndexing(ctx))

	before, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)

	reader.put("/docs/guide.txt", longParagraph("rewritten"))
	require.NoError(t, catalog.Refresh(ctx, added.ID))
	require.NoError(t, catalog.WaitForIndexing(ctx))

	after, err := catalog.GetFile(ctx, added.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.Checksum, after.Checksum)
	assert.Contains(t, after.Index.Words, "rewritten")
}

func TestRefreshUnknownID(t *testing.T) {
	catalog := newTestCatalog(newMockFileReader(), nil)
	defer catalog.Close()

	err := catalog.Refresh(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScanRegistersEligibleFiles(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/library/a.txt", longParagraph("first"))
	reader.put("/library/b.md", "# Heading\n\n"+longParagraph("second"))
	reader.put("/library/small.txt", "tiny")             // below size threshold
	reader.put("/library/ignore.dat", longParagraph("")) // extension not allowlisted
	reader.put("/library/draft.txt", longParagraph("excluded by glob"))

	catalog := newTestCatalog(reader, map[string]any{
		"scan.exclude": []string{"draft*"},
	})
	defer catalog.Close()

	ctx := context.Background()
	added, err := catalog.Scan(ctx, []string{"/library"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// A second scan finds nothing new.
	added, err = catalog.Scan(ctx, []string{"/library"})
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestScanSkipsUnreadableRoot(t *testing.T) {
	reader := newMockFileReader()
	reader.put("/library/a.txt", longParagraph("present"))

	catalog := newTestCatalog(reader, nil)
	defer catalog.Close()

	added, err := catalog.Scan(context.Background(), []string{"/nowhere", "/library"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestGetArticleRecordsAccess(t *testing.T) {
	catalog := newTestCatalog(newMockFileReader(), nil)
	defer catalog.Close()

	insertIndexed(catalog, domain.KnowledgeFile{
		ID:   "f1",
		Path: "/docs/a.txt",
		Name: "a.txt",
		Kind: domain.KindPlainText,
	}, []domain.Article{
		plainArticle("art-1", "Fire Starting", "rub two sticks together"),
	})

	ctx := context.Background()
	article, err := catalog.GetArticle(ctx, "f1", "art-1")
	require.NoError(t, err)
	assert.Equal(t, "Fire Starting", article.Title)

	file, err := catalog.GetFile(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, 1, file.AccessCount)
	require.NotNil(t, file.LastAccessed)

	_, err = catalog.GetArticle(ctx, "f1", "no-such-article")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRandomArticle(t *testing.T) {
	catalog := newTestCatalog(newMockFileReader(), nil)
	defer catalog.Close()

	_, err := catalog.RandomArticle(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)

	insertIndexed(catalog, domain.KnowledgeFile{
		ID:   "f1",
		Path: "/docs/a.txt",
		Name: "a.txt",
		Kind: domain.KindPlainText,
	}, []domain.Article{
		plainArticle("art-1", "Only Article", "there is just one"),
	})

	article, err := catalog.RandomArticle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "art-1", article.ID)
}

func TestProgressIdleWhenNoTasks(t *testing.T) {
	catalog := newTestCatalog(newMockFileReader(), nil)
	defer catalog.Close()

	active, _ := catalog.Progress(context.Background())
	assert.False(t, active)
}

func TestStatErrorWrapsNotFound(t *testing.T) {
	catalog := newTestCatalog(newMockFileReader(), nil)
	defer catalog.Close()

	_, err := catalog.AddFile(context.Background(), "/docs/gone.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
