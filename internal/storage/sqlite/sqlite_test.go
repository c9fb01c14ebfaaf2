package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/log"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage/sqlite"
)

func templateFixture(id, filename string, uploadedAt time.Time) model.TemplateRecord {
	return model.TemplateRecord{
		TemplateID: id,
		Filename:   filename,
		SizeBytes:  12345,
		UploadedAt: uploadedAt,
	}
}

func generationFixture(id string, kind model.GenerationKind, createdAt time.Time) model.GenerationRecord {
	return model.GenerationRecord{
		GenerationID: id,
		Kind:         kind,
		SlideCount:   2,
		State:        model.OperationStateOngoing,
		CreatedAt:    createdAt,
	}
}

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepositoryTemplates(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().Truncate(time.Second).UTC()

	older := templateFixture("tmpl_1", "old.pptx", now.Add(-time.Hour))
	newer := templateFixture("tmpl_2", "new.pptx", now)
	require.NoError(t, repo.SaveTemplate(ctx, older))
	require.NoError(t, repo.SaveTemplate(ctx, newer))

	got, err := repo.GetTemplate(ctx, "tmpl_1")
	require.NoError(t, err)
	assert.Equal(t, "old.pptx", got.Filename)
	assert.Equal(t, int64(12345), got.SizeBytes)
	assert.Nil(t, got.AnalyzedAt)

	latest, err := repo.GetLatestTemplate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tmpl_2", latest.TemplateID)

	all, err := repo.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "tmpl_2", all[0].TemplateID)
	assert.Equal(t, "tmpl_1", all[1].TemplateID)

	analyzedAt := now.Add(time.Minute)
	require.NoError(t, repo.MarkTemplateAnalyzed(ctx, "tmpl_1", analyzedAt, 4))

	analyzed, err := repo.GetTemplate(ctx, "tmpl_1")
	require.NoError(t, err)
	require.NotNil(t, analyzed.AnalyzedAt)
	assert.Equal(t, analyzedAt, *analyzed.AnalyzedAt)
	assert.Equal(t, 4, analyzed.SlideCount)
}

func TestRepositoryTemplateErrors(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	_, err := repo.GetTemplate(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	_, err = repo.GetLatestTemplate(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = repo.MarkTemplateAnalyzed(ctx, "missing", now, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	tmpl := templateFixture("tmpl_1", "a.pptx", now)
	require.NoError(t, repo.SaveTemplate(ctx, tmpl))
	err = repo.SaveTemplate(ctx, tmpl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotValid))

	err = repo.SaveTemplate(ctx, model.TemplateRecord{Filename: "no-id.pptx", UploadedAt: now})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotValid))
}

func TestRepositoryGenerations(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().Truncate(time.Second).UTC()

	older := generationFixture("gen_1", model.GenerationKindSlide, now.Add(-time.Hour))
	older.State = model.OperationStateCompleted
	older.TotalPages = 1
	older.OutputPath = "/tmp/slide.pptx"
	newer := generationFixture("gen_2", model.GenerationKindDeck, now)

	require.NoError(t, repo.SaveGeneration(ctx, older))
	require.NoError(t, repo.SaveGeneration(ctx, newer))

	all, err := repo.ListGenerations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "gen_2", all[0].GenerationID)
	assert.Equal(t, model.GenerationKindDeck, all[0].Kind)
	assert.Equal(t, model.OperationStateOngoing, all[0].State)
	assert.Equal(t, "/tmp/slide.pptx", all[1].OutputPath)
	assert.Equal(t, now.Add(-time.Hour), all[1].CreatedAt)

	require.NoError(t, repo.UpdateGenerationResult(ctx, "gen_2", model.OperationStatePartial, 5))

	all, err = repo.ListGenerations(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OperationStatePartial, all[0].State)
	assert.Equal(t, 5, all[0].TotalPages)

	err = repo.UpdateGenerationResult(ctx, "missing", model.OperationStateCompleted, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}
