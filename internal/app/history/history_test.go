package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/app/history"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	t0 := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		request history.Request
		mock    func(mr *storagemock.MockRepository)
		expResp *history.Response
		expErr  bool
	}{
		"A template ID filter should return only that template.": {
			request: history.Request{TemplateID: "tpl-1"},
			mock: func(mr *storagemock.MockRepository) {
				mr.On("GetTemplate", mock.Anything, "tpl-1").Once().Return(&model.TemplateRecord{
					TemplateID: "tpl-1", Filename: "q4.pptx", UploadedAt: t0,
				}, nil)
			},
			expResp: &history.Response{
				Templates: []model.TemplateRecord{
					{TemplateID: "tpl-1", Filename: "q4.pptx", UploadedAt: t0},
				},
			},
		},

		"An unknown template ID filter should fail.": {
			request: history.Request{TemplateID: "tpl-missing"},
			mock: func(mr *storagemock.MockRepository) {
				mr.On("GetTemplate", mock.Anything, "tpl-missing").Once().Return(nil, model.ErrNotFound)
			},
			expErr: true,
		},

		"The stored templates and generations should be returned.": {
			mock: func(mr *storagemock.MockRepository) {
				mr.On("ListTemplates", mock.Anything).Once().Return([]model.TemplateRecord{
					{TemplateID: "tpl-1", Filename: "q4.pptx", UploadedAt: t0},
				}, nil)
				mr.On("ListGenerations", mock.Anything).Once().Return([]model.GenerationRecord{
					{GenerationID: "gen-1", Kind: model.GenerationKindDeck, State: model.OperationStateCompleted, CreatedAt: t0},
				}, nil)
			},
			expResp: &history.Response{
				Templates: []model.TemplateRecord{
					{TemplateID: "tpl-1", Filename: "q4.pptx", UploadedAt: t0},
				},
				Generations: []model.GenerationRecord{
					{GenerationID: "gen-1", Kind: model.GenerationKindDeck, State: model.OperationStateCompleted, CreatedAt: t0},
				},
			},
		},

		"An empty history should not be an error.": {
			mock: func(mr *storagemock.MockRepository) {
				mr.On("ListTemplates", mock.Anything).Once().Return([]model.TemplateRecord{}, nil)
				mr.On("ListGenerations", mock.Anything).Once().Return([]model.GenerationRecord{}, nil)
			},
			expResp: &history.Response{
				Templates:   []model.TemplateRecord{},
				Generations: []model.GenerationRecord{},
			},
		},

		"A failing template listing should fail the history.": {
			mock: func(mr *storagemock.MockRepository) {
				mr.On("ListTemplates", mock.Anything).Once().Return(nil, model.ErrNotValid)
			},
			expErr: true,
		},

		"A failing generation listing should fail the history.": {
			mock: func(mr *storagemock.MockRepository) {
				mr.On("ListTemplates", mock.Anything).Once().Return([]model.TemplateRecord{}, nil)
				mr.On("ListGenerations", mock.Anything).Once().Return(nil, model.ErrNotValid)
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mr := &storagemock.MockRepository{}
			test.mock(mr)

			svc, err := history.NewService(history.ServiceConfig{Repository: mr})
			require.NoError(t, err)

			resp, err := svc.Run(context.TODO(), test.request)

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expResp, resp)
			}
			mr.AssertExpectations(t)
		})
	}
}
