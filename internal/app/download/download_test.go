package download_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/api/apimock"
	"github.com/deckgen/deckgen/internal/app/download"
	"github.com/deckgen/deckgen/internal/model"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		source  string
		mock    func(mc *apimock.MockClient)
		expFile string
		expErr  bool
	}{
		"An empty source should fail before any API call is made.": {
			source: "",
			mock:   func(mc *apimock.MockClient) {},
			expErr: true,
		},

		"A generation ID should download through the API.": {
			source: "gen-1",
			mock: func(mc *apimock.MockClient) {
				mc.On("DownloadGeneration", mock.Anything, "gen-1").Once().Return(io.NopCloser(strings.NewReader("pptx-bytes")), nil)
			},
			expFile: "pptx-bytes",
		},

		"An http URL should download directly from it.": {
			source: "http://storage.example.com/decks/gen-1.pptx",
			mock: func(mc *apimock.MockClient) {
				mc.On("DownloadFromURL", mock.Anything, "http://storage.example.com/decks/gen-1.pptx").Once().Return(io.NopCloser(strings.NewReader("pptx-bytes")), nil)
			},
			expFile: "pptx-bytes",
		},

		"An https URL should download directly from it.": {
			source: "https://storage.example.com/decks/gen-1.pptx",
			mock: func(mc *apimock.MockClient) {
				mc.On("DownloadFromURL", mock.Anything, "https://storage.example.com/decks/gen-1.pptx").Once().Return(io.NopCloser(strings.NewReader("pptx-bytes")), nil)
			},
			expFile: "pptx-bytes",
		},

		"An unknown generation should fail the download.": {
			source: "gen-missing",
			mock: func(mc *apimock.MockClient) {
				mc.On("DownloadGeneration", mock.Anything, "gen-missing").Once().Return(nil, model.ErrNotFound)
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mc := &apimock.MockClient{}
			test.mock(mc)

			svc, err := download.NewService(download.ServiceConfig{Client: mc})
			require.NoError(err)

			outputPath := filepath.Join(t.TempDir(), "deck.pptx")
			result, err := svc.Run(context.TODO(), download.Request{
				Source:     test.source,
				OutputPath: outputPath,
			})

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(outputPath, result.Path)
				assert.Equal(int64(len(test.expFile)), result.SizeBytes)
				got, err := os.ReadFile(outputPath)
				require.NoError(err)
				assert.Equal(test.expFile, string(got))
			}
			mc.AssertExpectations(t)
		})
	}
}

func TestServiceRunWithStatusWriter(t *testing.T) {
	mc := &apimock.MockClient{}
	mc.On("DownloadGeneration", mock.Anything, "gen-1").Once().Return(io.NopCloser(strings.NewReader("pptx-bytes")), nil)

	svc, err := download.NewService(download.ServiceConfig{Client: mc})
	require.NoError(t, err)

	outputPath := filepath.Join(t.TempDir(), "deck.pptx")
	var status bytes.Buffer
	result, err := svc.Run(context.TODO(), download.Request{
		Source:       "gen-1",
		OutputPath:   outputPath,
		StatusWriter: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), result.SizeBytes)
	got, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "pptx-bytes", string(got))
	assert.Contains(t, status.String(), "downloaded")
	mc.AssertExpectations(t)
}

func TestServiceRunMissingOutputPath(t *testing.T) {
	mc := &apimock.MockClient{}
	svc, err := download.NewService(download.ServiceConfig{Client: mc})
	require.NoError(t, err)

	_, err = svc.Run(context.TODO(), download.Request{Source: "gen-1"})
	assert.ErrorIs(t, err, model.ErrNotValid)
	mc.AssertExpectations(t)
}
