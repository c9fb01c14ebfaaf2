package upload_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/api"
	"github.com/deckgen/deckgen/internal/api/apimock"
	"github.com/deckgen/deckgen/internal/app/upload"
	"github.com/deckgen/deckgen/internal/model"
	"github.com/deckgen/deckgen/internal/storage/storagemock"
)

func writeTempTemplate(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "template.pptx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		request func(t *testing.T) upload.Request
		mock    func(mc *apimock.MockClient, mr *storagemock.MockRepository)
		expResp *model.TemplateUpload
		expErr  bool
	}{
		"A missing file should fail before any API call is made.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: "/does/not/exist.pptx"}
			},
			mock:   func(mc *apimock.MockClient, mr *storagemock.MockRepository) {},
			expErr: true,
		},

		"A directory path should fail before any API call is made.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: t.TempDir()}
			},
			mock:   func(mc *apimock.MockClient, mr *storagemock.MockRepository) {},
			expErr: true,
		},

		"A valid file should be uploaded with the three-step handshake and recorded in history.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: writeTempTemplate(t, "pptx-bytes")}
			},
			mock: func(mc *apimock.MockClient, mr *storagemock.MockRepository) {
				exp := api.CreateTemplateRequest{Filename: "template.pptx", SizeBytes: 10}
				mc.On("CreateTemplate", mock.Anything, exp).Once().Return(&model.TemplateUpload{
					TemplateID: "tpl-1",
					UploadURL:  "https://signed.example.com/tpl-1",
				}, nil)
				mc.On("UploadToSignedURL", mock.Anything, "https://signed.example.com/tpl-1", mock.Anything, int64(10), mock.MatchedBy(func(r io.Reader) bool {
					b, err := io.ReadAll(r)
					return err == nil && string(b) == "pptx-bytes"
				})).Once().Return(nil)
				mc.On("ConfirmUpload", mock.Anything, "tpl-1").Once().Return(nil)
				mr.On("SaveTemplate", mock.Anything, mock.MatchedBy(func(rec model.TemplateRecord) bool {
					return rec.TemplateID == "tpl-1" && rec.Filename == "template.pptx" && rec.SizeBytes == 10
				})).Once().Return(nil)
			},
			expResp: &model.TemplateUpload{
				TemplateID: "tpl-1",
				UploadURL:  "https://signed.example.com/tpl-1",
			},
		},

		"Failing to create the template record should stop the handshake.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: writeTempTemplate(t, "pptx-bytes")}
			},
			mock: func(mc *apimock.MockClient, mr *storagemock.MockRepository) {
				mc.On("CreateTemplate", mock.Anything, mock.Anything).Once().Return(nil, model.ErrNotValid)
			},
			expErr: true,
		},

		"Failing the byte transfer should not confirm the upload.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: writeTempTemplate(t, "pptx-bytes")}
			},
			mock: func(mc *apimock.MockClient, mr *storagemock.MockRepository) {
				mc.On("CreateTemplate", mock.Anything, mock.Anything).Once().Return(&model.TemplateUpload{
					TemplateID: "tpl-1",
					UploadURL:  "https://signed.example.com/tpl-1",
				}, nil)
				mc.On("UploadToSignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once().Return(io.ErrUnexpectedEOF)
			},
			expErr: true,
		},

		"Failing to confirm the upload should fail the operation.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: writeTempTemplate(t, "pptx-bytes")}
			},
			mock: func(mc *apimock.MockClient, mr *storagemock.MockRepository) {
				mc.On("CreateTemplate", mock.Anything, mock.Anything).Once().Return(&model.TemplateUpload{
					TemplateID: "tpl-1",
					UploadURL:  "https://signed.example.com/tpl-1",
				}, nil)
				mc.On("UploadToSignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once().Return(nil)
				mc.On("ConfirmUpload", mock.Anything, "tpl-1").Once().Return(model.ErrNotFound)
			},
			expErr: true,
		},

		"A failed history write should not fail a successful upload.": {
			request: func(t *testing.T) upload.Request {
				return upload.Request{Path: writeTempTemplate(t, "pptx-bytes")}
			},
			mock: func(mc *apimock.MockClient, mr *storagemock.MockRepository) {
				mc.On("CreateTemplate", mock.Anything, mock.Anything).Once().Return(&model.TemplateUpload{
					TemplateID: "tpl-1",
					UploadURL:  "https://signed.example.com/tpl-1",
				}, nil)
				mc.On("UploadToSignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Once().Return(nil)
				mc.On("ConfirmUpload", mock.Anything, "tpl-1").Once().Return(nil)
				mr.On("SaveTemplate", mock.Anything, mock.Anything).Once().Return(model.ErrNotValid)
			},
			expResp: &model.TemplateUpload{
				TemplateID: "tpl-1",
				UploadURL:  "https://signed.example.com/tpl-1",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mc := &apimock.MockClient{}
			mr := &storagemock.MockRepository{}
			test.mock(mc, mr)

			svc, err := upload.NewService(upload.ServiceConfig{
				Client:     mc,
				Repository: mr,
			})
			require.NoError(err)

			resp, err := svc.Run(context.TODO(), test.request(t))

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expResp, resp)
			}
			mc.AssertExpectations(t)
			mr.AssertExpectations(t)
		})
	}
}

func TestNewService(t *testing.T) {
	_, err := upload.NewService(upload.ServiceConfig{})
	assert.Error(t, err)
}
