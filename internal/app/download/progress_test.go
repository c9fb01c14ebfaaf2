package download

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressWriterWithTotal(t *testing.T) {
	var dst, status bytes.Buffer
	pw := newProgressWriter(&dst, &status, 100)

	_, err := pw.Write(make([]byte, 50))
	require.NoError(t, err)
	_, err = pw.Write(make([]byte, 50))
	require.NoError(t, err)
	pw.Finish()

	assert.Equal(t, 100, dst.Len())
	out := status.String()
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestProgressWriterWithoutTotal(t *testing.T) {
	var dst, status bytes.Buffer
	pw := newProgressWriter(&dst, &status, 0)

	_, err := pw.Write([]byte("pptx-bytes"))
	require.NoError(t, err)
	pw.Finish()

	assert.Equal(t, "pptx-bytes", dst.String())
	assert.Contains(t, status.String(), "10 B downloaded")
}
