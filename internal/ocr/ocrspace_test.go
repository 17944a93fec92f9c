package ocr

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOCRSpace(t *testing.T, handler http.HandlerFunc) *OCRSpace {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o := NewOCRSpace("test-key", "eng")
	o.endpoint = srv.URL
	return o
}

func TestOCRSpace_Recognize(t *testing.T) {
	o := newTestOCRSpace(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		require.NoError(t, r.ParseForm())
		assert.Contains(t, r.PostForm.Get("base64Image"), "data:image/png;base64,")
		assert.Equal(t, "eng", r.PostForm.Get("language"))

		w.Write([]byte(`{"ParsedResults":[{"ParsedText":"Jane Doe"},{"ParsedText":"CEO"}],"IsErroredOnProcessing":false}`))
	})

	text, err := o.Recognize(context.Background(), []byte("fake png"))

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nCEO\n", text)
}

func TestOCRSpace_ProcessingErrorIsEngineFailure(t *testing.T) {
	o := newTestOCRSpace(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ParsedResults":[],"IsErroredOnProcessing":true,"OCRExitCode":3}`))
	})

	_, err := o.Recognize(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEngine))
}

func TestOCRSpace_HTTPErrorIsEngineFailure(t *testing.T) {
	o := newTestOCRSpace(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})

	_, err := o.Recognize(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEngine))
	assert.Contains(t, err.Error(), "403")
}

func TestOCRSpace_BadJSONIsEngineFailure(t *testing.T) {
	o := newTestOCRSpace(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := o.Recognize(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEngine))
}
