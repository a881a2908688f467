package handlers

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rns-image/internal/domain"
	"rns-image/internal/infra/assets"
	"rns-image/internal/metrics"
	"rns-image/internal/render"
	fixtures "rns-image/internal/testutil"
)

type fakeRenderer struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (f *fakeRenderer) Compose(name string) ([]byte, error) {
	f.mu.Lock()
	f.names = append(f.names, name)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png:" + name), nil
}

func newTestApp(r Renderer) *fiber.App {
	app := fiber.New()
	svc := NewImageService(r)
	app.Get("/:name?", svc.HandleImage)
	return app
}

func TestHandleImage_SetsContentTypeAndBody(t *testing.T) {
	r := &fakeRenderer{}
	app := newTestApp(r)

	resp, err := app.Test(httptest.NewRequest("GET", "/alice", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "png:alice", string(body))
}

func TestHandleImage_PassesUnescapedAndEmptyNames(t *testing.T) {
	r := &fakeRenderer{}
	app := newTestApp(r)

	for _, path := range []string{"/caf%C3%A9", "/", "/a%20b", "/a%2Fb", "/%2F", "/100%25"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
	assert.Equal(t, []string{"caf\u00e9", "", "a b", "a/b", "/", "100%"}, r.names)
}

func TestHandleImage_MalformedEscapeIs400(t *testing.T) {
	r := &fakeRenderer{}
	app := newTestApp(r)

	// net/url rejects the escape, so put it on the request line verbatim.
	req := httptest.NewRequest("GET", "/placeholder", nil)
	req.URL.Opaque = "/bad%zz"
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, r.names)
}

func TestHandleImage_RenderFailureIs500(t *testing.T) {
	r := &fakeRenderer{err: fmt.Errorf("%w: disk full", domain.ErrEncodeFailed)}
	app := newTestApp(r)

	before := testutil.ToFloat64(metrics.RendersTotal.WithLabelValues("error"))

	resp, err := app.Test(httptest.NewRequest("GET", "/bob", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotEqual(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.RendersTotal.WithLabelValues("error")))
}

func TestHandleImage_WithComposer(t *testing.T) {
	a, err := assets.Parse("Go", fixtures.FontBytes(), fixtures.OverlayPNG(t, 64, 32))
	require.NoError(t, err)
	c, err := render.New(a)
	require.NoError(t, err)
	app := newTestApp(c)

	var wg sync.WaitGroup
	bodies := make(map[string][]byte)
	var mu sync.Mutex
	for _, name := range []string{"bob", "carol"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			resp, err := app.Test(httptest.NewRequest("GET", "/"+name, nil), -1)
			if err != nil {
				t.Errorf("request %s: %v", name, err)
				return
			}
			body, _ := io.ReadAll(resp.Body)
			mu.Lock()
			bodies[name] = body
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	for _, name := range []string{"bob", "carol"} {
		want, err := c.Compose(name)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(want, bodies[name]), "body for %s does not match its own render", name)

		cfg, err := png.DecodeConfig(bytes.NewReader(bodies[name]))
		require.NoError(t, err)
		assert.Equal(t, render.CanvasSize, cfg.Width)
	}
	assert.False(t, bytes.Equal(bodies["bob"], bodies["carol"]))
}
