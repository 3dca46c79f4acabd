package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/field-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/field-scheduler/internal/dto"
	"github.com/BruksfildServices01/field-scheduler/internal/images"
)

type memStore struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (m *memStore) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if contentType != images.ContentTypeWebP {
		return "", errors.New("unexpected content type " + contentType)
	}
	m.keys = append(m.keys, key)
	m.bodies = append(m.bodies, body)
	return "https://cdn.test/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, path, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "pitch.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestFieldImage_Upload(t *testing.T) {
	store := &memStore{}
	s := newServer(t, withImages(store))
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	field := dbtest.CreateField(t, s.db, owner.ID)
	path := fmt.Sprintf("/api/me/fields/%d/image", field.ID)

	w := s.send(uploadRequest(t, path, "image", pngBytes(t, 200, 100)), s.token(owner))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(store.keys[0], fmt.Sprintf("fields/%d/", field.ID)))
	assert.True(t, strings.HasSuffix(store.keys[0], ".webp"))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(store.bodies[0]))
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)

	out := decode[dto.FieldDTO](t, w)
	assert.Equal(t, "https://cdn.test/"+store.keys[0], out.ImageURL)
}

func TestFieldImage_Rejections(t *testing.T) {
	store := &memStore{}
	s := newServer(t, withImages(store))
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	other := dbtest.CreateUser(t, s.db, "other", true)
	field := dbtest.CreateField(t, s.db, owner.ID)
	path := fmt.Sprintf("/api/me/fields/%d/image", field.ID)

	w := s.send(uploadRequest(t, path, "image", []byte("not a picture")), s.token(owner))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "unsupported_image", decode[errorBody](t, w).Code)

	w = s.send(uploadRequest(t, path, "photo", pngBytes(t, 10, 10)), s.token(owner))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "image_required", decode[errorBody](t, w).Code)

	w = s.send(uploadRequest(t, path, "image", pngBytes(t, 10, 10)), s.token(other))
	assert.Equal(t, http.StatusNotFound, w.Code)

	store.err = errors.New("bucket gone")
	w = s.send(uploadRequest(t, path, "image", pngBytes(t, 10, 10)), s.token(owner))
	assert.Equal(t, http.StatusBadGateway, w.Code)

	assert.Empty(t, store.keys)
}

func TestFieldImage_Disabled(t *testing.T) {
	s := newServer(t)
	owner := dbtest.CreateUser(t, s.db, "owner", true)
	field := dbtest.CreateField(t, s.db, owner.ID)
	path := fmt.Sprintf("/api/me/fields/%d/image", field.ID)

	w := s.send(uploadRequest(t, path, "image", pngBytes(t, 10, 10)), s.token(owner))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
