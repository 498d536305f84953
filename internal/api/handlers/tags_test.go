package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asset-hive/asset-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateTagsOverwrites(t *testing.T) {
	ms, _ := setupStores(t)
	key := models.NewBlobKey()
	ms.seed(models.UploadRecord{Filename: "photo.jpg", BlobKey: key, Tags: "old"})
	r := newTestRouter()

	w := postJSON(r, "/api/update-tags", `{"blob_key":"`+key+`","tags":"a, b"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
	assert.Equal(t, "a, b", ms.records[key].Tags)
}

func TestUpdateTagsOmittedTagsClearsField(t *testing.T) {
	ms, _ := setupStores(t)
	key := models.NewBlobKey()
	ms.seed(models.UploadRecord{Filename: "photo.jpg", BlobKey: key, Tags: "old"})
	r := newTestRouter()

	w := postJSON(r, "/api/update-tags", `{"blob_key":"`+key+`"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", ms.records[key].Tags)
}

func TestUpdateTagsUnknownKeyStillSucceeds(t *testing.T) {
	_, _ = setupStores(t)
	r := newTestRouter()

	// zero rows affected is not an error for the fire-and-refresh client
	w := postJSON(r, "/api/update-tags", `{"blob_key":"`+models.NewBlobKey()+`","tags":"a"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
}

func TestUpdateTagsMissingKey(t *testing.T) {
	_, _ = setupStores(t)
	r := newTestRouter()

	w := postJSON(r, "/api/update-tags", `{"tags":"a, b"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/api/update-tags", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTagsStoreFailure(t *testing.T) {
	ms, _ := setupStores(t)
	ms.updateErr = errors.New("postgres down")
	r := newTestRouter()

	w := postJSON(r, "/api/update-tags", `{"blob_key":"`+models.NewBlobKey()+`","tags":"a"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
