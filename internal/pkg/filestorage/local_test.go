package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadedFile builds a real multipart.FileHeader the way gin would hand it
// to a controller.
func uploadedFile(t *testing.T, fieldName, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))

	files := req.MultipartForm.File[fieldName]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveFileWithPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	header := uploadedFile(t, "logo", "badge.png", "png bytes")

	url, err := storage.SaveFileWithPath(header, "logos")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/logos/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	physical := storage.GetFullPath(url)
	content, err := os.ReadFile(physical)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(content))
}

func TestSaveFile_NilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	url, err := storage.SaveFile(nil)
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestSaveFile_UniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	first, err := storage.SaveFileWithPath(uploadedFile(t, "images", "photo.jpg", "a"), "gallery")
	require.NoError(t, err)
	second, err := storage.SaveFileWithPath(uploadedFile(t, "images", "photo.jpg", "b"), "gallery")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(uploadedFile(t, "logo", "badge.png", "png bytes"), "logos")
	require.NoError(t, err)

	physical := storage.GetFullPath(url)
	_, err = os.Stat(physical)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(url))
	_, err = os.Stat(physical)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op
	assert.NoError(t, storage.DeleteFile(url))
	assert.NoError(t, storage.DeleteFile(""))
}

func TestGetFullPath(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "logos", "a.png"), storage.GetFullPath("http://localhost:8080/uploads/logos/a.png"))
	assert.Equal(t, filepath.Join(dir, "a.png"), storage.GetFullPath("uploads/a.png"))
	assert.Empty(t, storage.GetFullPath(""))
}
