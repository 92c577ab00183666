package helper

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	types "pos-terminal/internal/common/type"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_Defaults(t *testing.T) {
	r := ParseResponse(&types.Response{})
	assert.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "OK", r.Message)

	r = ParseResponse(&types.Response{Code: http.StatusCreated, Message: "created"})
	assert.Equal(t, "created", r.Message)
}

func TestToResponseAPI_HidesServerErrors(t *testing.T) {
	r := &types.Response{Code: http.StatusInternalServerError, Message: "Something went wrong", Error: errors.New("db down")}

	assert.Equal(t, "db down", ToResponseAPI(r, false).Error)
	assert.Empty(t, ToResponseAPI(r, true).Error)

	bad := &types.Response{Code: http.StatusBadRequest, Message: "bad", Error: errors.New("name is required")}
	assert.Equal(t, "name is required", ToResponseAPI(bad, true).Error)
}

func TestHTTPRequest_JSONWithBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"a":1}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(&HTTPClientConfig{RequestTimeout: 5 * time.Second})
	resp, err := c.HTTPRequest(&HTTPRequestPayload{
		Method: POST,
		URL:    srv.URL,
		Params: map[string]string{"page": "1"},
		Body:   map[string]int{"a": 1},
	}, &HTTPRequestConfig{Ctx: context.Background(), BearerToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, resp.Decode(&out))
	assert.True(t, out.OK)
}

func TestHTTPRequest_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		assert.Equal(t, "multipart/form-data", mediaType)

		mr := multipart.NewReader(r.Body, params["boundary"])
		fields := map[string]string{}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			b, _ := io.ReadAll(p)
			fields[p.FormName()] = string(b)
		}
		assert.Equal(t, `{"name":"Drinks"}`, fields["category"])
		assert.Equal(t, "PNGDATA", fields["file"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(&HTTPClientConfig{})
	resp, err := c.HTTPRequest(&HTTPRequestPayload{
		Method: POST,
		URL:    srv.URL,
		Parts: []MultipartPart{
			{FieldName: "category", Data: []byte(`{"name":"Drinks"}`), ContentType: "application/json"},
			{FieldName: "file", FileName: "a.png", ContentType: "image/png", Data: []byte("PNGDATA")},
		},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.NoError(t, resp.Decode(&struct{}{}))
}

func TestHTTPRequest_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewHTTPClient(&HTTPClientConfig{})
	_, err := c.HTTPRequest(&HTTPRequestPayload{Method: GET, URL: srv.URL}, &HTTPRequestConfig{Ctx: ctx})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Masala Tea", "tea"))
	assert.True(t, ContainsFold("Masala Tea", " MASALA "))
	assert.False(t, ContainsFold("Coffee", "tea"))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank(" a "))
}

func uploadFile(t *testing.T, name string, data []byte) types.UploadFile {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })
	return types.UploadFile{File: file, Header: header}
}

func TestPrepareFileUploadPayload(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")

	up := uploadFile(t, "Tea.PNG", png)
	up.Path = "items"
	up.AllowedTypes = ImageTypes

	res, err := PrepareFileUploadPayload(up)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.ContentType)
	assert.Equal(t, png, res.FileBytes)
	assert.Equal(t, "Tea.PNG", res.FileName)
	assert.Regexp(t, `^items/[0-9a-f-]{36}\.png$`, res.OriginalFiles)
}

func TestPrepareFileUploadPayload_AllowedTypes(t *testing.T) {
	up := uploadFile(t, "menu.png", []byte("plain text pretending to be a png"))
	up.AllowedTypes = ImageTypes

	_, err := PrepareFileUploadPayload(up)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)

	up = uploadFile(t, "menu.txt", []byte("plain text"))
	res, err := PrepareFileUploadPayload(up)
	require.NoError(t, err)
	assert.Regexp(t, `^uploads/`, res.OriginalFiles)
}
