package integration

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/sir_venger/mini_nas/pkg/nasclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Stream_Ranges(t *testing.T) {
	st := newStack(t, nil)
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}
	writeFile(t, st.root, "video/clip.mp4", payload)

	cases := []struct {
		name         string
		rng          string
		status       int
		contentRange string
		body         []byte
	}{
		{name: "no range", status: http.StatusOK, body: payload},
		{name: "first byte", rng: "bytes=0-0", status: http.StatusPartialContent, contentRange: "bytes 0-0/100", body: payload[:1]},
		{name: "open end", rng: "bytes=90-", status: http.StatusPartialContent, contentRange: "bytes 90-99/100", body: payload[90:]},
		{name: "end clamped", rng: "bytes=50-1000", status: http.StatusPartialContent, contentRange: "bytes 50-99/100", body: payload[50:]},
		{name: "start past end", rng: "bytes=200-", status: http.StatusRequestedRangeNotSatisfiable, contentRange: "bytes */100"},
		{name: "garbage", rng: "chunks=1-2", status: http.StatusRequestedRangeNotSatisfiable, contentRange: "bytes */100"},
		{name: "end before start", rng: "bytes=10-5", status: http.StatusRequestedRangeNotSatisfiable, contentRange: "bytes */100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hdr := map[string]string{}
			if tc.rng != "" {
				hdr["Range"] = tc.rng
			}
			resp, body := st.do(t, http.MethodGet, "/files/stream/video/clip.mp4", nil, hdr)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, "bytes", resp.Header.Get("Accept-Ranges"))
			assert.Equal(t, tc.contentRange, resp.Header.Get("Content-Range"))
			if tc.body != nil {
				assert.Equal(t, "video/mp4", resp.Header.Get("Content-Type"))
				assert.Equal(t, tc.body, body)
			}
		})
	}
}

func Test_Stream_Head(t *testing.T) {
	st := newStack(t, nil)
	writeFile(t, st.root, "clip.webm", bytes.Repeat([]byte("z"), 42))

	resp, body := st.do(t, http.MethodHead, "/files/stream/clip.webm", nil, map[string]string{"Range": "bytes=2-"})
	assert.Equal(t, http.StatusPartialContent, resp.StatusCode)
	assert.Equal(t, "bytes 2-41/42", resp.Header.Get("Content-Range"))
	assert.Equal(t, "40", resp.Header.Get("Content-Length"))
	assert.Empty(t, body)
}

func Test_Stream_LargeFileViaClient(t *testing.T) {
	st := newStack(t, nil)
	ctx := context.Background()

	// Больше одного чанка, чтобы пройти несколько итераций чтения.
	payload := bytes.Repeat([]byte("0123456789abcdef"), 3<<16+7)
	_, err := st.client.Upload(ctx, nasclient.UploadRequest{Name: "big.bin", Reader: bytes.NewReader(payload), Size: int64(len(payload))})
	require.NoError(t, err)

	start := int64(1<<20 - 3)
	dl, err := st.client.Download(ctx, "big.bin", "bytes=1048573-")
	require.NoError(t, err)
	got, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	require.NoError(t, dl.Body.Close())

	assert.Equal(t, http.StatusPartialContent, dl.Status)
	assert.Equal(t, int64(len(payload))-start, dl.ContentLength)
	assert.Equal(t, payload[start:], got)
}
