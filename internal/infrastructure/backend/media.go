package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
)

// ProcessMedia uploads a file and waits for the full result
func (c *Client) ProcessMedia(ctx context.Context, upload ports.Upload) (result *entities.MediaResult, err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveCall("process_media", started, err) }()

	resp, err := c.postMultipart(ctx, c.stream, "/api/process-media", upload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out entities.MediaResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode process-media response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("process media: %s", out.Error)
	}
	return &out, nil
}

// ProcessMediaStream uploads a file and returns the response body, a
// newline-delimited stream of "data: {json}" frames. The caller closes it.
func (c *Client) ProcessMediaStream(ctx context.Context, upload ports.Upload) (body io.ReadCloser, err error) {
	started := time.Now()
	defer func() { c.metrics.ObserveCall("process_media_stream", started, err) }()

	resp, err := c.postMultipart(ctx, c.stream, "/api/process-media-stream", upload)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// postMultipart streams the upload as a single "file" form field without
// buffering it in memory.
func (c *Client) postMultipart(ctx context.Context, hc *http.Client, path string, upload ports.Upload) (*http.Response, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Filename))
		contentType := upload.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, upload.Body); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, path, pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := hc.Do(req)
	if err != nil {
		pr.Close()
		return nil, err
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}
