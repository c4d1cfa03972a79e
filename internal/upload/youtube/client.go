// Package youtube is the real publish adapter: YouTube Data API v3 over
// plain HTTP with oauth2 credentials. The multipart upload streams the video
// file through a counting reader so the pipeline sees transfer progress.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2"

	"github.com/backmassage/tape2tube/internal/upload"
)

const (
	defaultAPIBase    = "https://www.googleapis.com/youtube/v3"
	defaultUploadBase = "https://www.googleapis.com/upload/youtube/v3"
)

// Client implements [upload.Service] against the YouTube Data API v3.
type Client struct {
	http *http.Client

	// Overridable for tests.
	APIBase    string
	UploadBase string
}

var _ upload.Service = (*Client)(nil)

// New builds the publish capability from the two credential files: parse the
// installed-app client secrets, load or interactively obtain a token, and
// keep refreshed tokens persisted. Constructed once at startup and passed
// explicitly into the pipeline.
func New(ctx context.Context, clientSecretsPath, tokenPath string) (*Client, error) {
	cfg, err := oauthConfig(clientSecretsPath)
	if err != nil {
		return nil, err
	}
	tok, err := obtainToken(ctx, cfg, tokenPath)
	if err != nil {
		return nil, err
	}

	src := &persistingSource{
		src:  cfg.TokenSource(ctx, tok),
		path: tokenPath,
		last: tok.AccessToken,
	}
	return &Client{
		http:       oauth2.NewClient(ctx, src),
		APIBase:    defaultAPIBase,
		UploadBase: defaultUploadBase,
	}, nil
}

// NewWithHTTPClient builds a Client over a caller-supplied HTTP client.
// Used by tests with httptest servers.
func NewWithHTTPClient(hc *http.Client, apiBase, uploadBase string) *Client {
	return &Client{http: hc, APIBase: apiBase, UploadBase: uploadBase}
}

// --- Wire types ---

type videoInsertBody struct {
	Snippet struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags,omitempty"`
		CategoryID  string   `json:"categoryId"`
	} `json:"snippet"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
}

type insertResponse struct {
	ID string `json:"id"`
}

type playlistItemBody struct {
	Snippet struct {
		PlaylistID string `json:"playlistId"`
		ResourceID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

// Upload submits the video at path as a multipart/related insert and blocks
// until the transfer finishes. Progress is reported against the video file
// size; the few KiB of metadata and MIME framing are not counted.
func (c *Client) Upload(ctx context.Context, path string, meta upload.Metadata, progress upload.Progress) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat video %s: %w", path, err)
	}
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open video %s: %w", path, err)
	}
	defer file.Close()

	var body videoInsertBody
	body.Snippet.Title = meta.Title
	body.Snippet.Description = meta.Description
	body.Snippet.Tags = meta.Tags
	body.Snippet.CategoryID = meta.CategoryID
	body.Status.PrivacyStatus = meta.PrivacyStatus
	metaJSON, err := json.Marshal(&body)
	if err != nil {
		return "", err
	}

	counted := &countingReader{
		r:        file,
		total:    fi.Size(),
		progress: progress,
	}

	// Stream the multipart body through a pipe so the whole video is never
	// buffered in memory.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeParts(mw, metaJSON, counted))
	}()

	u := c.UploadBase + "/videos?" + url.Values{
		"uploadType": {"multipart"},
		"part":       {"snippet,status"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", meta.Title, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("upload %s: %w", meta.Title, err)
	}

	var ins insertResponse
	if err := json.NewDecoder(resp.Body).Decode(&ins); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if ins.ID == "" {
		return "", fmt.Errorf("upload %s: response carried no video id", meta.Title)
	}
	if progress != nil {
		progress(fi.Size(), fi.Size())
	}
	return ins.ID, nil
}

// writeParts emits the metadata JSON part followed by the video part.
func writeParts(mw *multipart.Writer, metaJSON []byte, video io.Reader) error {
	metaHdr := textproto.MIMEHeader{}
	metaHdr.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHdr)
	if err != nil {
		return err
	}
	if _, err := part.Write(metaJSON); err != nil {
		return err
	}

	videoHdr := textproto.MIMEHeader{}
	videoHdr.Set("Content-Type", "video/mp4")
	part, err = mw.CreatePart(videoHdr)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, video); err != nil {
		return err
	}
	return mw.Close()
}

// AttachToPlaylist appends videoID to playlistID and returns the new
// playlist item id.
func (c *Client) AttachToPlaylist(ctx context.Context, videoID, playlistID string) (string, error) {
	var body playlistItemBody
	body.Snippet.PlaylistID = playlistID
	body.Snippet.ResourceID.Kind = "youtube#video"
	body.Snippet.ResourceID.VideoID = videoID
	payload, err := json.Marshal(&body)
	if err != nil {
		return "", err
	}

	u := c.APIBase + "/playlistItems?part=snippet"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("playlist attach %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", fmt.Errorf("playlist attach %s: %w", videoID, err)
	}

	var ins insertResponse
	if err := json.NewDecoder(resp.Body).Decode(&ins); err != nil {
		return "", fmt.Errorf("decode playlist response: %w", err)
	}
	return ins.ID, nil
}

// checkStatus turns a non-2xx response into an error carrying the status
// line and a bounded body snippet.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(snippet))
}

// countingReader reports bytes read from the video file through the progress
// callback, throttled so a fast local read does not flood the caller.
type countingReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress upload.Progress
	lastCall time.Time
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.sent += int64(n)
	if c.progress != nil && (time.Since(c.lastCall) >= 200*time.Millisecond || c.sent == c.total) {
		c.lastCall = time.Now()
		c.progress(c.sent, c.total)
	}
	return n, err
}
