package uploader

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/skillwave/playback-gateway/internal/models"
	"go.uber.org/zap"
)

// ProgressFunc receives fractional upload progress in the range 0-100.
// When the total size is unknown it is called with -1 (indeterminate)
// instead of an invented percentage.
type ProgressFunc func(percent float64)

// BunnyClient uploads raw video files to the Bunny CDN. Uploads are
// authenticated with the CDN access key, not the platform's own auth.
type BunnyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewBunnyClient creates a CDN upload client
func NewBunnyClient(baseURL, apiKey string, logger *zap.Logger) *BunnyClient {
	return &BunnyClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		// No client timeout: large uploads legitimately run long and the
		// request context carries any deadline
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Upload PUTs the raw file bytes to the per-video upload URL, reporting
// progress as the stream advances.
//
// Failure modes are distinguishable for the caller: an invalid target
// fails with models.ErrBadUploadTarget before any bytes move, a CDN
// refusal fails with models.ErrUploadRejected, and a transport error
// mid-stream fails with models.ErrUploadInterrupted.
func (c *BunnyClient) Upload(ctx context.Context, target models.UploadTarget, body io.Reader, size int64, progress ProgressFunc) error {
	if target.GUID == "" || target.VideoLibraryID == "" {
		return fmt.Errorf("%w: missing guid or library id", models.ErrBadUploadTarget)
	}

	reader := &progressReader{reader: body, total: size, report: progress}

	url := fmt.Sprintf("%s/library/%s/videos/%s", c.baseURL, target.VideoLibraryID, target.GUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrBadUploadTarget, err)
	}
	req.Header.Set("AccessKey", c.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")
	if size > 0 {
		req.ContentLength = size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUploadInterrupted, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", models.ErrUploadRejected, resp.StatusCode)
	}

	if progress != nil {
		progress(100)
	}
	return nil
}

// progressReader counts bytes as the HTTP client consumes the stream and
// reports whole-percent steps
type progressReader struct {
	reader  io.Reader
	total   int64
	read    int64
	lastPct int
	report  ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.reader.Read(b)
	p.read += int64(n)

	if p.report != nil && n > 0 {
		if p.total <= 0 {
			if p.lastPct == 0 {
				p.lastPct = -1
				p.report(-1)
			}
			return n, err
		}

		pct := int(float64(p.read) / float64(p.total) * 100)
		if pct > 100 {
			pct = 100
		}
		if pct != p.lastPct {
			p.lastPct = pct
			p.report(float64(pct))
		}
	}

	return n, err
}
