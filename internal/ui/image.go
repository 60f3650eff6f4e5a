package ui

import (
	"context"
	"fmt"
	"path"
	"time"

	"fyne.io/fyne/v2"
	"github.com/imroc/req/v3"
)

// imageLoader downloads character pictures so they can be shown as static
// resources; Fyne's own URI loading does not cover plain https URLs.
type imageLoader struct {
	client *req.Client
}

func newImageLoader(timeout time.Duration) *imageLoader {
	c := req.C().SetUserAgent("TraceBoard")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &imageLoader{client: c}
}

func (l *imageLoader) Load(ctx context.Context, url string) (fyne.Resource, error) {
	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}
	body, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return fyne.NewStaticResource(path.Base(url), body), nil
}
