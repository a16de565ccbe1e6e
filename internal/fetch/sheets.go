package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Fetcher retrieves the raw CSV text of one sheet tab. Implemented by
// SheetClient; replaced by a fake in tests.
type Fetcher interface {
	FetchTab(ctx context.Context, gid string) (string, error)
}

// SheetClient downloads tab exports of a Google spreadsheet. Every call is
// bounded by the client timeout and retried a fixed number of times, so a
// hanging fetch cannot wedge an interactive sync.
type SheetClient struct {
	spreadsheetID string
	baseURL       string
	retries       int
	client        *http.Client
	logger        *logrus.Logger
}

func NewSheetClient(spreadsheetID string, timeout time.Duration, retries int, logger *logrus.Logger) *SheetClient {
	return &SheetClient{
		spreadsheetID: spreadsheetID,
		baseURL:       "https://docs.google.com",
		retries:       retries,
		client:        &http.Client{Timeout: timeout},
		logger:        logger,
	}
}

func (c *SheetClient) tabURL(gid string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv&gid=%s", c.baseURL, c.spreadsheetID, gid)
}

// FetchTab returns the CSV text of one tab. Non-2xx responses count as
// failures and are retried like transport errors.
func (c *SheetClient) FetchTab(ctx context.Context, gid string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.WithFields(logrus.Fields{
				"gid":     gid,
				"attempt": attempt,
			}).Info("Retrying sheet fetch")
		}

		text, err := c.fetchOnce(ctx, gid)
		if err == nil {
			return text, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
	}
	return "", fmt.Errorf("failed to fetch tab %s after %d attempts: %w", gid, c.retries+1, lastErr)
}

func (c *SheetClient) fetchOnce(ctx context.Context, gid string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tabURL(gid), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
