package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tunecord/tunecord/internal/errors"
)

// GetJSON issues a single GET request and decodes the JSON response
// into out. Any non-2xx status is reported as ErrBadStatus; transport
// errors are returned as-is.
func GetJSON(ctx context.Context, client *http.Client, url string, out any) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s", errors.ErrBadStatus, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
