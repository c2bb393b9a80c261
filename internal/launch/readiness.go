package launch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

const readinessRequestTimeout = 2 * time.Second

// awaitReady polls url until it answers with a non-error status or the
// budget elapses. Retries back off exponentially between attempts.
func awaitReady(ctx context.Context, url string, budget time.Duration, log *zap.Logger) error {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = readinessRequestTimeout

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = budget

	attempt := 0

	check := func() error {
		attempt++

		resp, err := client.Get(url)
		if err != nil {
			log.Debug("not ready yet",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		defer resp.Body.Close()

		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 400 {
			err := fmt.Errorf("unexpected status %s", resp.Status)
			log.Debug("not ready yet",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}

		return nil
	}

	return backoff.Retry(check, backoff.WithContext(bo, ctx))
}
