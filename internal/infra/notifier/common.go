package notifier

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"helpcenter/internal/resilience/retry"
	"helpcenter/internal/utils/text"
)

// defaultRetryAfter is used when a 429 response carries no usable hint.
const defaultRetryAfter = 5 * time.Second

// webhookError turns a non-2xx webhook response into a retry.StatusError so
// retry.Do can decide whether to try again.
func webhookError(service string, resp *http.Response, body []byte) error {
	err := &retry.StatusError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("%s webhook error: %s", service, text.Truncate(string(body), 200)),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		err.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}
	return err
}

// parseRetryAfter reads the delay-seconds form of Retry-After.
func parseRetryAfter(v string) time.Duration {
	if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultRetryAfter
}

// unwrapURLError drops the *url.Error wrapper, whose message repeats the
// request URL and with it the webhook token.
func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
