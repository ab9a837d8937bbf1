// Package httputil provides the HTTP client used to fetch remote assets
// such as shape icons.
//
// [Client] applies default headers, caps response size and retries
// transient failures (transport errors and 5xx responses) with
// exponential backoff. A 404 maps to errors.ErrCodeNotFound so callers can
// try the next candidate URL:
//
//	c := httputil.NewClient(nil)
//	resp, err := c.Fetch(ctx, "https://assets.example.com/icons/db.svg")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // try db.png
//	}
package httputil
