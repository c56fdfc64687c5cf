package reqscope

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/reqscope/pkg/attrs"
)

// HTTPRequest adapts *http.Request to Request. Annotations live in the
// attribute bag of the request context, so every wrapper of the same
// inbound request shares them.
type HTTPRequest struct {
	r   *http.Request
	bag *attrs.Bag
}

// WrapRequest returns r with an attribute bag in its context, creating one
// if needed, and the Request handle for it.
func WrapRequest(r *http.Request) (*http.Request, *HTTPRequest) {
	bag := attrs.FromContext(r.Context())
	if bag == nil {
		var ctx context.Context
		ctx, bag = attrs.Ensure(r.Context())
		r = r.WithContext(ctx)
	}
	return r, &HTTPRequest{r: r, bag: bag}
}

// Request returns the wrapped *http.Request.
func (h *HTTPRequest) Request() *http.Request { return h.r }

func (h *HTTPRequest) Header(name string) string {
	return h.r.Header.Get(name)
}

func (h *HTTPRequest) Attribute(key string) (any, bool) {
	return h.bag.Get(key)
}

func (h *HTTPRequest) SetAttribute(key string, value any) {
	h.bag.Set(key, value)
}

// CurrentHTTPRequest returns the *http.Request currently processed in ctx,
// or nil when there is none or it is not an HTTP request.
func CurrentHTTPRequest(ctx context.Context) *http.Request {
	if h, ok := CurrentRequest(ctx).(*HTTPRequest); ok {
		return h.r
	}
	return nil
}
