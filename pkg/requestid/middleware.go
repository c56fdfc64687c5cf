package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/dmitrymomot/reqscope/pkg/attrs"
)

const (
	Header = "X-Request-ID"
	// Attribute is the request attribute key the id is stored under.
	Attribute   = "x-request-id"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Middleware assigns a request id. A valid client supplied X-Request-ID is
// reused; otherwise a UUIDv4 is generated. A request that already carries an
// id in its attribute bag keeps it, so nested dispatch sees one id.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, bag := attrs.Ensure(r.Context())

		id, _ := bag.Get(Attribute)
		requestID, _ := id.(string)
		if requestID == "" {
			requestID = r.Header.Get(Header)
			if !isValidRequestID(requestID) {
				requestID = uuid.NewString()
			}
			bag.Set(Attribute, requestID)
		}

		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(WithContext(ctx, requestID)))
	})
}

func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validID.MatchString(id)
}
