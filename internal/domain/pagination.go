package domain

import (
	"encoding/base64"
	"strconv"
)

// Graph listings page with an opaque continuation token rather than a raw
// offset, so the wire format can change without breaking API or CLI
// clients. The token currently encodes a decimal row offset in url-safe
// base64.

const (
	// DefaultMaxResults applies when a list request names no page size.
	DefaultMaxResults = 100
	// MaxMaxResults caps the page size a client may request.
	MaxMaxResults = 1000
)

// PageRequest carries the paging inputs of a node or relationship listing.
type PageRequest struct {
	MaxResults int
	PageToken  string
}

// Limit clamps the requested page size into [1, MaxMaxResults], falling
// back to DefaultMaxResults when unset.
func (p PageRequest) Limit() int {
	switch {
	case p.MaxResults <= 0:
		return DefaultMaxResults
	case p.MaxResults > MaxMaxResults:
		return MaxMaxResults
	}
	return p.MaxResults
}

// Offset resolves the continuation token to a row offset. A missing or
// malformed token restarts the listing from the top rather than failing
// the request.
func (p PageRequest) Offset() int {
	raw, err := base64.URLEncoding.DecodeString(p.PageToken)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// EncodePageToken builds the continuation token for a row offset. Offset
// zero is the first page and is represented by the empty token.
func EncodePageToken(offset int) string {
	if offset <= 0 {
		return ""
	}
	return base64.URLEncoding.EncodeToString(strconv.AppendInt(nil, int64(offset), 10))
}

// NextPageToken returns the token for the page after the one just served,
// or the empty token once the listing is exhausted.
func NextPageToken(offset, limit int, total int64) string {
	if int64(offset+limit) >= total {
		return ""
	}
	return EncodePageToken(offset + limit)
}
