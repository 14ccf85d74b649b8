package simpledocument

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// extensionsByContentType maps declared content types to the filename
// extensions the default policy accepts for them.
var extensionsByContentType = map[string][]string{
	"text/plain":       {".txt", ".text", ".log"},
	"text/csv":         {".csv"},
	"application/json": {".json"},
	"application/pdf":  {".pdf"},
	"application/xml":  {".xml"},
	"text/xml":         {".xml"},
}

// DefaultValidator is the default content validation policy:
//
//   - content must be non-empty,
//   - for known content types the filename extension must be consistent
//     with the declared type,
//   - application/json content must parse as JSON,
//   - text/csv content must have at least a header line.
//
// Unknown content types pass the consistency checks; the policy classifies
// only what it understands. Rejections always carry a reason.
func DefaultValidator(content []byte, filename, contentType string) ValidationResult {
	if len(strings.TrimSpace(string(content))) == 0 {
		return Reject("empty body")
	}

	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	if allowed, known := extensionsByContentType[mediaType]; known && filename != "" {
		ext := strings.ToLower(filepath.Ext(filename))
		match := false
		for _, want := range allowed {
			if ext == want {
				match = true
				break
			}
		}
		if !match {
			return Reject(fmt.Sprintf("filename %q does not match content type %s", filename, mediaType))
		}
	}

	switch mediaType {
	case "application/json":
		if !json.Valid(content) {
			return Reject("content is not valid JSON")
		}
	case "text/csv":
		header := strings.SplitN(strings.TrimSpace(string(content)), "\n", 2)[0]
		if !strings.Contains(header, ",") {
			return Reject("CSV content has no header line")
		}
	}

	return Accept()
}

// Accept returns an accepting validation result.
func Accept() ValidationResult {
	return ValidationResult{Accepted: true}
}

// Reject returns a rejecting validation result carrying reason.
func Reject(reason string) ValidationResult {
	return ValidationResult{Accepted: false, Reason: reason}
}
