package content

import (
	"net/http"
	"strings"
)

// DetectContentType prefers a declared content type and sniffs the payload
// when none is declared.
func DetectContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	return http.DetectContentType(data)
}

// IsPDF reports whether contentType names a PDF document.
func IsPDF(contentType string) bool {
	return strings.HasPrefix(contentType, "application/pdf")
}

// IsImage reports whether contentType names an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}
