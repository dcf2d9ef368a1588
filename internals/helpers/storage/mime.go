package storage

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AllowedMIME is the upload whitelist; values are the content category.
var AllowedMIME = map[string]string{
	"application/pdf":    "DOCUMENT",
	"application/msword": "DOCUMENT",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "DOCUMENT",
	"application/vnd.ms-excel":                                                  "DOCUMENT",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "DOCUMENT",
	"application/vnd.ms-powerpoint":                                             "DOCUMENT",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "DOCUMENT",
	"text/plain": "DOCUMENT",
	"text/csv":   "DOCUMENT",
	"image/jpeg": "IMAGE",
	"image/png":  "IMAGE",
	"image/gif":  "IMAGE",
	"image/webp": "IMAGE",
	"video/mp4":  "VIDEO",
	"video/webm": "VIDEO",
	"audio/mpeg": "AUDIO",
	"audio/wav":  "AUDIO",
	"audio/x-wav":     "AUDIO",
	"application/zip": "OTHER",
}

// Sniff detects the MIME type from content and checks it against the
// whitelist, walking up mimetype's parent chain (docx is a zip, csv is text).
func Sniff(data []byte) (mime string, category string, ok bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		base := strings.SplitN(m.String(), ";", 2)[0]
		if cat, found := AllowedMIME[base]; found {
			return base, cat, true
		}
	}
	return mimetype.Detect(data).String(), "", false
}

// Rasterizable reports whether a MIME type is re-encoded to WebP on upload.
func Rasterizable(mime string) bool {
	return mime == "image/jpeg" || mime == "image/png"
}
