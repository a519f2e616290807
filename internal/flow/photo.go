package flow

import (
	"encoding/base64"
	"mime"
	"net/http"
	"strings"
)

// PhotoToDataURI encodes p as a base64 data URI. The MIME type is the
// declared content type when it names an image, otherwise it is sniffed.
func PhotoToDataURI(p *Photo) (string, error) {
	if p == nil || len(p.Data) == 0 {
		return "", fieldError("photo", "A photo is required")
	}

	mt := ""
	if p.ContentType != "" {
		if parsed, _, err := mime.ParseMediaType(p.ContentType); err == nil && strings.HasPrefix(parsed, "image/") {
			mt = parsed
		}
	}
	if mt == "" {
		sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(p.Data))
		if !strings.HasPrefix(sniffed, "image/") {
			return "", fieldError("photo", "File is not an image")
		}
		mt = sniffed
	}

	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(p.Data), nil
}

func photoHint(herbName string) string {
	return strings.ToLower(herbName) + " plant"
}
