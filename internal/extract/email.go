package extract

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"os"
	"strings"
)

// emailText renders an RFC 5322 message as header lines followed by the
// text/plain body, mirroring the surface content and metadata rules match
// against.
func emailText(path string, limit int) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return ""
	}

	var b strings.Builder
	for _, header := range []string{"From", "To", "Subject", "Date"} {
		fmt.Fprintf(&b, "%s: %s\n", header, msg.Header.Get(header))
	}

	if body := plainBody(msg); body != "" {
		b.WriteString(body)
	}
	return truncate(b.String(), limit)
}

func plainBody(msg *mail.Message) string {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		data, err := io.ReadAll(io.LimitReader(msg.Body, 1<<20))
		if err != nil {
			return ""
		}
		return string(data)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return ""
		}
		mr := multipart.NewReader(msg.Body, boundary)
		for {
			part, err := mr.NextPart()
			if err != nil {
				return ""
			}
			partType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
			if err == nil && partType == "text/plain" {
				data, err := io.ReadAll(io.LimitReader(part, 1<<20))
				if err != nil {
					return ""
				}
				return string(data)
			}
		}
	}

	if mediaType == "text/plain" {
		data, err := io.ReadAll(io.LimitReader(msg.Body, 1<<20))
		if err != nil {
			return ""
		}
		return string(data)
	}
	return ""
}
