package extract

import (
	"io"
	"os"
)

func plainText(path string, limit int) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var reader io.Reader = f
	if limit > 0 {
		reader = io.LimitReader(f, int64(limit))
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return string(data)
}
