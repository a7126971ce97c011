package fs

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/mhaseeb/deptscrape"
)

// Ensure FileSource implements deptscrape.URLSource at compile time.
var _ deptscrape.URLSource = (*FileSource)(nil)

// FileSource reads page URLs from a newline-delimited file.
// Blank lines and lines starting with "#" are skipped.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// URLs returns the URLs listed in the file, in file order.
// Returns ENOTFOUND when the file does not exist.
func (s *FileSource) URLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, deptscrape.Errorf(deptscrape.ENOTFOUND, "links file %q not found", s.Path)
		}
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
