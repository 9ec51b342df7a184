package dict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the text encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

// LoadError reports a dictionary file that could not be read.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load dictionary %s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("load dictionary %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a dictionary file with one word per line.
//
// The compression is chosen by extension: ".gz" (gzip), ".zst" (zstd),
// ".lz4" (lz4 frame); anything else is read as is. encoding is any
// WHATWG label such as "utf-8", "shift_jis" or "euc-jp"; an empty value
// means utf-8. A leading byte order mark is stripped.
func Load(path, encoding string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "open", Err: err}
	}
	defer f.Close()

	d, err := Read(f, filepath.Ext(path), encoding)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "read", Err: err}
	}
	return d, nil
}

// Read builds a Dictionary from r. ext selects decompression the same
// way Load does ("" for none).
func Read(r io.Reader, ext, encoding string) (*Dictionary, error) {
	words, err := ReadLines(r, ext, encoding)
	if err != nil {
		return nil, err
	}
	return New(words), nil
}

// ReadLines decompresses and decodes r and returns its lines.
func ReadLines(r io.Reader, ext, encoding string) ([]string, error) {
	plain, closeFn, err := decompress(r, ext)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	enc, err := htmlindex.Get(encodingOrDefault(encoding))
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	decoded := transform.NewReader(plain, unicode.BOMOverride(enc.NewDecoder()))

	var lines []string
	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return lines, nil
}

func decompress(r io.Reader, ext string) (io.Reader, func(), error) {
	switch strings.ToLower(ext) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, func() { zr.Close() }, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, zr.Close, nil
	case ".lz4":
		return lz4.NewReader(r), func() {}, nil
	}
	return r, func() {}, nil
}

func encodingOrDefault(encoding string) string {
	if encoding == "" {
		return DefaultEncoding
	}
	return encoding
}
