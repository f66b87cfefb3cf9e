package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// preferredChatName is the member name WhatsApp uses inside exported archives.
const preferredChatName = "_chat.txt"

func init() {
	Register(".txt", unpackPlain)
	Register(".zip", unpackZip)
	Register(".gz", unpackGzip)
	Register(".zst", unpackZstd)
}

func unpackPlain(data []byte, maxBytes int64) ([]byte, error) {
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// unpackZip extracts _chat.txt, or else the first .txt member, from a zip archive.
func unpackZip(data []byte, maxBytes int64) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: zip: %v", ErrBadArchive, err)
	}

	var chosen *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(path.Ext(f.Name), ".txt") {
			continue
		}
		if strings.EqualFold(path.Base(f.Name), preferredChatName) {
			chosen = f
			break
		}
		if chosen == nil {
			chosen = f
		}
	}
	if chosen == nil {
		return nil, ErrArchiveNoChat
	}
	if chosen.UncompressedSize64 > uint64(maxBytes) {
		return nil, ErrTooLarge
	}

	rc, err := chosen.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: zip: open %s: %v", ErrBadArchive, chosen.Name, err)
	}
	defer rc.Close()
	return readMember(rc, maxBytes)
}

func unpackGzip(data []byte, maxBytes int64) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip: %v", ErrBadArchive, err)
	}
	defer gr.Close()
	return readMember(gr, maxBytes)
}

func unpackZstd(data []byte, maxBytes int64) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrBadArchive, err)
	}
	defer dec.Close()
	return readMember(dec, maxBytes)
}

// readMember is readLimited for decompressed streams, where a read failure
// means the archive itself is damaged.
func readMember(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := readLimited(r, maxBytes)
	if err != nil && !errors.Is(err, ErrTooLarge) {
		return nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	return data, err
}

// readLimited reads r fully, failing with ErrTooLarge past maxBytes.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("ingest: read: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
