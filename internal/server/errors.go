package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crimson-sun/chatwrap/internal/engine"
	"github.com/crimson-sun/chatwrap/internal/ingest"
)

const (
	msgExtension    = "Please upload a .txt WhatsApp export file."
	msgUndecodable  = "Could not decode file. Try exporting again or use UTF-8."
	msgUnrecognized = "No WhatsApp messages detected. Make sure this is the raw exported chat .txt."
	msgNoChat       = "Archive does not contain a chat .txt file."
	msgBadArchive   = "Could not open the archive. Try exporting again."
	msgUnauthorized = "Not authenticated"
	msgBusy         = "Server busy, try again."
	msgInternal     = "Internal server error."
)

// classify maps a processing error to a status code and a user-facing detail.
func classify(err error, maxBytes int64) (int, string) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, ingest.ErrTooLarge), errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge, tooLargeMessage(maxBytes)
	case errors.Is(err, ingest.ErrUnsupportedExtension):
		return http.StatusBadRequest, msgExtension
	case errors.Is(err, ingest.ErrUndecodable):
		return http.StatusBadRequest, msgUndecodable
	case errors.Is(err, ingest.ErrArchiveNoChat):
		return http.StatusBadRequest, msgNoChat
	case errors.Is(err, ingest.ErrBadArchive):
		return http.StatusBadRequest, msgBadArchive
	case errors.Is(err, engine.ErrUnrecognizedFormat):
		return http.StatusBadRequest, msgUnrecognized
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func tooLargeMessage(maxBytes int64) string {
	const mib = 1 << 20
	if maxBytes > 0 && maxBytes%mib == 0 {
		return fmt.Sprintf("File too large (max %dMB).", maxBytes/mib)
	}
	return fmt.Sprintf("File too large (max %d bytes).", maxBytes)
}
