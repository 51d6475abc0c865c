package httpserver

import (
	"errors"
	"io"
	"net/http"

	feederrors "postline/contexts/content/feed-service/domain/errors"
	feedhttp "postline/contexts/content/feed-service/transport/http"
)

const maxUploadBytes = 8 << 20

// handleUploadImage stores a post attachment ahead of the post write that
// references it. The request always goes through the feed service so the
// caller is authenticated before anything else; after that, a request
// without a usable image is not an error: the response reports that no
// file was stored and the caller proceeds without an attachment.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	sctx := s.resolveSession(r)

	var content []byte
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		if file, _, err := r.FormFile("image"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
			if err != nil {
				writeFeedError(w, http.StatusBadRequest, "invalid_upload", "could not read uploaded file")
				return
			}
			content = data
		}
	}

	resp, err := s.feed.Handler.UploadImageHandler(r.Context(), sctx, content)
	if err != nil {
		if errors.Is(err, feederrors.ErrUnsupportedImage) {
			writeUploadSkipped(w)
			return
		}
		s.writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func writeUploadSkipped(w http.ResponseWriter) {
	resp := feedhttp.UploadImageResponse{Status: "success"}
	resp.Data.Message = "No file provided"
	writeJSON(w, http.StatusOK, resp)
}
