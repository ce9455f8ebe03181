package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/codec"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/httpserver/deps"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/utils"
)

// maxImportBytes caps the import payload. Server lists are small; a
// bigger body is either a mistake or abuse.
const maxImportBytes = 4 << 20

type importResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

// Import merges an uploaded server list into the directory. Records
// that fail address validation are dropped silently; only the survivor
// count is reported.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "import payload too large")
			return
		}

		entries, err := codec.Decode(data, d.Now())
		if err != nil {
			if errors.Is(err, codec.ErrInvalidFormat) {
				writeError(w, http.StatusBadRequest, codec.ErrInvalidFormat.Error())
				return
			}
			writeError(w, http.StatusBadRequest, "could not decode import payload")
			return
		}

		merged := d.Store.Merge(r.Context(), entries)

		d.Logger.Info("import merged",
			logger.Int("imported", len(entries)),
			logger.Int("total", len(merged)))
		writeJSON(w, http.StatusOK, importResponse{Imported: len(entries), Total: len(merged)})
	}
}

// Export serves the whole directory as a downloadable JSON file.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := codec.Encode(d.Store.Snapshot())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "could not encode server list")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+codec.ExportFilename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
