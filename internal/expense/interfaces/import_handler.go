package interfaces

import (
	"io"
	"log"
	"net/http"

	"github.com/jchung150/Expense-Classification/internal/expense/application"
)

// maxUploadBytes caps statement uploads; bank exports are small.
const maxUploadBytes = 10 << 20

type ImportServiceInterface interface {
	Import(userID, fileName string, file io.Reader) (*application.ImportSummary, error)
}

type ImportHandler struct {
	service      ImportServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewImportHandler(
	service ImportServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ImportHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &ImportHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// HandleUpload ingests a multipart statement file. Failures are logged with
// full detail server-side and summarized to the client; nothing is persisted
// on failure.
func (h *ImportHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respondError(w, http.StatusBadRequest, "Please select a file to upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Please select a file to upload")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		h.respondError(w, http.StatusBadRequest, "Please select a file to upload")
		return
	}

	log.Printf("User %s is uploading file %s", userID, header.Filename)

	summary, err := h.service.Import(userID, header.Filename, file)
	if err != nil {
		log.Printf("Import of %s for user %s failed: %v", header.Filename, userID, err)
		h.respondError(w, http.StatusBadRequest, "An error occurred while processing the file")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transactions uploaded successfully",
		"data":    summary,
	})
}
