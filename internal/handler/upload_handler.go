package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meesho-recon/internal/middleware"
	"meesho-recon/internal/parser"
	"meesho-recon/internal/service"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/response"
)

type UploadHandler struct {
	service service.UploadService
}

func NewUploadHandler(service service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload godoc
// @Summary Upload files into a file set
// @Description Ingest one or more CSV/XLS/XLSX files into a file set of the current session, replacing earlier files of that set. Files that cannot be read are skipped and reported.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param set path string true "File set" Enums(orders, ads, returns, old, new, payout)
// @Param files formData file true "Files to ingest"
// @Param header_offset formData int false "Rows to skip before the header row"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 413 {object} response.Response
// @Router /api/v1/uploads/{set} [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	set, err := session.ParseFileSet(c.Param("set"))
	if err != nil {
		response.BadRequest(c, "Invalid file set", err.Error())
		return
	}

	var headerOffset *int
	if raw := c.PostForm("header_offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(c, "Invalid header_offset", "Use a non-negative integer")
			return
		}
		headerOffset = &n
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form", err.Error())
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		response.BadRequest(c, "No files uploaded", "Attach one or more files in the 'files' field")
		return
	}

	blobs := make([]parser.FileBlob, 0, len(headers))
	for _, fh := range headers {
		blobs = append(blobs, fileBlob(fh))
	}

	sess := middleware.CurrentSession(c)
	info, err := h.service.Upload(sess, set, blobs, headerOffset)
	if err != nil {
		respondError(c, "Upload failed", err)
		return
	}

	warnings := make([]string, 0, len(info.Errors)+len(info.Missing))
	for _, fe := range info.Errors {
		warnings = append(warnings, fe.Error())
	}
	for _, f := range info.Missing {
		warnings = append(warnings, fmt.Sprintf("column for %s not found", f))
	}
	response.SuccessWithWarnings(c, http.StatusOK, "Files uploaded successfully", info, warnings)
}

// fileBlob defers opening the part until the ingester has checked its size.
func fileBlob(fh *multipart.FileHeader) parser.FileBlob {
	return parser.FileBlob{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) { return fh.Open() },
	}
}
