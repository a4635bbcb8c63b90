package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gighaat/services/storage"
	"gighaat/utils"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles uploads of profile photos and identity documents.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted buckets for uploads. Documents are identity
// papers and only ever served through signed URLs.
var allowedBuckets = map[string]bool{
	"photos":    true,
	"documents": true,
}

// UploadFileHandler receives a multipart file and stores it in the requested
// bucket, returning the permanent file ID the caller embeds in later requests.
// The bucket defaults to "documents" when the form omits it.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	bucket := c.PostForm("bucket")
	if bucket == "" {
		bucket = "documents"
	}
	if !allowedBuckets[bucket] {
		utils.JSONError(c, http.StatusBadRequest, "invalid bucket; allowed values are 'photos' and 'documents'")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "file not provided")
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save file")
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, "gighaat/"+bucket)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload file")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"fileId": publicID})
}

// DocumentURLHandler hands an admin a signed, short-lived URL for an identity
// document.
func (h *StorageHandler) DocumentURLHandler(c *gin.Context) {
	fileID := c.Query("fileId")
	if fileID == "" {
		utils.JSONError(c, http.StatusBadRequest, "fileId is required")
		return
	}

	expiry := 15 * time.Minute
	if expStr := c.Query("expires"); expStr != "" {
		if exp, err := time.ParseDuration(expStr); err == nil {
			expiry = exp
		}
	}

	url, err := h.StorageSvc.GetSecureDownloadURL(c, "image", fileID, expiry)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate download URL")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"downloadURL": url})
}
