package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsAllowedFileType(filename string, allowedTypes []string) bool {
	ext := strings.TrimPrefix(GetFileExtension(filename), ".")

	for _, allowedType := range allowedTypes {
		if ext == allowedType {
			return true
		}
	}

	return false
}

func IsImageFile(filename string) bool {
	return IsAllowedFileType(filename, AllowedImageTypes)
}

func IsDocumentFile(filename string) bool {
	return IsAllowedFileType(filename, AllowedDocumentTypes)
}

// ValidateUpload accepts images and documents up to their respective size
// caps. Everything else is rejected before it reaches the storage provider.
func ValidateUpload(filename string, size int64) error {
	switch {
	case IsImageFile(filename):
		if size > MaxImageSize {
			return fmt.Errorf("image %s exceeds maximum size of %d bytes", filename, MaxImageSize)
		}
	case IsDocumentFile(filename):
		if size > MaxDocumentSize {
			return fmt.Errorf("document %s exceeds maximum size of %d bytes", filename, MaxDocumentSize)
		}
	default:
		return fmt.Errorf("file type of %s is not allowed", filename)
	}
	return nil
}

func GetContentType(filename string) string {
	ext := GetFileExtension(filename)

	contentTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".pdf":  "application/pdf",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".txt":  "text/plain",
	}

	if contentType, exists := contentTypes[ext]; exists {
		return contentType
	}

	return "application/octet-stream"
}
