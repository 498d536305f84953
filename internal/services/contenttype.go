package services

import "strings"

// Extension→MIME table. Fixed mapping, no configuration surface; anything
// not listed is served as a generic binary stream.
var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"svg":  "image/svg+xml",
	"pdf":  "application/pdf",
	"txt":  "text/plain",
	"md":   "text/markdown",
	"csv":  "text/csv",
	"json": "application/json",
	"zip":  "application/zip",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"svg":  true,
}

// Extensions the browser can render inline: images plus a few document
// formats.
var viewableExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
	"bmp":  true,
	"svg":  true,
	"pdf":  true,
	"txt":  true,
	"md":   true,
	"csv":  true,
}

// FileExtension returns the lowercased substring after the last dot, or ""
// when the filename has no extension.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// ContentTypeForFilename resolves the response content type from the
// filename extension.
func ContentTypeForFilename(filename string) string {
	if ct, ok := contentTypes[FileExtension(filename)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsImageFile reports whether the filename is eligible for the image route.
func IsImageFile(filename string) bool {
	return imageExtensions[FileExtension(filename)]
}

// IsViewableFile reports whether the filename is eligible for the inline
// view route.
func IsViewableFile(filename string) bool {
	return viewableExtensions[FileExtension(filename)]
}
