package util

import (
	"path/filepath"
	"strings"
)

// FileKind groups extensions for display purposes.
type FileKind string

const (
	KindText    FileKind = "text"
	KindPDF     FileKind = "pdf"
	KindWord    FileKind = "word"
	KindExcel   FileKind = "excel"
	KindImage   FileKind = "image"
	KindArchive FileKind = "archive"
	KindAudio   FileKind = "audio"
	KindVideo   FileKind = "video"
	KindFile    FileKind = "file"
)

var kindByExtension = map[string]FileKind{
	"txt":  KindText,
	"pdf":  KindPDF,
	"doc":  KindWord,
	"docx": KindWord,
	"xls":  KindExcel,
	"xlsx": KindExcel,
	"jpg":  KindImage,
	"jpeg": KindImage,
	"png":  KindImage,
	"gif":  KindImage,
	"zip":  KindArchive,
	"tar":  KindArchive,
	"gz":   KindArchive,
	"bz2":  KindArchive,
	"mp3":  KindAudio,
	"mp4":  KindVideo,
	"avi":  KindVideo,
	"mov":  KindVideo,
}

// FileType classifies a file name by its last extension.
// Unknown or missing extensions yield KindFile.
func FileType(name string) FileKind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if kind, ok := kindByExtension[ext]; ok {
		return kind
	}
	return KindFile
}
