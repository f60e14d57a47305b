package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SniffMimeType 根据文件内容检测 MIME 类型（不信任客户端提供的 Content-Type）
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "video/", "application/pdf"
func SniffMimeType(reader io.Reader, allowedTypes []string) (mimeType string, ext string, err error) {
	mtype, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", "", err
	}

	mimeType = mtype.String()
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, mtype.Extension(), nil
		}
	}

	return mimeType, mtype.Extension(), fmt.Errorf("%w: %s", ErrUnsupportedMedia, mimeType)
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeImage)
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, MimeVideo)
}
