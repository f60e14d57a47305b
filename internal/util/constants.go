package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MimeVideo = "video/"
	MimeImage = "image/"
)

// 上传允许的媒体类型
var AllowedMediaTypes = []string{MimeVideo, MimeImage}

// PassingScore 低于此分数的技能视为缺失
const PassingScore = 70

// MaxUploadSize 单个媒体文件上限 (500MB)
const MaxUploadSize = 500 << 20
