package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"
	"skillpath_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CatalogService struct {
	Repo    *repository.CatalogRepository
	Storage StorageProvider
	// ProbeVideo and Thumbnail default to the ffmpeg helpers in util.
	ProbeVideo func(path string) (*util.VideoInfo, error)
	Thumbnail  func(videoPath, thumbnailPath, offset string) error
}

func NewCatalogService(repo *repository.CatalogRepository, storage StorageProvider) *CatalogService {
	return &CatalogService{
		Repo:       repo,
		Storage:    storage,
		ProbeVideo: util.ProbeVideo,
		Thumbnail:  util.GenerateThumbnail,
	}
}

type CreateSkillInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Category string `json:"category"`
}

type RoleProfileInput struct {
	Role           string   `json:"role" binding:"required"`
	ExpectedSkills []string `json:"expectedSkills"`
}

type RoleProfileView struct {
	ID             uint     `json:"id"`
	Role           string   `json:"role"`
	ExpectedSkills []string `json:"expectedSkills"`
}

type CreateContentInput struct {
	Title           string `json:"title" binding:"required"`
	Skill           string `json:"skill" binding:"required"`
	ContentType     string `json:"contentType"`
	ContentURL      string `json:"contentUrl"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	DurationMinutes int    `json:"durationMinutes" binding:"gte=0"`
	Difficulty      string `json:"difficulty"`
	Source          string `json:"source"`
}

func (s *CatalogService) ListSkills(ctx context.Context) ([]model.Skill, error) {
	return s.Repo.ListSkills(ctx)
}

func (s *CatalogService) CreateSkill(ctx context.Context, in CreateSkillInput) (*model.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, util.ErrInvalidInput
	}
	category := model.SkillCategory(strings.ToUpper(strings.TrimSpace(in.Category)))
	if category == "" {
		category = model.SkillCore
	}
	if !category.Valid() {
		return nil, util.ErrInvalidCategory
	}

	if _, err := s.Repo.FindSkillByName(ctx, name); err == nil {
		return nil, util.ErrSkillExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	skill := &model.Skill{Name: name, Category: category}
	if err := s.Repo.CreateSkill(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

func newRoleProfileView(p *model.RoleSkillProfile) RoleProfileView {
	return RoleProfileView{ID: p.ID, Role: p.Role, ExpectedSkills: p.ExpectedSkillList()}
}

func (s *CatalogService) ListRoleProfiles(ctx context.Context) ([]RoleProfileView, error) {
	profiles, err := s.Repo.ListRoleProfiles(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]RoleProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, newRoleProfileView(&profiles[i]))
	}
	return views, nil
}

func (s *CatalogService) UpsertRoleProfile(ctx context.Context, in RoleProfileInput) (*RoleProfileView, error) {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		return nil, util.ErrInvalidInput
	}
	profile, err := s.Repo.UpsertRoleProfile(ctx, role, in.ExpectedSkills)
	if err != nil {
		return nil, err
	}
	view := newRoleProfileView(profile)
	return &view, nil
}

func (s *CatalogService) ListContents(ctx context.Context, skillID uint) ([]model.LearningContent, error) {
	return s.Repo.ListContents(ctx, skillID)
}

func (s *CatalogService) CreateContent(ctx context.Context, in CreateContentInput) (*model.LearningContent, error) {
	contentType := model.ContentType(strings.ToUpper(strings.TrimSpace(in.ContentType)))
	switch contentType {
	case "":
		contentType = model.ContentVideo
	case model.ContentVideo, model.ContentArticle:
	default:
		return nil, util.ErrInvalidContentType
	}

	skillName := strings.TrimSpace(in.Skill)
	if skillName == "" || strings.TrimSpace(in.Title) == "" {
		return nil, util.ErrInvalidInput
	}

	skill, err := s.Repo.ResolveSkill(ctx, skillName)
	if err != nil {
		return nil, err
	}

	content := &model.LearningContent{
		Title:           in.Title,
		SkillID:         skill.ID,
		ContentType:     contentType,
		ContentURL:      in.ContentURL,
		ThumbnailURL:    in.ThumbnailURL,
		DurationMinutes: in.DurationMinutes,
		Difficulty:      in.Difficulty,
		Source:          in.Source,
	}
	if err := s.Repo.CreateContent(ctx, content); err != nil {
		return nil, err
	}
	content.Skill = skill
	return content, nil
}

// UploadMedia stores a video or image for the content. Videos replace the
// content URL and, when ffmpeg is available, set the duration and a thumbnail;
// images replace the thumbnail.
func (s *CatalogService) UploadMedia(ctx context.Context, contentID uint, fh *multipart.FileHeader) (*model.LearningContent, error) {
	content, err := s.Repo.FindContentByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType, ext, err := util.SniffMimeType(file, util.AllowedMediaTypes)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("contents/%d/%s%s", contentID, uuid.NewString(), ext)

	if util.IsImage(mimeType) {
		url, err := s.Storage.Upload(ctx, key, file, fh.Size, mimeType)
		if err != nil {
			return nil, err
		}
		content.ThumbnailURL = url
	} else {
		if err := s.storeVideo(ctx, content, key, file, mimeType); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.UpdateContent(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *CatalogService) storeVideo(ctx context.Context, content *model.LearningContent, key string, src io.Reader, mimeType string) error {
	tmpDir, err := os.MkdirTemp("", "skillpath-media-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	videoPath := filepath.Join(tmpDir, filepath.Base(key))
	out, err := os.Create(videoPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	url, err := s.Storage.UploadFile(ctx, key, videoPath, mimeType)
	if err != nil {
		return err
	}
	content.ContentType = model.ContentVideo
	content.ContentURL = url

	info, err := s.ProbeVideo(videoPath)
	if err != nil {
		logger.Log.Warn("Video probe failed, keeping duration", zap.Uint("content_id", content.ID), zap.Error(err))
		return nil
	}
	if minutes := info.DurationMinutes(); minutes > 0 {
		content.DurationMinutes = minutes
	}

	thumbPath := filepath.Join(tmpDir, "thumb.jpg")
	offset := "00:00:01"
	if info.Duration < 1 {
		offset = "00:00:00"
	}
	if err := s.Thumbnail(videoPath, thumbPath, offset); err != nil {
		logger.Log.Warn("Thumbnail generation failed", zap.Uint("content_id", content.ID), zap.Error(err))
		return nil
	}
	thumbKey := strings.TrimSuffix(key, filepath.Ext(key)) + "_thumb.jpg"
	thumbURL, err := s.Storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg")
	if err != nil {
		return err
	}
	content.ThumbnailURL = thumbURL
	return nil
}
