package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/testutil"
	"skillpath_backend/internal/util"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	mp4Bytes = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom\x00\x00\x00\x08free")
)

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(data)
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func newCatalogService(t *testing.T) (*CatalogService, *fixture, string) {
	t.Helper()
	f := newFixture(t)
	root := t.TempDir()
	svc := NewCatalogService(f.catalog, &LocalStorageProvider{Root: root})
	svc.ProbeVideo = func(string) (*util.VideoInfo, error) {
		return &util.VideoInfo{Duration: 125.4, Width: 1280, Height: 720}, nil
	}
	svc.Thumbnail = func(_, thumbPath, _ string) error {
		return os.WriteFile(thumbPath, pngBytes, 0644)
	}
	return svc, f, root
}

func TestCreateSkillAndContent(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()

	skill, err := svc.CreateSkill(ctx, CreateSkillInput{Name: "Go"})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	if skill.Category != model.SkillCore {
		t.Errorf("default category = %s", skill.Category)
	}
	if _, err := svc.CreateSkill(ctx, CreateSkillInput{Name: "Go"}); !errors.Is(err, util.ErrSkillExists) {
		t.Errorf("duplicate skill err = %v", err)
	}
	if _, err := svc.CreateSkill(ctx, CreateSkillInput{Name: "Rust", Category: "OPTIONAL"}); !errors.Is(err, util.ErrInvalidCategory) {
		t.Errorf("bad category err = %v", err)
	}

	content, err := svc.CreateContent(ctx, CreateContentInput{Title: "Kubernetes 101", Skill: "Kubernetes", ContentType: "ARTICLE"})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if content.SkillID == 0 {
		t.Error("content skill was not resolved")
	}
	if _, err := svc.CreateContent(ctx, CreateContentInput{Title: "x", Skill: "Go", ContentType: "PODCAST"}); !errors.Is(err, util.ErrInvalidContentType) {
		t.Errorf("bad content type err = %v", err)
	}

	if _, err := svc.CreateContent(ctx, CreateContentInput{Title: "Blank", Skill: "   "}); !errors.Is(err, util.ErrInvalidInput) {
		t.Errorf("blank skill err = %v", err)
	}
	skills, err := svc.ListSkills(ctx)
	if err != nil {
		t.Fatalf("list skills: %v", err)
	}
	for _, sk := range skills {
		if sk.Name == "" {
			t.Errorf("blank skill name was persisted: %+v", sk)
		}
	}

	contents, err := svc.ListContents(ctx, content.SkillID)
	if err != nil || len(contents) != 1 {
		t.Errorf("list contents = %d, %v", len(contents), err)
	}
}

func TestUpsertRoleProfile(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()

	if _, err := svc.UpsertRoleProfile(ctx, RoleProfileInput{Role: "Data Analyst", ExpectedSkills: []string{"SQL"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	view, err := svc.UpsertRoleProfile(ctx, RoleProfileInput{Role: "Data Analyst", ExpectedSkills: []string{"SQL", "Excel"}})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if len(view.ExpectedSkills) != 2 {
		t.Errorf("expected skills = %v", view.ExpectedSkills)
	}
	profiles, err := svc.ListRoleProfiles(ctx)
	if err != nil || len(profiles) != 1 {
		t.Errorf("profiles = %d, %v", len(profiles), err)
	}
}

func TestUploadMedia(t *testing.T) {
	svc, f, root := newCatalogService(t)
	content := testutil.CreateContent(t, f.db, "Intro to SQL", "SQL")
	ctx := context.Background()

	updated, err := svc.UploadMedia(ctx, content.ID, fileHeader(t, "cover.png", pngBytes))
	if err != nil {
		t.Fatalf("upload image: %v", err)
	}
	if !strings.HasPrefix(updated.ThumbnailURL, "/uploads/contents/") || !strings.HasSuffix(updated.ThumbnailURL, ".png") {
		t.Errorf("thumbnail url = %q", updated.ThumbnailURL)
	}

	updated, err = svc.UploadMedia(ctx, content.ID, fileHeader(t, "lesson.mp4", mp4Bytes))
	if err != nil {
		t.Fatalf("upload video: %v", err)
	}
	if !strings.HasSuffix(updated.ContentURL, ".mp4") {
		t.Errorf("content url = %q", updated.ContentURL)
	}
	if updated.DurationMinutes != 3 {
		t.Errorf("duration = %d, want 3", updated.DurationMinutes)
	}
	if !strings.HasSuffix(updated.ThumbnailURL, "_thumb.jpg") {
		t.Errorf("video thumbnail = %q", updated.ThumbnailURL)
	}

	stored := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(updated.ContentURL, "/uploads/")))
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("video not stored: %v", err)
	}

	reloaded, err := repository.NewCatalogRepository(f.db).FindContentByID(ctx, content.ID)
	if err != nil || reloaded.ContentURL != updated.ContentURL {
		t.Errorf("content not persisted: %v", err)
	}
}

func TestUploadMediaRejects(t *testing.T) {
	svc, f, _ := newCatalogService(t)
	content := testutil.CreateContent(t, f.db, "Intro to SQL", "SQL")
	ctx := context.Background()

	if _, err := svc.UploadMedia(ctx, content.ID, fileHeader(t, "notes.txt", []byte("plain text notes"))); !errors.Is(err, util.ErrUnsupportedMedia) {
		t.Errorf("text upload err = %v", err)
	}
	if _, err := svc.UploadMedia(ctx, 999, fileHeader(t, "cover.png", pngBytes)); !errors.Is(err, util.ErrContentNotFound) {
		t.Errorf("unknown content err = %v", err)
	}
}

func TestUploadVideoProbeFailureKeepsDuration(t *testing.T) {
	svc, f, _ := newCatalogService(t)
	svc.ProbeVideo = func(string) (*util.VideoInfo, error) { return nil, errors.New("ffprobe not found") }
	content := testutil.CreateContent(t, f.db, "Intro to SQL", "SQL")

	updated, err := svc.UploadMedia(context.Background(), content.ID, fileHeader(t, "lesson.mp4", mp4Bytes))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if updated.DurationMinutes != content.DurationMinutes {
		t.Errorf("duration = %d, want unchanged %d", updated.DurationMinutes, content.DurationMinutes)
	}
}
