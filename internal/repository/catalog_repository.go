package repository

import (
	"context"
	"errors"

	"skillpath_backend/internal/model"

	"gorm.io/gorm"
)

// CatalogRepository covers skills, role-skill profiles and learning content.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ---- skills ----

func (r *CatalogRepository) ListSkills(ctx context.Context) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.WithContext(ctx).Order("name").Find(&skills).Error
	return skills, err
}

func (r *CatalogRepository) FindSkillByName(ctx context.Context, name string) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&skill).Error
	return &skill, err
}

func (r *CatalogRepository) CreateSkill(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Create(skill).Error
}

// ResolveSkill returns the skill with this exact name, creating a CORE skill when absent.
func (r *CatalogRepository) ResolveSkill(ctx context.Context, name string) (*model.Skill, error) {
	skill := model.Skill{Name: name, Category: model.SkillCore}
	err := r.DB.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&skill).Error
	if err != nil {
		// lost a create race on the unique name; the row exists now
		if existing, findErr := r.FindSkillByName(ctx, name); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return &skill, nil
}

// ---- role skill profiles ----

func (r *CatalogRepository) FindRoleProfile(ctx context.Context, role string) (*model.RoleSkillProfile, error) {
	var profile model.RoleSkillProfile
	err := r.DB.WithContext(ctx).Where("role = ?", role).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *CatalogRepository) ListRoleProfiles(ctx context.Context) ([]model.RoleSkillProfile, error) {
	var profiles []model.RoleSkillProfile
	err := r.DB.WithContext(ctx).Order("role").Find(&profiles).Error
	return profiles, err
}

func (r *CatalogRepository) UpsertRoleProfile(ctx context.Context, role string, expected []string) (*model.RoleSkillProfile, error) {
	profile, err := r.FindRoleProfile(ctx, role)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = &model.RoleSkillProfile{Role: role}
	case err != nil:
		return nil, err
	}
	profile.ExpectedSkills = model.StringList(expected)
	if err := r.DB.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// ---- learning content ----

func (r *CatalogRepository) ListContents(ctx context.Context, skillID uint) ([]model.LearningContent, error) {
	var contents []model.LearningContent
	q := r.DB.WithContext(ctx).Preload("Skill").Order("id")
	if skillID != 0 {
		q = q.Where("skill_id = ?", skillID)
	}
	err := q.Find(&contents).Error
	return contents, err
}

func (r *CatalogRepository) FindContentByID(ctx context.Context, id uint) (*model.LearningContent, error) {
	var content model.LearningContent
	err := r.DB.WithContext(ctx).Preload("Skill").First(&content, id).Error
	return &content, err
}

func (r *CatalogRepository) CreateContent(ctx context.Context, content *model.LearningContent) error {
	return r.DB.WithContext(ctx).Create(content).Error
}

func (r *CatalogRepository) UpdateContent(ctx context.Context, content *model.LearningContent) error {
	return r.DB.WithContext(ctx).Omit("Skill").Save(content).Error
}

// FindContentsBySkillName matches the skill name case-insensitively, ordered by content id.
func (r *CatalogRepository) FindContentsBySkillName(ctx context.Context, name string) ([]model.LearningContent, error) {
	var contents []model.LearningContent
	err := r.DB.WithContext(ctx).
		Joins("JOIN skills ON skills.id = learning_contents.skill_id AND skills.deleted_at IS NULL").
		Where("LOWER(skills.name) = LOWER(?)", name).
		Order("learning_contents.id").
		Find(&contents).Error
	return contents, err
}
