package repositories

import (
	"context"

	"github.com/hr_management/internal/models"
	"gorm.io/gorm"
)

// SettingRepository 公司设置仓库，只有一行数据
type SettingRepository interface {
	Get(ctx context.Context) (*models.Setting, error)
	Update(ctx context.Context, updates map[string]interface{}) (*models.Setting, error)
}

type gormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository 创建设置仓库
func NewGormSettingRepository(db *gorm.DB) SettingRepository {
	return &gormSettingRepository{db: db}
}

// Get 返回设置，不存在时以默认值创建
func (r *gormSettingRepository) Get(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).
		Where(models.Setting{ID: models.GeneralSettingID}).
		FirstOrCreate(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *gormSettingRepository) Update(ctx context.Context, updates map[string]interface{}) (*models.Setting, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Setting{ID: models.GeneralSettingID}).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx)
}
