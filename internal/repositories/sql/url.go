package sql

import (
	"context"

	"github.com/fsdevblog/tinyurl/internal/models"
	"github.com/fsdevblog/tinyurl/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type URLRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewURLRepo(db *gorm.DB, logger *logrus.Logger) *URLRepo {
	return &URLRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/url"),
	}
}

// Create вставляет новую запись. Нарушение любого из уникальных индексов (code, original_url)
// возвращается как repositories.ErrDuplicateKey.
func (u *URLRepo) Create(ctx context.Context, link *models.ShortLink) error {
	if err := u.db.WithContext(ctx).Create(link).Error; err != nil {
		converted := ConvertErrorType(err)
		if !errors.Is(converted, repositories.ErrDuplicateKey) {
			u.logger.WithError(err).Errorf("failed to create record %+v", *link)
		}
		return errors.Wrap(converted, "failed to create record")
	}
	return nil
}

func (u *URLRepo) GetByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := u.db.WithContext(ctx).Where("code = ?", code).First(&link).Error; err != nil {
		return nil, errors.Wrapf(ConvertErrorType(err), "failed to get record by code %s", code)
	}
	return &link, nil
}

func (u *URLRepo) GetByURL(ctx context.Context, rawURL string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := u.db.WithContext(ctx).Where("original_url = ?", rawURL).First(&link).Error; err != nil {
		return nil, errors.Wrapf(ConvertErrorType(err), "failed to get record by url %s", rawURL)
	}
	return &link, nil
}

// IncrementHits увеличивает счетчик одной UPDATE командой, поэтому конкурентные
// инкременты не теряются.
func (u *URLRepo) IncrementHits(ctx context.Context, code string) error {
	res := u.db.WithContext(ctx).
		Model(&models.ShortLink{}).
		Where("code = ?", code).
		UpdateColumn("hits", gorm.Expr("hits + ?", 1))
	if res.Error != nil {
		u.logger.WithError(res.Error).Errorf("failed to increment hits for code %s", code)
		return errors.Wrapf(ConvertErrorType(res.Error), "failed to increment hits for code %s", code)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(repositories.ErrNotFound, "code %s", code)
	}
	return nil
}

// List возвращает все записи, новые первыми.
func (u *URLRepo) List(ctx context.Context) ([]models.ShortLink, error) {
	var links []models.ShortLink
	if err := u.db.WithContext(ctx).Order("id DESC").Find(&links).Error; err != nil {
		u.logger.WithError(err).Error("failed to list records")
		return nil, errors.Wrap(ConvertErrorType(err), "failed to list records")
	}
	return links, nil
}

func (u *URLRepo) DeleteByCode(ctx context.Context, code string) (bool, error) {
	res := u.db.WithContext(ctx).Where("code = ?", code).Delete(&models.ShortLink{})
	if res.Error != nil {
		u.logger.WithError(res.Error).Errorf("failed to delete record by code %s", code)
		return false, errors.Wrapf(ConvertErrorType(res.Error), "failed to delete record by code %s", code)
	}
	return res.RowsAffected > 0, nil
}

// Ping выполняет тривиальный запрос к базе.
func (u *URLRepo) Ping(ctx context.Context) error {
	if err := u.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return errors.Wrap(ConvertErrorType(err), "ping")
	}
	return nil
}
