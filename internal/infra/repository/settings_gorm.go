package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

const settingsRowID = 1

// SettingsGormRepository reads and updates the single settings row.
type SettingsGormRepository struct {
	db *gorm.DB
}

func NewSettingsGormRepository(db *gorm.DB) *SettingsGormRepository {
	return &SettingsGormRepository{db: db}
}

func (r *SettingsGormRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := r.db.WithContext(ctx).First(&s, settingsRowID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsGormRepository) Update(ctx context.Context, s *models.Settings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Save(s).Error
}

// ClosedHoursMessage satisfies the override flow's settings source.
// A missing row falls back to a neutral default.
func (r *SettingsGormRepository) ClosedHoursMessage(ctx context.Context) string {
	s, err := r.Get(ctx)
	if err != nil || s.ClosedHoursMessage == "" {
		return "Your appointment was cancelled because the shop closed these hours."
	}
	return s.ClosedHoursMessage
}
