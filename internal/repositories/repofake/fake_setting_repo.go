package repofake

import (
	"context"
	"sync"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
)

var _ repositories.SettingRepository = (*FakeSettingRepo)(nil)

type FakeSettingRepo struct {
	lock    sync.Mutex
	setting models.Setting
}

func NewFakeSettingRepo(setting models.Setting) *FakeSettingRepo {
	setting.ID = models.GeneralSettingID
	return &FakeSettingRepo{setting: setting}
}

func (r *FakeSettingRepo) Get(_ context.Context) (*models.Setting, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	cp := r.setting
	return &cp, nil
}

func (r *FakeSettingRepo) Update(_ context.Context, updates map[string]interface{}) (*models.Setting, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for column, value := range updates {
		switch column {
		case "company_name":
			r.setting.CompanyName = value.(string)
		case "company_address":
			r.setting.CompanyAddress = value.(string)
		case "pay_cut_rate":
			r.setting.PayCutRate = value.(float64)
		}
	}
	cp := r.setting
	return &cp, nil
}
