package repository

import (
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
)

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) List() ([]*model.City, error) {
	var cities []*model.City
	err := r.db.Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *CityRepository) GetByIDs(ids []int64) ([]*model.City, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cities []*model.City
	err := r.db.Where("id IN ?", ids).Find(&cities).Error
	return cities, err
}

// ReplaceServiceAreas 整体替换商家的服务城市
func (r *CityRepository) ReplaceServiceAreas(listingID int64, cityIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&model.ServiceArea{}).Error; err != nil {
			return err
		}
		for _, cityID := range cityIDs {
			area := &model.ServiceArea{ListingID: listingID, CityID: cityID}
			if err := tx.Create(area).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListServiceAreaCities 商家服务的城市列表
func (r *CityRepository) ListServiceAreaCities(listingID int64) ([]*model.City, error) {
	var cities []*model.City
	err := r.db.Model(&model.City{}).
		Joins("JOIN service_areas ON service_areas.city_id = cities.id").
		Where("service_areas.listing_id = ?", listingID).
		Order("cities.name ASC").
		Find(&cities).Error
	return cities, err
}
