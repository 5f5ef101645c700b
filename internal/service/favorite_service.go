package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var ErrFavoriteNotFound = errors.New("未收藏该商家")

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	listingRepo  *repository.ListingRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, listingRepo *repository.ListingRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, listingRepo: listingRepo}
}

// Save 收藏商家，重复收藏不报错（幂等）
func (s *FavoriteService) Save(coupleID, listingID int64, req *dto.SaveFavoriteRequest) error {
	if _, err := s.listingRepo.GetByID(listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	exists, err := s.favoriteRepo.Exists(coupleID, listingID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	favorite := &model.Favorite{
		CoupleID:  coupleID,
		ListingID: listingID,
		Note:      req.Note,
	}
	return s.favoriteRepo.Create(favorite)
}

// Unsave 取消收藏，没收藏过也不报错（幂等）
func (s *FavoriteService) Unsave(coupleID, listingID int64) error {
	return s.favoriteRepo.Delete(coupleID, listingID)
}

// List 新人的收藏列表，带商家卡片
func (s *FavoriteService) List(coupleID int64, page, pageSize int) ([]*dto.FavoriteItem, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	favorites, total, err := s.favoriteRepo.ListByCouple(coupleID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	items := make([]*dto.FavoriteItem, 0, len(favorites))
	for _, favorite := range favorites {
		item := &dto.FavoriteItem{
			ID:      favorite.ID,
			Note:    favorite.Note,
			SavedAt: favorite.CreatedAt.Format(time.RFC3339),
		}

		// 商家被删除时收藏项保留，listing 为空
		listing, err := s.listingRepo.GetByID(favorite.ListingID)
		if err == nil {
			item.Listing = &dto.ListingItem{
				ID:               listing.ID,
				UserID:           listing.UserID,
				BusinessName:     listing.BusinessName,
				Category:         listing.Category,
				Description:      listing.Description,
				Location:         listing.Location,
				PriceRange:       listing.PriceRange,
				Rating:           listing.Rating,
				Images:           parseImages(listing.Images),
				SubscriptionPlan: listing.EffectivePlan(now),
				CreatedAt:        listing.CreatedAt.Format(time.RFC3339),
			}
		}

		items = append(items, item)
	}

	return items, total, nil
}
