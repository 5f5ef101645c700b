package service

import (
	"time"

	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

// AdminService 管理后台只读数据面，统计和商家名录
type AdminService struct {
	userRepo    *repository.UserRepository
	listingRepo *repository.ListingRepository
	coupleRepo  *repository.CoupleRepository
	threadRepo  *repository.ThreadRepository
	reviewRepo  *repository.ReviewRepository
}

func NewAdminService(
	userRepo *repository.UserRepository,
	listingRepo *repository.ListingRepository,
	coupleRepo *repository.CoupleRepository,
	threadRepo *repository.ThreadRepository,
	reviewRepo *repository.ReviewRepository,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		coupleRepo:  coupleRepo,
		threadRepo:  threadRepo,
		reviewRepo:  reviewRepo,
	}
}

// Stats 平台统计。活跃订阅按当前时间算生效档位。
func (s *AdminService) Stats() (*dto.PlatformStats, error) {
	stats := &dto.PlatformStats{}

	var err error
	if stats.TotalVendors, err = s.userRepo.CountByRole(model.RoleVendor); err != nil {
		return nil, err
	}
	if stats.TotalCouples, err = s.userRepo.CountByRole(model.RoleCouple); err != nil {
		return nil, err
	}
	if stats.TotalLeads, err = s.threadRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalReviews, err = s.reviewRepo.Count(); err != nil {
		return nil, err
	}
	if stats.ActiveSubscriptions, err = s.listingRepo.CountActiveSubscriptions(time.Now()); err != nil {
		return nil, err
	}

	return stats, nil
}

// RecentMembers 最近注册的账号，商家补商家名，新人补双方姓名
func (s *AdminService) RecentMembers(page, pageSize int) ([]*dto.RecentMemberItem, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	users, total, err := s.userRepo.ListRecent(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.RecentMemberItem, 0, len(users))
	for _, user := range users {
		item := &dto.RecentMemberItem{
			ID:        user.ID,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		}

		switch user.Role {
		case model.RoleVendor:
			if listing, err := s.listingRepo.GetByUserID(user.ID); err == nil {
				item.Name = listing.BusinessName
			}
		case model.RoleCouple:
			if couple, err := s.coupleRepo.GetByUserID(user.ID); err == nil {
				item.Name = couple.Partner1Name
				if couple.Partner2Name != "" {
					item.Name += " & " + couple.Partner2Name
				}
			}
		}

		items = append(items, item)
	}

	return items, total, nil
}

// Vendors 商家名录，支持商家名/类目/档位过滤，带账号邮箱
func (s *AdminService) Vendors(req *dto.AdminVendorsRequest) ([]*dto.AdminVendorItem, int64, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	filter := repository.AdminListingFilter{
		Search:   req.Search,
		Category: req.Category,
		Plan:     req.Plan,
	}
	listings, total, err := s.listingRepo.AdminList(filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	userIDs := make([]int64, len(listings))
	for i, listing := range listings {
		userIDs[i] = listing.UserID
	}
	users, err := s.userRepo.GetByIDs(userIDs)
	if err != nil {
		return nil, 0, err
	}
	emailMap := make(map[int64]string, len(users))
	for _, user := range users {
		emailMap[user.ID] = user.Email
	}

	items := make([]*dto.AdminVendorItem, 0, len(listings))
	for _, listing := range listings {
		item := &dto.AdminVendorItem{
			ID:               listing.ID,
			UserID:           listing.UserID,
			Email:            emailMap[listing.UserID],
			BusinessName:     listing.BusinessName,
			Category:         listing.Category,
			Location:         listing.Location,
			Rating:           listing.Rating,
			SubscriptionPlan: listing.SubscriptionPlan,
		}
		if listing.SubscriptionEndDate != nil {
			item.SubscriptionEndDate = listing.SubscriptionEndDate.Format(time.RFC3339)
		}
		items = append(items, item)
	}

	return items, total, nil
}
