package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var (
	ErrReviewNotFound   = errors.New("评价不存在")
	ErrInvalidRating    = errors.New("评分必须在 1 到 5 之间")
	ErrDuplicateReview  = errors.New("您已评价过该商家")
	ErrNotReviewAuthor  = errors.New("只能操作自己的评价")
	ErrNotReviewVendor  = errors.New("只能回复自己收到的评价")
	ErrAlreadyResponded = errors.New("该评价已回复过")
)

type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	listingRepo *repository.ListingRepository
}

func NewReviewService(reviewRepo *repository.ReviewRepository, listingRepo *repository.ListingRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, listingRepo: listingRepo}
}

// Create 新人发表评价。同一新人对同一商家只能有一条，
// 评价落库后重算商家均分。
func (s *ReviewService) Create(coupleID, listingID int64, req *dto.CreateReviewRequest) (*dto.ReviewItem, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.listingRepo.GetByID(listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	exists, err := s.reviewRepo.Exists(listingID, coupleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &model.Review{
		ListingID: listingID,
		CoupleID:  coupleID,
		Rating:    req.Rating,
		Content:   req.Content,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	s.recalcRating(listingID)

	return buildReviewItem(review), nil
}

// Update 新人修改自己的评价
func (s *ReviewService) Update(coupleID, reviewID int64, req *dto.UpdateReviewRequest) (*dto.ReviewItem, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.CoupleID != coupleID {
		return nil, ErrNotReviewAuthor
	}

	review.Rating = req.Rating
	review.Content = req.Content
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	s.recalcRating(review.ListingID)

	return buildReviewItem(review), nil
}

// Delete 新人删除自己的评价
func (s *ReviewService) Delete(coupleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.CoupleID != coupleID {
		return ErrNotReviewAuthor
	}

	if err := s.reviewRepo.Delete(reviewID); err != nil {
		return err
	}

	s.recalcRating(review.ListingID)

	return nil
}

// Respond 商家回复评价，每条评价只能回复一次
func (s *ReviewService) Respond(vendorID, reviewID int64, req *dto.RespondReviewRequest) (*dto.ReviewItem, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(review.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != vendorID {
		return nil, ErrNotReviewVendor
	}

	if review.Response != nil {
		return nil, ErrAlreadyResponded
	}

	now := time.Now()
	review.Response = &req.Response
	review.ResponseDate = &now
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}

	return buildReviewItem(review), nil
}

// List 商家的评价列表，最新在前
func (s *ReviewService) List(listingID int64, page, pageSize int) ([]*dto.ReviewItem, int64, error) {
	if _, err := s.listingRepo.GetByID(listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrListingNotFound
		}
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)
	reviews, total, err := s.reviewRepo.ListByListing(listingID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.ReviewItem, len(reviews))
	for i, review := range reviews {
		items[i] = buildReviewItem(review)
	}

	return items, total, nil
}

// recalcRating 重算商家均分，失败只记日志（下次评价变更会再算）
func (s *ReviewService) recalcRating(listingID int64) {
	avg, err := s.reviewRepo.AverageRating(listingID)
	if err != nil {
		log.Printf("Failed to compute average rating for listing %d: %v", listingID, err)
		return
	}
	if err := s.listingRepo.UpdateRating(listingID, avg); err != nil {
		log.Printf("Failed to update rating for listing %d: %v", listingID, err)
	}
}

func buildReviewItem(review *model.Review) *dto.ReviewItem {
	item := &dto.ReviewItem{
		ID:        review.ID,
		ListingID: review.ListingID,
		Rating:    review.Rating,
		Content:   review.Content,
		Response:  review.Response,
		CreatedAt: review.CreatedAt.Format(time.RFC3339),
	}
	if review.ResponseDate != nil {
		item.ResponseDate = review.ResponseDate.Format(time.RFC3339)
	}
	if review.Couple != nil {
		item.Couple = &dto.ReviewCouple{
			Partner1Name: review.Couple.Partner1Name,
			Partner2Name: review.Couple.Partner2Name,
		}
	}
	return item
}
