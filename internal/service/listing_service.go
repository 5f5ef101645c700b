package service

import (
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/oss"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var (
	ErrListingNotFound  = errors.New("商家不存在")
	ErrInvalidImageType = errors.New("不支持的图片格式")
	ErrImageTooLarge    = errors.New("图片大小超出限制")
	ErrImageLimit       = errors.New("图片数量已达上限")
	ErrImageNotFound    = errors.New("图片不存在")
	ErrCityNotFound     = errors.New("城市不存在")
	// OSS 是可选依赖，未配置时 ossClient 为 nil，图片上传直接拒绝
	ErrStorageUnavailable = errors.New("图片存储服务未启用")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListingService struct {
	listingRepo *repository.ListingRepository
	reviewRepo  *repository.ReviewRepository
	cityRepo    *repository.CityRepository
	ossClient   *oss.Client
	cfg         *config.Config
}

func NewListingService(
	listingRepo *repository.ListingRepository,
	reviewRepo *repository.ReviewRepository,
	cityRepo *repository.CityRepository,
	ossClient *oss.Client,
	cfg *config.Config,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
		cityRepo:    cityRepo,
		ossClient:   ossClient,
		cfg:         cfg,
	}
}

// Search 搜索商家。先在库内过滤，再按订阅档位排序，最后内存分页。
// 排序必须覆盖全量过滤结果，所以分页不能下推到 SQL。
func (s *ListingService) Search(req *dto.SearchListingsRequest) ([]*dto.ListingItem, int64, error) {
	filter := repository.ListingFilter{
		Category:   req.Category,
		Location:   req.Location,
		PriceRange: req.PriceRange,
		MinRating:  req.MinRating,
		CityID:     req.CityID,
	}

	listings, err := s.listingRepo.Search(filter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	ranked := RankListings(listings, now)
	total := int64(len(ranked))

	page, pageSize := normalizePage(req.Page, req.PageSize)
	start := (page - 1) * pageSize
	if start >= len(ranked) {
		return []*dto.ListingItem{}, total, nil
	}
	end := start + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}

	items := make([]*dto.ListingItem, 0, end-start)
	for _, listing := range ranked[start:end] {
		items = append(items, s.buildListingItem(listing, now))
	}

	return items, total, nil
}

// GetDetail 商家详情，带服务城市和评价数
func (s *ListingService) GetDetail(id int64) (*dto.ListingDetail, error) {
	listing, err := s.listingRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return s.buildDetail(listing)
}

// GetMine 商家查看自己的展示信息
func (s *ListingService) GetMine(userID int64) (*dto.ListingDetail, error) {
	listing, err := s.listingRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return s.buildDetail(listing)
}

// Update 商家更新自己的展示信息，只更新传了的字段
func (s *ListingService) Update(userID int64, req *dto.UpdateListingRequest) (*dto.ListingDetail, error) {
	listing, err := s.listingRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.BusinessName != nil {
		fields["business_name"] = *req.BusinessName
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.PriceRange != nil {
		fields["price_range"] = *req.PriceRange
	}
	if req.WebsiteURL != nil {
		fields["website_url"] = *req.WebsiteURL
	}
	if req.FacebookURL != nil {
		fields["facebook_url"] = *req.FacebookURL
	}
	if req.InstagramURL != nil {
		fields["instagram_url"] = *req.InstagramURL
	}

	if len(fields) > 0 {
		if err := s.listingRepo.UpdateFields(listing.ID, fields); err != nil {
			return nil, err
		}
	}

	if req.CityIDs != nil {
		cities, err := s.cityRepo.GetByIDs(req.CityIDs)
		if err != nil {
			return nil, err
		}
		if len(cities) != len(req.CityIDs) {
			return nil, ErrCityNotFound
		}
		if err := s.cityRepo.ReplaceServiceAreas(listing.ID, req.CityIDs); err != nil {
			return nil, err
		}
	}

	return s.GetMine(userID)
}

// ListCities 全量城市列表（前端下拉用）
func (s *ListingService) ListCities() ([]*dto.CityItem, error) {
	cities, err := s.cityRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CityItem, len(cities))
	for i, city := range cities {
		items[i] = &dto.CityItem{ID: city.ID, Name: city.Name}
	}
	return items, nil
}

// UploadImage 上传展示图片并追加到图片列表
func (s *ListingService) UploadImage(userID int64, filename string, data []byte) (*dto.UploadImageResponse, error) {
	listing, err := s.listingRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.isAllowedExtension(ext) {
		return nil, ErrInvalidImageType
	}
	if s.cfg.Upload.MaxSize > 0 && int64(len(data)) > s.cfg.Upload.MaxSize {
		return nil, ErrImageTooLarge
	}

	images := parseImages(listing.Images)
	if s.cfg.Upload.MaxImages > 0 && len(images) >= s.cfg.Upload.MaxImages {
		return nil, ErrImageLimit
	}

	if s.ossClient == nil {
		return nil, ErrStorageUnavailable
	}

	url, err := s.ossClient.UploadListingImage(listing.ID, data, ext)
	if err != nil {
		return nil, err
	}

	images = append(images, url)
	if err := s.listingRepo.UpdateFields(listing.ID, map[string]interface{}{
		"images": encodeImages(images),
	}); err != nil {
		return nil, err
	}

	return &dto.UploadImageResponse{URL: url, Images: images}, nil
}

// DeleteImage 删除展示图片，OSS 删除失败只记日志不回滚
func (s *ListingService) DeleteImage(userID int64, url string) ([]string, error) {
	listing, err := s.listingRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	images := parseImages(listing.Images)
	kept := make([]string, 0, len(images))
	found := false
	for _, img := range images {
		if img == url {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return nil, ErrImageNotFound
	}

	if err := s.listingRepo.UpdateFields(listing.ID, map[string]interface{}{
		"images": encodeImages(kept),
	}); err != nil {
		return nil, err
	}

	if s.ossClient != nil {
		if err := s.ossClient.Delete(s.ossClient.ExtractObjectKey(url)); err != nil {
			log.Printf("Failed to delete OSS object for listing %d: %v", listing.ID, err)
		}
	}

	return kept, nil
}

func (s *ListingService) buildDetail(listing *model.Listing) (*dto.ListingDetail, error) {
	now := time.Now()
	detail := &dto.ListingDetail{
		ListingItem:  *s.buildListingItem(listing, now),
		WebsiteURL:   listing.WebsiteURL,
		FacebookURL:  listing.FacebookURL,
		InstagramURL: listing.InstagramURL,
		Cities:       []dto.CityItem{},
	}

	cities, err := s.cityRepo.ListServiceAreaCities(listing.ID)
	if err != nil {
		return nil, err
	}
	for _, city := range cities {
		detail.Cities = append(detail.Cities, dto.CityItem{ID: city.ID, Name: city.Name})
	}

	count, err := s.reviewRepo.CountByListing(listing.ID)
	if err != nil {
		return nil, err
	}
	detail.ReviewCount = count

	return detail, nil
}

func (s *ListingService) buildListingItem(listing *model.Listing, now time.Time) *dto.ListingItem {
	return &dto.ListingItem{
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

func (s *ListingService) isAllowedExtension(ext string) bool {
	allowed := s.cfg.Upload.AllowedExtensions
	if len(allowed) == 0 {
		allowed = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	}
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseImages 图片列表在库里存 JSON 数组，解析失败按空列表处理
func parseImages(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return []string{}
	}
	return images
}

func encodeImages(images []string) string {
	data, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(data)
}
