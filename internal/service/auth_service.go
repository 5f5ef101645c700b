package service

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vowlink/wedding_go_server/config"
	"github.com/vowlink/wedding_go_server/internal/model"
	"github.com/vowlink/wedding_go_server/internal/model/dto"
	"github.com/vowlink/wedding_go_server/internal/pkg/email"
	"github.com/vowlink/wedding_go_server/internal/pkg/jwt"
	"github.com/vowlink/wedding_go_server/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidWeddingDate = errors.New("婚期格式不正确")
)

type AuthService struct {
	userRepo    *repository.UserRepository
	listingRepo *repository.ListingRepository
	coupleRepo  *repository.CoupleRepository
	emailSvc    *email.Service
	cfg         *config.Config
}

func NewAuthService(
	userRepo *repository.UserRepository,
	listingRepo *repository.ListingRepository,
	coupleRepo *repository.CoupleRepository,
	emailSvc *email.Service,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
		coupleRepo:  coupleRepo,
		emailSvc:    emailSvc,
		cfg:         cfg,
	}
}

// RegisterVendor 商家注册，账号和展示信息在同一事务里创建
func (s *AuthService) RegisterVendor(req *dto.RegisterVendorRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleVendor,
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateWithTx(tx, user); err != nil {
			return err
		}
		listing := &model.Listing{
			UserID:       user.ID,
			BusinessName: req.BusinessName,
			Category:     req.Category,
			Location:     req.Location,
			Description:  req.Description,
			PriceRange:   req.PriceRange,
			Images:       "[]",
		}
		return s.listingRepo.CreateWithTx(tx, listing)
	})
	if err != nil {
		return nil, err
	}

	// 欢迎邮件失败不影响注册
	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendWelcome(user.Email, req.BusinessName); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
			}
		}()
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserID: user.ID, Token: token}, nil
}

// RegisterCouple 新人注册
func (s *AuthService) RegisterCouple(req *dto.RegisterCoupleRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	var weddingDate *time.Time
	if req.WeddingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.WeddingDate)
		if err != nil {
			return nil, ErrInvalidWeddingDate
		}
		weddingDate = &parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleCouple,
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateWithTx(tx, user); err != nil {
			return err
		}
		couple := &model.Couple{
			UserID:       user.ID,
			Partner1Name: req.Partner1Name,
			Partner2Name: req.Partner2Name,
			Location:     req.Location,
			WeddingDate:  weddingDate,
			Budget:       req.Budget,
		}
		return s.coupleRepo.CreateWithTx(tx, couple)
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{UserID: user.ID, Token: token}, nil
}

// Login 登录，商家和新人共用
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: &dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
