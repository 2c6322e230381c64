package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/config"
	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/pkg/jwt"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserBlocked        = errors.New("账号已被禁用")
	ErrUserDeleted        = errors.New("账号已注销")
)

type AuthService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	travelerRepo *repository.TravelerRepository
	cfg          *config.Config
}

func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	travelerRepo *repository.TravelerRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		db:           db,
		userRepo:     userRepo,
		travelerRepo: travelerRepo,
		cfg:          cfg,
	}
}

// Register 注册：同一事务内创建认证账号与旅行者资料
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	traveler := &model.Traveler{
		Name:             req.Name,
		Email:            req.Email,
		TravelInterests:  model.StringArray{},
		VisitedCountries: model.StringArray{},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := &model.User{
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			Role:         model.RoleTraveler,
			Status:       model.UserStatusActive,
		}
		if err := s.userRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		return s.travelerRepo.WithTx(tx).Create(traveler)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		TravelerID: traveler.ID,
		Email:      traveler.Email,
	}, nil
}

// Login 登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != model.UserStatusActive {
		return nil, ErrUserBlocked
	}
	if user.IsDeleted {
		return nil, ErrUserDeleted
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
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
