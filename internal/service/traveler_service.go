package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs3c/travelbuddy_go_server/internal/model"
	"github.com/qs3c/travelbuddy_go_server/internal/model/dto"
	"github.com/qs3c/travelbuddy_go_server/internal/repository"
)

var ErrTravelerNotFound = errors.New("旅行者资料不存在")

type TravelerService struct {
	userRepo     *repository.UserRepository
	travelerRepo *repository.TravelerRepository
}

func NewTravelerService(
	userRepo *repository.UserRepository,
	travelerRepo *repository.TravelerRepository,
) *TravelerService {
	return &TravelerService{
		userRepo:     userRepo,
		travelerRepo: travelerRepo,
	}
}

// GetMe 按角色分发资料查询：管理员账号没有旅行者资料
func (s *TravelerService) GetMe(userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	resp := &dto.ProfileResponse{
		Role: user.Role,
		Account: &dto.UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}

	switch user.Role {
	case model.RoleAdmin:
		// 管理员只返回账号信息

	default:
		traveler, err := s.travelerRepo.GetByEmail(user.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTravelerNotFound
			}
			return nil, err
		}
		resp.Traveler = traveler
	}

	return resp, nil
}

// UpdateMe 更新旅行者资料，只覆盖提交的字段
func (s *TravelerService) UpdateMe(email string, req *dto.UpdateProfileRequest) (*model.Traveler, error) {
	traveler, err := s.travelerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		traveler.Name = *req.Name
	}
	if req.ContactNumber != nil {
		traveler.ContactNumber = *req.ContactNumber
	}
	if req.Address != nil {
		traveler.Address = *req.Address
	}
	if req.Bio != nil {
		traveler.Bio = *req.Bio
	}
	if req.ProfileImage != nil {
		traveler.ProfileImage = *req.ProfileImage
	}
	if req.CurrentLocation != nil {
		traveler.CurrentLocation = *req.CurrentLocation
	}
	if req.TravelInterests != nil {
		traveler.TravelInterests = req.TravelInterests
	}
	if req.VisitedCountries != nil {
		traveler.VisitedCountries = req.VisitedCountries
	}

	if err := s.travelerRepo.Update(traveler); err != nil {
		return nil, err
	}

	return traveler, nil
}
