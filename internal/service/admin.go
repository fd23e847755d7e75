package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/apiclient"
	"github.com/Cheertaboi/storefront/internal/models"
)

const (
	generateDiscountError = "Error generating discount"
	fetchStatsError       = "Error fetching stats"
	userIDRequired        = "User ID is required"
)

type AdminAPI interface {
	GenerateDiscount(ctx context.Context, userID string) (models.GenerateDiscountResponse, error)
	GetStats(ctx context.Context, userID string) (models.Stats, error)
}

// AdminView holds the result of at most one admin action.
type AdminView struct {
	UserID           string
	DiscountResponse string
	Stats            *models.Stats
	Error            string
}

type AdminService struct {
	api    AdminAPI
	logger *zap.Logger
}

func NewAdminService(api AdminAPI, logger *zap.Logger) *AdminService {
	return &AdminService{api: api, logger: logger}
}

// GenerateDiscount asks the backend to issue a discount code for userID.
func (s *AdminService) GenerateDiscount(ctx context.Context, userID string) AdminView {
	v := AdminView{UserID: userID}
	if strings.TrimSpace(userID) == "" {
		v.Error = userIDRequired
		return v
	}
	resp, err := s.api.GenerateDiscount(ctx, userID)
	if err != nil {
		s.logger.Warn("generate discount failed", zap.String("user_id", userID), zap.Error(err))
		v.Error = apiclient.Describe(err, generateDiscountError)
		return v
	}
	v.DiscountResponse = resp.Message + ": " + resp.DiscountCode
	return v
}

// FetchStats loads the purchase summary for userID.
func (s *AdminService) FetchStats(ctx context.Context, userID string) AdminView {
	v := AdminView{UserID: userID}
	if strings.TrimSpace(userID) == "" {
		v.Error = userIDRequired
		return v
	}
	stats, err := s.api.GetStats(ctx, userID)
	if err != nil {
		s.logger.Warn("fetch stats failed", zap.String("user_id", userID), zap.Error(err))
		v.Error = apiclient.Describe(err, fetchStatsError)
		return v
	}
	v.Stats = &stats
	return v
}

// DiscountCodesLabel joins codes for display, or returns "None" when there are none.
func DiscountCodesLabel(codes []string) string {
	if len(codes) == 0 {
		return "None"
	}
	return strings.Join(codes, ", ")
}
