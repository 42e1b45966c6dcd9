package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
	"github.com/buffmasterbran/pirani-connector/internal/domain/storefront"
)

// PayoutService imports storefront payouts and manages payout settings.
type PayoutService struct {
	platform    storefront.Platform
	payoutRepo  payout.Repository
	settingRepo payout.SettingRepository
	logger      *zap.Logger
}

// NewPayoutService creates a new payout sync service
func NewPayoutService(
	platform storefront.Platform,
	payoutRepo payout.Repository,
	settingRepo payout.SettingRepository,
	logger *zap.Logger,
) *PayoutService {
	return &PayoutService{
		platform:    platform,
		payoutRepo:  payoutRepo,
		settingRepo: settingRepo,
		logger:      logger,
	}
}

// ImportPayouts fetches recent payouts and their balance transactions from
// the platform. Transactions missing an ID, a source order or a processing
// date are placeholder rows the platform emits for pending settlements;
// they are dropped with a log line, never stored.
func (s *PayoutService) ImportPayouts(ctx context.Context) (*ImportResult, error) {
	payouts, err := s.platform.FetchPayouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching payouts: %w", err)
	}

	result := &ImportResult{Fetched: len(payouts)}
	for i := range payouts {
		p := &payouts[i]
		txns, err := s.platform.FetchPayoutTransactions(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching transactions for payout %d: %w", p.ID, err)
		}

		p.Transactions = p.Transactions[:0]
		dropped := 0
		for _, t := range txns {
			if !t.IsComplete() {
				dropped++
				continue
			}
			t.PayoutID = p.ID
			p.Transactions = append(p.Transactions, t)
		}
		if dropped > 0 {
			s.logger.Info("incomplete payout transactions dropped",
				zap.Int64("payout_id", p.ID),
				zap.Int("dropped", dropped))
		}

		inserted, err := s.payoutRepo.Save(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("saving payout %d: %w", p.ID, err)
		}
		if inserted {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	s.logger.Info("payout import finished",
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ListPayouts returns the stored payouts, newest date first
func (s *PayoutService) ListPayouts(ctx context.Context) ([]payout.Payout, error) {
	return s.payoutRepo.List(ctx)
}

// GetPayout returns one stored payout with its transactions
func (s *PayoutService) GetPayout(ctx context.Context, id int64) (*payout.Payout, error) {
	return s.payoutRepo.FindByID(ctx, id)
}

// ListSettings returns every payout setting
func (s *PayoutService) ListSettings(ctx context.Context) ([]payout.Setting, error) {
	return s.settingRepo.ListSettings(ctx)
}

// CreateSettingInput carries the fields for a new payout setting.
// ERPAccountID and Description are optional.
type CreateSettingInput struct {
	Name         string
	Type         string
	Value        string
	ERPAccountID string
	Description  string
}

// CreateSetting adds a new payout setting
func (s *PayoutService) CreateSetting(ctx context.Context, input CreateSettingInput) (*payout.Setting, error) {
	setting, err := payout.NewSetting(input.Name, input.Type, input.Value)
	if err != nil {
		return nil, err
	}
	setting.ERPAccountID = input.ERPAccountID
	setting.Description = input.Description
	if err := s.settingRepo.CreateSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// UpdateSettingValue overrides the current value of a setting
func (s *PayoutService) UpdateSettingValue(ctx context.Context, id uuid.UUID, value string) (*payout.Setting, error) {
	setting, err := s.settingRepo.FindSettingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := setting.SetValue(value); err != nil {
		return nil, err
	}
	if err := s.settingRepo.UpdateSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// RevertSetting resets a setting to its default value
func (s *PayoutService) RevertSetting(ctx context.Context, id uuid.UUID) (*payout.Setting, error) {
	setting, err := s.settingRepo.FindSettingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	setting.Revert()
	if err := s.settingRepo.UpdateSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}
