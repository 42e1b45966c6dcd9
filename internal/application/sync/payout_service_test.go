package sync

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/buffmasterbran/pirani-connector/internal/domain/payout"
)

// MockPayoutRepository is a mock implementation of payout.Repository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) FindByID(ctx context.Context, id int64) (*payout.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.Payout), args.Error(1)
}

func (m *MockPayoutRepository) List(ctx context.Context) ([]payout.Payout, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payout.Payout), args.Error(1)
}

func (m *MockPayoutRepository) Save(ctx context.Context, p *payout.Payout) (bool, error) {
	args := m.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

// MockSettingRepository is a mock implementation of payout.SettingRepository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) FindSettingByID(ctx context.Context, id uuid.UUID) (*payout.Setting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.Setting), args.Error(1)
}

func (m *MockSettingRepository) ListSettings(ctx context.Context) ([]payout.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payout.Setting), args.Error(1)
}

func (m *MockSettingRepository) CreateSetting(ctx context.Context, s *payout.Setting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingRepository) UpdateSetting(ctx context.Context, s *payout.Setting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestPayoutService_ImportPayouts(t *testing.T) {
	ctx := context.Background()

	t.Run("drops incomplete transactions and stores the rest", func(t *testing.T) {
		payouts := []payout.Payout{
			{ID: 100, Status: "paid", Amount: decimal.NewFromInt(250), Currency: "USD"},
		}
		txns := []payout.Transaction{
			{ID: 1, SourceOrderID: 11, Type: "charge", ProcessedAt: time.Now()},
			{Type: "charge"}, // placeholder row without ID
			{ID: 3, Type: "adjustment", ProcessedAt: time.Now()}, // no source order
			{ID: 4, SourceOrderID: 14, Type: "refund"},           // no processing date
		}

		platform := new(MockPlatform)
		platform.On("FetchPayouts", ctx).Return(payouts, nil)
		platform.On("FetchPayoutTransactions", ctx, int64(100)).Return(txns, nil)

		repo := new(MockPayoutRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*payout.Payout")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*payout.Payout)
				require.Len(t, p.Transactions, 1)
				assert.Equal(t, int64(1), p.Transactions[0].ID)
				assert.Equal(t, int64(100), p.Transactions[0].PayoutID)
			}).
			Return(true, nil)

		svc := NewPayoutService(platform, repo, new(MockSettingRepository), zap.NewNop())
		result, err := svc.ImportPayouts(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Fetched)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 0, result.Skipped)
		repo.AssertExpectations(t)
	})

	t.Run("existing payouts are skipped", func(t *testing.T) {
		payouts := []payout.Payout{{ID: 100}, {ID: 101}}

		platform := new(MockPlatform)
		platform.On("FetchPayouts", ctx).Return(payouts, nil)
		platform.On("FetchPayoutTransactions", ctx, mock.AnythingOfType("int64")).
			Return([]payout.Transaction{}, nil)

		repo := new(MockPayoutRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*payout.Payout")).Return(false, nil)

		svc := NewPayoutService(platform, repo, new(MockSettingRepository), zap.NewNop())
		result, err := svc.ImportPayouts(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Skipped)
		assert.Equal(t, 0, result.Imported)
	})

	t.Run("transaction fetch failure aborts the run", func(t *testing.T) {
		payouts := []payout.Payout{{ID: 100}}

		platform := new(MockPlatform)
		platform.On("FetchPayouts", ctx).Return(payouts, nil)
		platform.On("FetchPayoutTransactions", ctx, int64(100)).Return(nil, assert.AnError)

		repo := new(MockPayoutRepository)
		svc := NewPayoutService(platform, repo, new(MockSettingRepository), zap.NewNop())

		_, err := svc.ImportPayouts(ctx)

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPayoutService_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a setting", func(t *testing.T) {
		repo := new(MockSettingRepository)
		repo.On("CreateSetting", ctx, mock.AnythingOfType("*payout.Setting")).Return(nil)

		svc := NewPayoutService(new(MockPlatform), new(MockPayoutRepository), repo, zap.NewNop())
		setting, err := svc.CreateSetting(ctx, CreateSettingInput{
			Name:         "payout_base_account",
			Type:         "account",
			Value:        "1120",
			ERPAccountID: "315",
			Description:  "Bank account payouts are deposited to",
		})

		require.NoError(t, err)
		assert.Equal(t, "1120", setting.CurrentValue)
		assert.Equal(t, "1120", setting.DefaultValue)
		assert.Equal(t, "315", setting.ERPAccountID)
		assert.Equal(t, "Bank account payouts are deposited to", setting.Description)
		assert.True(t, setting.IsActive)
	})

	t.Run("rejects an incomplete setting", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewPayoutService(new(MockPlatform), new(MockPayoutRepository), repo, zap.NewNop())

		_, err := svc.CreateSetting(ctx, CreateSettingInput{Name: "payout_base_account", Type: "account"})

		assert.ErrorIs(t, err, payout.ErrInvalidSetting)
		repo.AssertNotCalled(t, "CreateSetting", mock.Anything, mock.Anything)
	})

	t.Run("overrides and reverts a value", func(t *testing.T) {
		setting, err := payout.NewSetting("payout_fee_account", "account", "6310")
		require.NoError(t, err)

		repo := new(MockSettingRepository)
		repo.On("FindSettingByID", ctx, setting.ID).Return(setting, nil)
		repo.On("UpdateSetting", ctx, setting).Return(nil)

		svc := NewPayoutService(new(MockPlatform), new(MockPayoutRepository), repo, zap.NewNop())

		updated, err := svc.UpdateSettingValue(ctx, setting.ID, "6320")
		require.NoError(t, err)
		assert.Equal(t, "6320", updated.CurrentValue)
		assert.Equal(t, "6310", updated.DefaultValue)

		reverted, err := svc.RevertSetting(ctx, setting.ID)
		require.NoError(t, err)
		assert.Equal(t, "6310", reverted.CurrentValue)
	})

	t.Run("unknown setting", func(t *testing.T) {
		id := uuid.New()
		repo := new(MockSettingRepository)
		repo.On("FindSettingByID", ctx, id).Return(nil, payout.ErrSettingNotFound)

		svc := NewPayoutService(new(MockPlatform), new(MockPayoutRepository), repo, zap.NewNop())
		_, err := svc.UpdateSettingValue(ctx, id, "9999")

		assert.ErrorIs(t, err, payout.ErrSettingNotFound)
	})
}
