package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Memetic-Block/membership-nfts/internal/ledger"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

func TestStorage_Transfer(t *testing.T) {
	tests := []struct {
		name        string
		from        string
		to          string
		amount      uint64
		setup       func(t *testing.T, factory *TestDataFactory)
		wantErr     error
		wantFrom    uint64
		wantTo      uint64
	}{
		{
			name:   "successful transfer",
			from:   "addr-a",
			to:     "addr-b",
			amount: 300,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, "addr-a", 1000, false)
				factory.CreateAccount(t, "addr-b", 0, false)
			},
			wantFrom: 700,
			wantTo:   300,
		},
		{
			name:   "transfer creates missing destination account",
			from:   "addr-a",
			to:     "addr-new",
			amount: 100,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, "addr-a", 1000, false)
			},
			wantFrom: 900,
			wantTo:   100,
		},
		{
			name:   "insufficient balance",
			from:   "addr-a",
			to:     "addr-b",
			amount: 1001,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, "addr-a", 1000, false)
				factory.CreateAccount(t, "addr-b", 0, false)
			},
			wantErr:  ledger.ErrTransferFailure,
			wantFrom: 1000,
			wantTo:   0,
		},
		{
			name:   "frozen sender",
			from:   "addr-a",
			to:     "addr-b",
			amount: 100,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, "addr-a", 1000, true)
				factory.CreateAccount(t, "addr-b", 0, false)
			},
			wantErr:  ledger.ErrTransferFailure,
			wantFrom: 1000,
			wantTo:   0,
		},
		{
			name:   "frozen receiver",
			from:   "addr-a",
			to:     "addr-b",
			amount: 100,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, "addr-a", 1000, false)
				factory.CreateAccount(t, "addr-b", 0, true)
			},
			wantErr: ledger.ErrTransferFailure,
			wantTo:  0,
		},
		{
			name:   "zero amount is a no-op",
			from:   "addr-a",
			to:     "addr-b",
			amount: 0,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, "addr-a", 1000, false)
				factory.CreateAccount(t, "addr-b", 0, false)
			},
			wantFrom: 1000,
			wantTo:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			ctx := context.Background()
			err := storage.Transfer(ctx, tt.from, tt.to, tt.amount)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				fromBalance, err := storage.Balance(ctx, tt.from)
				require.NoError(t, err)
				assert.Equal(t, tt.wantFrom, fromBalance)
			}

			toBalance, err := storage.Balance(ctx, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, toBalance)
		})
	}
}

func TestStorage_AllocateTokenID(t *testing.T) {
	t.Run("идентификаторы выдаются последовательно с единицы", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.SeedState(t, genesisState())

		ctx := context.Background()
		for want := int64(1); want <= 3; want++ {
			got, err := storage.AllocateTokenID(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("откат транзакции возвращает счётчик", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.SeedState(t, genesisState())

		ctx := context.Background()

		tx, err := storage.Begin(ctx)
		require.NoError(t, err)

		id, err := tx.AllocateTokenID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		require.NoError(t, tx.Rollback())

		// Неудачный выпуск не оставляет дыры в нумерации
		id, err = storage.AllocateTokenID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})
}

func TestStorage_TransactionAtomicity(t *testing.T) {
	t.Run("commit фиксирует все записи вызова", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.SeedState(t, genesisState())
		factory.CreateAccount(t, "addr-user", 1000, false)

		ctx := context.Background()

		tx, err := storage.Begin(ctx)
		require.NoError(t, err)

		id, err := tx.AllocateTokenID(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.AssignOwner(ctx, id, "addr-user"))
		require.NoError(t, tx.ChargeSubscription(ctx, id, 1, 100))
		require.NoError(t, tx.Transfer(ctx, "addr-user", "addr-receiver", 100))
		require.NoError(t, tx.Commit())

		m, err := storage.Subscription(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &models.Membership{TokenID: id, Owner: "addr-user", Tier: 1, ExpirationHeight: 100}, m)

		balance, err := storage.Balance(ctx, "addr-user")
		require.NoError(t, err)
		assert.Equal(t, uint64(900), balance)
	})

	t.Run("rollback не оставляет частичных эффектов", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.SeedState(t, genesisState())
		factory.CreateAccount(t, "addr-user", 50, false)

		ctx := context.Background()

		tx, err := storage.Begin(ctx)
		require.NoError(t, err)

		id, err := tx.AllocateTokenID(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.AssignOwner(ctx, id, "addr-user"))
		require.NoError(t, tx.ChargeSubscription(ctx, id, 1, 100))

		// Средств не хватает, вызов откатывается целиком
		err = tx.Transfer(ctx, "addr-user", "addr-receiver", 100)
		require.ErrorIs(t, err, ledger.ErrTransferFailure)
		require.NoError(t, tx.Rollback())

		_, err = storage.Subscription(ctx, id)
		assert.ErrorIs(t, err, ledger.ErrTokenNotFound)

		balance, err := storage.Balance(ctx, "addr-user")
		require.NoError(t, err)
		assert.Equal(t, uint64(50), balance)

		state, err := storage.State(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), state.NextTokenID)
	})
}

func TestStorage_Schedule(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	fee, err := storage.ScheduleFee(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), fee, "незаданный уровень читается как выключенный")

	require.NoError(t, storage.SetTierFee(ctx, 1, 100))
	require.NoError(t, storage.SetTierFee(ctx, 2, 250))
	require.NoError(t, storage.SetTierFee(ctx, 1, 120))

	fee, err = storage.ScheduleFee(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(120), fee)

	fees, err := storage.ListTierFees(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TierFee{{Tier: 1, Fee: 120}, {Tier: 2, Fee: 250}}, fees)
}

func TestStorage_State(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.SeedState(t, genesisState())

	ctx := context.Background()

	// Повторный генезис ничего не меняет
	changed := genesisState()
	changed.MintingPaused = false
	changed.SubscriptionPeriod = 999
	require.NoError(t, storage.EnsureGenesisState(ctx, changed))

	state, err := storage.State(ctx)
	require.NoError(t, err)
	assert.True(t, state.MintingPaused)
	assert.Equal(t, uint64(100), state.SubscriptionPeriod)

	require.NoError(t, storage.SetPaused(ctx, false))
	require.NoError(t, storage.SetFeeReceiver(ctx, "addr-treasury"))
	require.NoError(t, storage.SetSubscriptionPeriod(ctx, 200))

	height, err := storage.AdvanceHeight(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), height)

	state, err = storage.State(ctx)
	require.NoError(t, err)
	assert.False(t, state.MintingPaused)
	assert.Equal(t, "addr-treasury", state.FeeReceiver)
	assert.Equal(t, uint64(200), state.SubscriptionPeriod)
	assert.Equal(t, uint64(42), state.CurrentHeight)
}

func TestStorage_Membership(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateToken(t, 1, "addr-user", 2, 150)

	ctx := context.Background()

	owner, err := storage.OwnerOf(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "addr-user", owner)

	_, err = storage.OwnerOf(ctx, 99)
	assert.ErrorIs(t, err, ledger.ErrTokenNotFound)

	// Продление перезаписывает запись целиком
	require.NoError(t, storage.ChargeSubscription(ctx, 1, 1, 300))

	m, err := storage.Subscription(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.Tier)
	assert.Equal(t, uint64(300), m.ExpirationHeight)

	_, err = storage.Subscription(ctx, 99)
	assert.ErrorIs(t, err, ledger.ErrTokenNotFound)
}

func TestStorage_Users(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	user := models.User{
		Address:      "addr-alice",
		Username:     "alice",
		PasswordHash: "hashedpassword",
		Role:         models.RoleUser,
	}
	require.NoError(t, storage.RegisterUser(ctx, user))

	// Повторная регистрация того же имени отклоняется
	dup := user
	dup.Address = "addr-other"
	assert.Error(t, storage.RegisterUser(ctx, dup))

	// EnsureUser на занятом имени молча ничего не меняет
	require.NoError(t, storage.EnsureUser(ctx, dup))

	got, err := storage.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &user, got)

	_, err = storage.GetUserByUsername(ctx, "ghost")
	assert.Error(t, err)
}
