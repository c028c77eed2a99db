package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nearfin/near/internal/ledger"
)

func TestService_Init(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *ledger.MockSlot)
		wantErr   bool
		wantSeed  bool
	}

	persisted := ledger.State{
		Accounts: []ledger.Account{{ID: "only", Name: "Persisted", Balance: decimal.NewFromInt(7)}},
	}

	persistedData, err := ledger.EncodeState(persisted)
	require.NoError(t, err)

	tests := []testCase{
		{
			name: "EmptySlotFallsBackToSeed",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrEmptySlot)
			},
			wantSeed: true,
		},
		{
			name: "CorruptSlotFallsBackToSeed",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return([]byte("{not json"), nil)
			},
			wantSeed: true,
		},
		{
			name: "PersistedStateWins",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return(persistedData, nil)
			},
		},
		{
			name: "ReadFailure",
			setupMock: func(m *ledger.MockSlot) {
				m.EXPECT().Read(gomock.Any()).Return(nil, errors.New("disk on fire"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			slot := ledger.NewMockSlot(ctrl)
			tt.setupMock(slot)

			svc := ledger.NewService(slot)
			err := svc.Init(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			state := svc.Snapshot()
			if tt.wantSeed {
				assert.NotEmpty(t, state.Categories, "seed state has categories")
				return
			}

			require.Len(t, state.Accounts, 1)
			assert.Equal(t, "only", state.Accounts[0].ID)
		})
	}
}

func TestService_DispatchPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := ledger.NewMockSlot(ctrl)
	slot.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrEmptySlot)

	var written []byte

	slot.EXPECT().
		Write(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data []byte) error {
			written = data
			return nil
		})

	svc := ledger.NewService(slot)
	require.NoError(t, svc.Init(context.Background()))

	svc.Dispatch(context.Background(), ledger.AddCategory{
		Category: ledger.Category{ID: "c9", Name: "Voyages", Type: ledger.CategoryExpense},
	})

	require.NotNil(t, written, "dispatch must write the slot")

	state, err := ledger.DecodeState(written)
	require.NoError(t, err)
	assert.Equal(t, "Voyages", state.Categories[len(state.Categories)-1].Name)
}

func TestService_DispatchSurvivesWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := ledger.NewMockSlot(ctrl)
	slot.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrEmptySlot)
	slot.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	svc := ledger.NewService(slot)
	require.NoError(t, svc.Init(context.Background()))

	before := len(svc.Snapshot().Transactions)
	svc.Dispatch(context.Background(), ledger.AddTransaction{Transaction: ledger.Transaction{ID: "t9"}})

	// The in-memory mutation sticks even when persistence fails.
	assert.Len(t, svc.Snapshot().Transactions, before+1)
}

func TestService_DispatchAllWritesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := ledger.NewMockSlot(ctrl)
	slot.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrEmptySlot)
	slot.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	svc := ledger.NewService(slot)
	require.NoError(t, svc.Init(context.Background()))

	cmds := []ledger.Command{
		ledger.AddTransaction{Transaction: ledger.Transaction{ID: "t1"}},
		ledger.AddTransaction{Transaction: ledger.Transaction{ID: "t2"}},
		ledger.AddTransaction{Transaction: ledger.Transaction{ID: "t3"}},
	}
	svc.DispatchAll(context.Background(), cmds)

	assert.GreaterOrEqual(t, len(svc.Snapshot().Transactions), 3)
}

func TestService_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := ledger.NewMockSlot(ctrl)
	slot.EXPECT().Read(gomock.Any()).Return(nil, ledger.ErrEmptySlot)
	slot.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)

	svc := ledger.NewService(slot)
	require.NoError(t, svc.Init(context.Background()))
	assert.NoError(t, svc.Close(context.Background()))
}
