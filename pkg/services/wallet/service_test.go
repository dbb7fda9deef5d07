package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/fadedpez/blackjack/pkg/entities"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRepository is a mock implementation of the wallet repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetWallet(ctx context.Context, playerID string) (*entities.Wallet, error) {
	args := m.Called(ctx, playerID)
	if wallet, ok := args.Get(0).(*entities.Wallet); ok {
		return wallet, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockRepository) GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	args := m.Called(ctx, playerID, limit)
	if txs, ok := args.Get(0).([]*entities.Transaction); ok {
		return txs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) Close() error {
	return m.Called().Error(0)
}

type ServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service *Service
	repo    *walletRepo.MemoryRepository
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = walletRepo.NewMemoryRepository()
	s.service = NewService(s.repo)
}

func (s *ServiceTestSuite) TestOpenCreatesWalletOnce() {
	wallet, created, err := s.service.Open(s.ctx, "player", 100)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(int64(100), wallet.Balance)

	_, err = s.service.Debit(s.ctx, "player", 10, entities.TransactionTypeBet, "r1")
	s.Require().NoError(err)

	wallet, created, err = s.service.Open(s.ctx, "player", 100)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(int64(90), wallet.Balance, "reopening must not reset the balance")
}

func (s *ServiceTestSuite) TestDebitAndCreditRecordLedger() {
	_, _, err := s.service.Open(s.ctx, "player", 100)
	s.Require().NoError(err)

	wallet, err := s.service.Debit(s.ctx, "player", 10, entities.TransactionTypeBet, "r1")
	s.Require().NoError(err)
	s.Equal(int64(90), wallet.Balance)

	wallet, err = s.service.Credit(s.ctx, "player", 20, entities.TransactionTypePayout, "r1")
	s.Require().NoError(err)
	s.Equal(int64(110), wallet.Balance)

	balance, err := s.service.Balance(s.ctx, "player")
	s.Require().NoError(err)
	s.Equal(int64(110), balance)

	txs, err := s.service.Transactions(s.ctx, "player", 0)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal(entities.TransactionTypeOpen, txs[0].Type)
	s.Equal(int64(-10), txs[1].Amount)
	s.Equal(entities.TransactionTypeBet, txs[1].Type)
	s.Equal(int64(20), txs[2].Amount)
	s.Equal(int64(110), txs[2].BalanceAfter)
	s.Equal("r1", txs[2].ReferenceID)
}

func (s *ServiceTestSuite) TestDebitInsufficientFundsLeavesBalance() {
	_, _, err := s.service.Open(s.ctx, "player", 5)
	s.Require().NoError(err)

	_, err = s.service.Debit(s.ctx, "player", 10, entities.TransactionTypeDouble, "r1")
	s.ErrorIs(err, ErrInsufficientFunds)

	balance, err := s.service.Balance(s.ctx, "player")
	s.Require().NoError(err)
	s.Equal(int64(5), balance)
}

func (s *ServiceTestSuite) TestNonPositiveAmountsRejected() {
	_, _, err := s.service.Open(s.ctx, "player", 50)
	s.Require().NoError(err)

	_, err = s.service.Debit(s.ctx, "player", 0, entities.TransactionTypeBet, "")
	s.ErrorIs(err, ErrNegativeAmount)

	_, err = s.service.Credit(s.ctx, "player", -5, entities.TransactionTypePayout, "")
	s.ErrorIs(err, ErrNegativeAmount)
}

func (s *ServiceTestSuite) TestUnknownWallet() {
	_, err := s.service.Balance(s.ctx, "ghost")
	s.ErrorIs(err, walletRepo.ErrWalletNotFound)
}

func (s *ServiceTestSuite) TestOpenPropagatesRepositoryErrors() {
	repo := new(MockRepository)
	repoErr := errors.New("disk on fire")
	repo.On("GetWallet", mock.Anything, "player").Return(nil, repoErr)

	_, _, err := NewService(repo).Open(s.ctx, "player", 100)

	s.ErrorIs(err, repoErr)
	repo.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestDebitDoesNotRecordWhenSaveFails() {
	repo := new(MockRepository)
	saveErr := errors.New("write failed")
	repo.On("GetWallet", mock.Anything, "player").Return(&entities.Wallet{PlayerID: "player", Balance: 50}, nil)
	repo.On("SaveWallet", mock.Anything, mock.Anything).Return(saveErr)

	_, err := NewService(repo).Debit(s.ctx, "player", 10, entities.TransactionTypeBet, "r1")

	s.ErrorIs(err, saveErr)
	repo.AssertNotCalled(s.T(), "AddTransaction", mock.Anything, mock.Anything)
}
