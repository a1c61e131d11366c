package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/remit_backend/internal/apperrors"
	"github.com/SscSPs/remit_backend/internal/core/domain"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo   *MockTransactionRepository
	mockQuotes    *MockQuoteService
	mockPublisher *MockPublisher
	fixedNow      time.Time
	service       portssvc.TransactionSvcFacade
	breakdown     domain.Breakdown
	userID        string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockQuotes = new(MockQuoteService)
	suite.mockPublisher = new(MockPublisher)
	suite.fixedNow = time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockQuotes,
		services.WithEventPublisher(suite.mockPublisher),
		services.WithTransactionClock(func() time.Time { return suite.fixedNow }),
	)
	suite.userID = uuid.NewString()
	suite.breakdown = domain.Breakdown{
		AmountUSD:      dec("100.00"),
		TargetCurrency: "GBP",
		ExchangeRate:   dec("0.75"),
		FeePercentage:  dec("10.00"),
		FeeAmount:      dec("10.00"),
		AmountAfterFee: dec("90.00"),
		FinalAmount:    dec("67.50"),
	}
}

func (suite *TransactionServiceTestSuite) TearDownTest() {
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockQuotes.AssertExpectations(suite.T())
	suite.mockPublisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCommit_PersistsSnapshotAsCompleted() {
	ctx := context.Background()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Status == domain.StatusCompleted &&
			txn.UserID == suite.userID &&
			txn.RecipientName == "Jane Doe" &&
			txn.FinalAmount.Equal(dec("67.50")) &&
			txn.FeeAmount.Equal(dec("10.00")) &&
			txn.ExchangeRate.Equal(dec("0.75")) &&
			txn.CreatedAt.Equal(suite.fixedNow)
	})).Return(nil).Once()
	suite.mockPublisher.On("PublishTransactionCommitted", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.Commit(ctx, suite.breakdown, suite.userID, "  Jane Doe ")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal("GBP", txn.TargetCurrency)
}

func (suite *TransactionServiceTestSuite) TestCommit_TwiceCreatesTwoRecords() {
	ctx := context.Background()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Twice()
	suite.mockPublisher.On("PublishTransactionCommitted", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Twice()

	first, err := suite.service.Commit(ctx, suite.breakdown, suite.userID, "Jane Doe")
	suite.Require().NoError(err)
	second, err := suite.service.Commit(ctx, suite.breakdown, suite.userID, "Jane Doe")
	suite.Require().NoError(err)

	suite.NotEqual(first.TransactionID, second.TransactionID)
}

func (suite *TransactionServiceTestSuite) TestCommit_PersistenceFailureMarksFailed() {
	ctx := context.Background()
	dbErr := errors.New("connection reset")
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(dbErr).Once()

	txn, err := suite.service.Commit(ctx, suite.breakdown, suite.userID, "Jane Doe")

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.ErrorIs(err, dbErr)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StatusFailed, txn.Status)
	suite.mockPublisher.AssertNotCalled(suite.T(), "PublishTransactionCommitted", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCommit_PublishFailureDoesNotFailCommit() {
	ctx := context.Background()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockPublisher.On("PublishTransactionCommitted", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(errors.New("broker unavailable")).Once()

	txn, err := suite.service.Commit(ctx, suite.breakdown, suite.userID, "Jane Doe")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestCommit_RejectsBlankRecipient() {
	txn, err := suite.service.Commit(context.Background(), suite.breakdown, suite.userID, "   ")

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	b := suite.breakdown
	suite.mockQuotes.On("Calculate", ctx, dec("100.00"), "GBP").Return(&b, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	suite.mockPublisher.On("PublishTransactionCommitted", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, breakdown, err := suite.service.CreateTransaction(ctx, suite.userID, dec("100.00"), "GBP", "Jane Doe")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.True(txn.FinalAmount.Equal(breakdown.FinalAmount))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RateUnavailableStoresNothing() {
	ctx := context.Background()
	suite.mockQuotes.On("Calculate", ctx, dec("100.00"), "ZAR").Return(nil, apperrors.ErrRateUnavailable).Once()

	txn, breakdown, err := suite.service.CreateTransaction(ctx, suite.userID, dec("100.00"), "ZAR", "Jane Doe")

	suite.Nil(txn)
	suite.Nil(breakdown)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_OtherUserIsNotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, UserID: uuid.NewString()}, nil).Once()

	txn, err := suite.service.GetTransaction(ctx, txnID, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestGetTransaction_Owner() {
	ctx := context.Background()
	txnID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txnID).
		Return(&domain.Transaction{TransactionID: txnID, UserID: suite.userID}, nil).Once()

	txn, err := suite.service.GetTransaction(ctx, txnID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(txnID, txn.TransactionID)
}

func (suite *TransactionServiceTestSuite) TestListTransactionHistory_MiddlePage() {
	ctx := context.Background()
	page := make([]domain.Transaction, 10)
	for i := range page {
		page[i] = domain.Transaction{TransactionID: uuid.NewString(), UserID: suite.userID, Status: domain.StatusCompleted}
	}
	suite.mockTxnRepo.On("CountTransactionsByUser", ctx, suite.userID).Return(25, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, 10, 10).Return(page, nil).Once()

	resp, err := suite.service.ListTransactionHistory(ctx, suite.userID, 2)

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 10)
	suite.Equal(3, resp.TotalPages)
	suite.Equal(2, resp.CurrentPage)
	suite.True(resp.HasNext)
	suite.True(resp.HasPrevious)
}

func (suite *TransactionServiceTestSuite) TestListTransactionHistory_ClampsPastLastPage() {
	ctx := context.Background()
	suite.mockTxnRepo.On("CountTransactionsByUser", ctx, suite.userID).Return(25, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, 10, 20).Return([]domain.Transaction{}, nil).Once()

	resp, err := suite.service.ListTransactionHistory(ctx, suite.userID, 99)

	suite.Require().NoError(err)
	suite.Equal(3, resp.CurrentPage)
	suite.False(resp.HasNext)
}

func (suite *TransactionServiceTestSuite) TestListTransactionHistory_Empty() {
	ctx := context.Background()
	suite.mockTxnRepo.On("CountTransactionsByUser", ctx, suite.userID).Return(0, nil).Once()
	suite.mockTxnRepo.On("ListTransactionsByUser", ctx, suite.userID, 10, 0).Return([]domain.Transaction{}, nil).Once()

	resp, err := suite.service.ListTransactionHistory(ctx, suite.userID, 1)

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.Equal(1, resp.TotalPages)
	suite.False(resp.HasNext)
	suite.False(resp.HasPrevious)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
