package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/beanhaus/go-session"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinalizePasswordResetEmitsActivity(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}
	sink := &MockActivitySink{}

	handler := session.NewFinalizePasswordResetHandler(repo).
		WithActivitySink(sink).
		WithLogger(testLogger{})

	event := session.FinalizePasswordResetMessage{
		Secret:   "dGhpcyBpcyBub3QgYSByZWFsIHNlY3JldA",
		Password: "password12345",
	}

	userID := uuid.New()

	repo.On("Users").Return(users).Once()

	var redeemedHash string
	users.On("RedeemResetToken", mock.Anything, event.Secret, mock.AnythingOfType("string")).
		Return(&session.User{ID: userID}, nil).
		Run(func(args mock.Arguments) {
			redeemedHash = args.String(2)
		}).Once()

	sink.On("Record", mock.Anything, mock.MatchedBy(func(evt session.ActivityEvent) bool {
		return evt.EventType == session.ActivityEventResetRedeemed &&
			evt.UserID == userID.String()
	})).Return(nil).Once()

	err := handler.Execute(ctx, event)
	require.NoError(t, err)

	// The store receives a bcrypt hash, never the cleartext password
	assert.NotEmpty(t, redeemedHash)
	assert.NotEqual(t, event.Password, redeemedHash)
	assert.NoError(t, session.ComparePasswordAndHash(event.Password, redeemedHash))

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	sink.AssertExpectations(t)
}

func TestFinalizePasswordResetInvalidSecret(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}

	handler := session.NewFinalizePasswordResetHandler(repo).
		WithLogger(testLogger{})

	repo.On("Users").Return(users).Once()

	// Zero rows from the conditional update: expired, superseded, redeemed,
	// and never-issued secrets are indistinguishable here
	users.On("RedeemResetToken", mock.Anything, "bogus-secret", mock.AnythingOfType("string")).
		Return(nil, session.ErrResetTokenInvalid).Once()

	err := handler.Execute(ctx, session.FinalizePasswordResetMessage{
		Secret:   "bogus-secret",
		Password: "password12345",
	})

	assert.ErrorIs(t, err, session.ErrResetTokenInvalid)

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestFinalizePasswordResetEmptySecret(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}

	handler := session.NewFinalizePasswordResetHandler(repo).
		WithLogger(testLogger{})

	err := handler.Execute(ctx, session.FinalizePasswordResetMessage{
		Secret:   "",
		Password: "password12345",
	})

	assert.ErrorIs(t, err, session.ErrResetTokenInvalid)

	// The store is never touched for an empty secret
	repo.AssertNotCalled(t, "Users")
}

func TestFinalizePasswordResetEmptyPassword(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}

	handler := session.NewFinalizePasswordResetHandler(repo).
		WithLogger(testLogger{})

	err := handler.Execute(ctx, session.FinalizePasswordResetMessage{
		Secret:   "some-secret",
		Password: "",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid new password")
}

func TestFinalizePasswordResetStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := &MockRepositoryManager{}
	users := &MockUsers{}

	handler := session.NewFinalizePasswordResetHandler(repo).
		WithLogger(testLogger{})

	repo.On("Users").Return(users).Once()

	users.On("RedeemResetToken", mock.Anything, "some-secret", mock.AnythingOfType("string")).
		Return(nil, errors.New("connection refused")).Once()

	err := handler.Execute(ctx, session.FinalizePasswordResetMessage{
		Secret:   "some-secret",
		Password: "password12345",
	})

	require.Error(t, err)

	// An unreachable store is not an invalid secret
	var rich *goerrors.Error
	assert.ErrorAs(t, err, &rich)
	assert.Equal(t, session.TextCodeStoreUnavailable, rich.TextCode)
	assert.NotErrorIs(t, err, session.ErrResetTokenInvalid)

	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}
