package session

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// ResetSecretTTL is how long an issued reset secret stays redeemable.
var ResetSecretTTL = time.Hour

type InitializePasswordResetMessage struct {
	Email      string `json:"email" example:"pepe.rone@example.com" doc:"Customer email."`
	OnResponse func(resp *InitializePasswordResetResponse)
}

func (p InitializePasswordResetMessage) Type() string { return "user.password_reset" }

// InitializePasswordResetResponse is identical for known and unknown emails
// so the endpoint cannot be used to probe which addresses have accounts.
// Secret is populated only when the handler runs with EchoSecret, a
// development convenience that must stay off in production.
type InitializePasswordResetResponse struct {
	Success bool
	Secret  string
}

type InitializePasswordResetHandler struct {
	repo            RepositoryManager
	dispatcher      Dispatcher
	activity        ActivitySink
	logger          Logger
	echoSecret      bool
	dispatchTimeout time.Duration
}

// NewInitializePasswordResetHandler creates a handler with sane defaults.
func NewInitializePasswordResetHandler(repo RepositoryManager, dispatcher Dispatcher) *InitializePasswordResetHandler {
	if dispatcher == nil {
		dispatcher = LogDispatcher{}
	}
	return &InitializePasswordResetHandler{
		repo:            repo,
		dispatcher:      dispatcher,
		activity:        noopActivitySink{},
		logger:          defLogger{},
		dispatchTimeout: DefaultDispatchTimeout,
	}
}

// WithActivitySink sets the sink used to emit password reset events.
func (h *InitializePasswordResetHandler) WithActivitySink(sink ActivitySink) *InitializePasswordResetHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *InitializePasswordResetHandler) WithLogger(logger Logger) *InitializePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithEchoSecret returns the generated secret in the response. Development
// environments only.
func (h *InitializePasswordResetHandler) WithEchoSecret(echo bool) *InitializePasswordResetHandler {
	h.echoSecret = echo
	return h
}

// WithDispatchTimeout bounds the best-effort delivery of the reset message.
func (h *InitializePasswordResetHandler) WithDispatchTimeout(d time.Duration) *InitializePasswordResetHandler {
	if d > 0 {
		h.dispatchTimeout = d
	}
	return h
}

func (h *InitializePasswordResetHandler) Execute(ctx context.Context, event InitializePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset initialization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *InitializePasswordResetHandler) execute(ctx context.Context, event InitializePasswordResetMessage) error {
	resp := &InitializePasswordResetResponse{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.repo.Users().GetByIdentifier(ctx, event.Email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			// Unknown email. Respond exactly as if a secret had been issued.
			resp.Success = true
			h.respond(event, resp)
			return nil
		}
		return storeUnavailable(err)
	}

	user.EnsureStatus()
	if user.Status != UserStatusActive {
		// Suspended accounts get the same opaque success, no secret issued.
		resp.Success = true
		h.respond(event, resp)
		return nil
	}

	secret, err := GenerateResetSecret()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(ResetSecretTTL)

	// Overwrite semantics: issuing a new secret supersedes any outstanding
	// one, keeping at most a single redeemable secret per account.
	if err := h.repo.Users().SetResetToken(ctx, user.ID, secret, expiresAt); err != nil {
		return storeUnavailable(err)
	}

	h.dispatch(ctx, user, secret)
	h.recordActivity(ctx, user)

	resp.Success = true
	if h.echoSecret {
		resp.Secret = secret
	}
	h.respond(event, resp)

	return nil
}

// dispatch delivers the reset message on a best-effort basis. Delivery
// failure is logged and does not change the caller-visible outcome: the
// secret is already stored and a retry of the whole flow supersedes it.
func (h *InitializePasswordResetHandler) dispatch(ctx context.Context, user *User, secret string) {
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.dispatchTimeout)
	defer cancel()

	if err := h.dispatcher.SendResetMessage(dispatchCtx, user.Email, secret, user.DisplayName()); err != nil {
		h.logger.Warn("password reset dispatch failed for user %s: %v", user.ID, err)
	}
}

func (h *InitializePasswordResetHandler) respond(event InitializePasswordResetMessage, resp *InitializePasswordResetResponse) {
	if event.OnResponse != nil {
		event.OnResponse(resp)
	}
}

func (h *InitializePasswordResetHandler) recordActivity(ctx context.Context, user *User) {
	event := ActivityEvent{
		EventType: ActivityEventResetRequested,
		Actor: ActorRef{
			ID:   user.ID.String(),
			Type: "user",
		},
		UserID:     user.ID.String(),
		Metadata:   map[string]any{},
		OccurredAt: time.Now(),
	}

	if err := normalizeActivitySink(h.activity).Record(ctx, event); err != nil {
		h.logger.Warn("activity sink error during password reset request: %v", err)
	}
}
