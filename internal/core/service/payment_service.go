package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const (
	actionMarkCash    = "mark_cash_payment"
	actionStartMobile = "start_mobile_payment"
)

// PaymentService records cash payments, starts mobile-money payments and lists a
// client's payment history. Writes are serialized per session and payload through
// the submit guard, so a double-clicked form reaches the backend once.
type PaymentService struct {
	backend ports.Backend
	guard   ports.SubmitGuard
	log     zerolog.Logger
}

func NewPaymentService(backend ports.Backend, guard ports.SubmitGuard, log zerolog.Logger) *PaymentService {
	return &PaymentService{backend: backend, guard: guard, log: log}
}

type cashPaymentRequest struct {
	Phone         string       `json:"phone"`
	Subscription  string       `json:"subscription"`
	PaymentStatus string       `json:"payment_status"`
	Amount        *json.Number `json:"amount"`
	PaymentDate   string       `json:"payment_date,omitempty"`
}

func (s *PaymentService) MarkCash(ctx context.Context, sessionID string, input ports.CashPaymentInput) (*domain.CashPaymentReceipt, error) {
	status := input.PaymentStatus
	if status == "" {
		status = domain.PaymentSuccess
	}
	body := cashPaymentRequest{
		Phone:         input.Phone,
		Subscription:  input.Subscription,
		PaymentStatus: status,
		PaymentDate:   input.PaymentDate,
	}
	if input.Amount != nil {
		n := json.Number(input.Amount.String())
		body.Amount = &n
	}

	var receipt domain.CashPaymentReceipt
	err := s.guarded(ctx, sessionID, actionMarkCash, body, func() error {
		return call(ctx, s.backend, sessionID, ports.BackendRequest{
			Method:        http.MethodPost,
			Path:          "/markCashPayment",
			Body:          body,
			Authenticated: true,
		}, &receipt)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("client", receipt.Client).
		Str("plan", receipt.Subscription).
		Str("status", receipt.PaymentStatus).
		Msg("cash payment recorded")
	return &receipt, nil
}

type mobilePaymentRequest struct {
	PlanName    string `json:"plan_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
}

func (s *PaymentService) StartMobile(ctx context.Context, sessionID string, input ports.MobilePaymentInput) (string, error) {
	body := mobilePaymentRequest{PlanName: input.Plan, PhoneNumber: input.Phone, Email: input.Email}

	var resp messageResponse
	err := s.guarded(ctx, sessionID, actionStartMobile, body, func() error {
		return call(ctx, s.backend, sessionID, ports.BackendRequest{
			Method:        http.MethodPost,
			Path:          "/start/payment",
			Body:          body,
			Authenticated: true,
		}, &resp)
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (s *PaymentService) ListForClient(ctx context.Context, sessionID string) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodGet,
		Path:          "/client/payments",
		Authenticated: true,
	}, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// guarded runs fn while holding the submit lock for (session, action, payload).
// The lock is released when fn returns so an explicit retry goes through.
func (s *PaymentService) guarded(ctx context.Context, sessionID, action string, payload any, fn func() error) error {
	key, err := submitKey(sessionID, action, payload)
	if err != nil {
		return err
	}

	ok, err := s.guard.Acquire(ctx, key)
	if err != nil {
		// Guard outage: proceed unguarded.
		s.log.Warn().Err(err).Str("action", action).Msg("submit guard unavailable")
		return fn()
	}
	if !ok {
		metrics.DuplicateSubmissionsTotal.WithLabelValues(action).Inc()
		return domain.ErrDuplicateSubmission
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn().Err(err).Str("action", action).Msg("failed to release submit guard")
		}
	}()
	return fn()
}

func submitKey(sessionID, action string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(append([]byte(sessionID+"|"+action+"|"), raw...))
	return action + ":" + hex.EncodeToString(sum[:]), nil
}
