package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bigs-im/pg-gateway/app/entity"
	"github.com/bigs-im/pg-gateway/app/factory"
	"github.com/bigs-im/pg-gateway/app/provider"
)

type partnerRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Partner, error)
}

type feePolicyRepository interface {
	FindEffective(ctx context.Context, partnerID int64, asOf time.Time) (*entity.FeePolicy, error)
}

type paymentWriteRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
}

type PayCommand struct {
	PartnerID int64
	Amount    decimal.Decimal
	Card      provider.CardCredentials
}

// PayResult carries the persisted payment. Decline is set when the processor
// explicitly rejected the attempt; the payment is then a DECLINED record.
type PayResult struct {
	Payment *entity.Payment
	Decline *provider.DeclinedError
}

// PaymentService runs the payment attempt end to end: partner validation,
// fee resolution, processor dispatch, approval and a single persistence of
// the terminal record. Any failure aborts the remaining steps; nothing
// partial is persisted.
type PaymentService struct {
	partnerRepo   partnerRepository
	feePolicyRepo feePolicyRepository
	paymentRepo   paymentWriteRepository
	providerReg   *provider.Registry
	logger        logrus.FieldLogger
}

func NewPaymentService(
	partnerRepo partnerRepository,
	feePolicyRepo feePolicyRepository,
	paymentRepo paymentWriteRepository,
	providerReg *provider.Registry,
) *PaymentService {
	return &PaymentService{
		partnerRepo:   partnerRepo,
		feePolicyRepo: feePolicyRepo,
		paymentRepo:   paymentRepo,
		providerReg:   providerReg,
		logger:        factory.NewModuleLogger("payment-service"),
	}
}

func (s *PaymentService) Pay(ctx context.Context, cmd *PayCommand) (*PayResult, error) {
	if cmd == nil || cmd.Amount.Cmp(decimal.Zero) <= 0 {
		return nil, ErrInvalidRequest
	}

	partner, err := s.partnerRepo.FindByID(ctx, cmd.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrPartnerNotFound
	}
	if !partner.Active {
		return nil, ErrPartnerInactive
	}

	now := time.Now().UTC()
	policy, err := s.feePolicyRepo.FindEffective(ctx, cmd.PartnerID, now)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		s.logger.WithField("partner_id", cmd.PartnerID).Error("No applicable fee policy")
		return nil, ErrNoFeePolicy
	}

	fee, net := policy.CalculateFee(cmd.Amount)

	providerClient, err := s.providerReg.ForPartner(cmd.PartnerID)
	if err != nil {
		s.logger.WithField("partner_id", cmd.PartnerID).Error("No provider supports partner")
		return nil, err
	}

	approval, err := providerClient.Approve(ctx, &provider.ApproveRequest{
		PartnerID: cmd.PartnerID,
		Amount:    cmd.Amount,
		Card:      cmd.Card,
	})

	var decline *provider.DeclinedError
	if err != nil {
		if !errors.As(err, &decline) {
			// Auth failures and transport faults surface as-is with no
			// record persisted; retrying is an operator decision.
			return nil, err
		}
		approval = &provider.ApproveResult{
			ApprovedAt: now,
			Status:     entity.PaymentStatusDeclined,
			CardBin:    provider.CardBin(cmd.Card.Number),
			CardLast4:  provider.CardLast4(cmd.Card.Number),
		}
	}

	payment := &entity.Payment{
		PartnerID:      cmd.PartnerID,
		Amount:         cmd.Amount,
		AppliedFeeRate: policy.Percentage,
		FeeAmount:      fee,
		NetAmount:      net,
		CardBin:        approval.CardBin,
		CardLast4:      approval.CardLast4,
		ApprovalCode:   approval.ApprovalCode,
		ApprovedAt:     approval.ApprovedAt,
		Status:         approval.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"partner_id": payment.PartnerID,
		"provider":   providerClient.Name(),
		"status":     string(payment.Status),
	}).Info("Payment persisted")

	return &PayResult{Payment: payment, Decline: decline}, nil
}
