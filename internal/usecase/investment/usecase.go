package investment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
	"github.com/Parthsuii/fintech/internal/domain/escrow"
	projectDomain "github.com/Parthsuii/fintech/internal/domain/project"
	"github.com/Parthsuii/fintech/pkg/id"
	"github.com/Parthsuii/fintech/pkg/split"
)

type Usecase struct {
	investments investmentDomain.Repository
	projects    projectDomain.Repository
	gateway     escrow.Gateway
}

func NewUsecase(investments investmentDomain.Repository, projects projectDomain.Repository, gw escrow.Gateway) *Usecase {
	return &Usecase{investments: investments, projects: projects, gateway: gw}
}

func (u *Usecase) Create(ctx context.Context, in CreateInvestmentInput) (*InvestmentDTO, error) {
	if len(in.InvestorID) != 32 || len(in.ProjectID) != 32 {
		return nil, errors.New("invalid input: investor and project ids must be 32-char hex")
	}
	if !in.Amount.IsPositive() || in.Amount.Exponent() < -2 {
		return nil, investmentDomain.ErrInvalidAmount
	}

	proj, err := u.projects.GetByProjectID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectDomain.ErrNotFound
		}
		return nil, err
	}
	if !proj.IsActive {
		return nil, projectDomain.ErrNotFound
	}

	// Block if the investor already has an open investment for this project.
	open, err := u.investments.GetOpenByInvestorAndProject(ctx, in.InvestorID, in.ProjectID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", investmentDomain.ErrDuplicatePendingInvestment, open.InvestmentID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	creatorAmt, bucketAmt, err := split.Split(in.Amount, proj.CreatorPercent, proj.BucketPercent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", investmentDomain.ErrInvalidAmount, err)
	}

	now := time.Now().UTC()
	inv := &investmentDomain.Investment{
		InvestmentID:    id.NewID32(),
		InvestorID:      in.InvestorID,
		ProjectID:       in.ProjectID,
		TotalAmount:     in.Amount,
		CreatorAmount:   creatorAmt,
		BucketAmount:    bucketAmt,
		Status:          investmentDomain.StatusInitiated,
		StatusUpdatedAt: now,
	}
	if err := u.investments.Create(ctx, inv); err != nil {
		return nil, err
	}

	intent := u.gateway.RequestEscrow(ctx, in.Amount, inv.InvestmentID, map[string]string{
		"investment_id": inv.InvestmentID,
		"project_id":    in.ProjectID,
		"investor_id":   in.InvestorID,
	})
	if intent.Mode == escrow.ModeSandbox {
		slog.Warn("escrow intent degraded to sandbox", "investment_id", inv.InvestmentID, "intent_id", intent.IntentID)
	}

	if err := inv.AssignIntent(intent.IntentID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := u.investments.Save(ctx, inv); err != nil {
		return nil, err
	}

	return toDTO(inv, intent.PaymentURL, string(intent.Mode)), nil
}

func (u *Usecase) Get(ctx context.Context, investmentID string) (*InvestmentDTO, error) {
	inv, err := u.investments.GetByInvestmentID(ctx, investmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investmentDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(inv, "", ""), nil
}

func toDTO(inv *investmentDomain.Investment, paymentURL, mode string) *InvestmentDTO {
	dto := &InvestmentDTO{
		InvestmentID:  inv.InvestmentID,
		InvestorID:    inv.InvestorID,
		ProjectID:     inv.ProjectID,
		TotalAmount:   inv.TotalAmount.StringFixed(2),
		CreatorAmount: inv.CreatorAmount.StringFixed(2),
		BucketAmount:  inv.BucketAmount.StringFixed(2),
		Status:        string(inv.Status),
		PaymentURL:    paymentURL,
		Mode:          mode,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.ExternalTxnID != nil {
		dto.ExternalTxnID = *inv.ExternalTxnID
	}
	return dto
}
