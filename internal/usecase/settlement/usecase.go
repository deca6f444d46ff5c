package settlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/Parthsuii/fintech/internal/domain/escrow"
	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
	"github.com/Parthsuii/fintech/internal/domain/ledger"
	"github.com/Parthsuii/fintech/internal/domain/uow"
	"github.com/Parthsuii/fintech/internal/metrics"
)

// Usecase drives the escrow settlement state machine. Every operation runs
// its read-validate-write sequence under an exclusive investment-row lock,
// and re-delivered notifications resolve to already_processed instead of a
// second mutation.
type Usecase struct {
	uow uow.UnitOfWork
}

func NewUsecase(tx uow.UnitOfWork) *Usecase { return &Usecase{uow: tx} }

type ResultDTO struct {
	InvestmentID     string `json:"investment_id"`
	Status           string `json:"status"`
	AlreadyProcessed bool   `json:"already_processed"`
}

func result(inv *investmentDomain.Investment, already bool) *ResultDTO {
	return &ResultDTO{InvestmentID: inv.InvestmentID, Status: string(inv.Status), AlreadyProcessed: already}
}

// Confirm records the payment confirmation: pending_payment → funded.
// Confirmations for investments already past funding are re-deliveries and
// succeed without mutation; confirmations for unfunded intents are rejected.
func (u *Usecase) Confirm(ctx context.Context, intentID string) (*ResultDTO, error) {
	var dto *ResultDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := u.lockByIntent(ctx, r, intentID)
		if err != nil {
			return err
		}
		switch inv.Status {
		case investmentDomain.StatusPendingPayment:
			// fall through to the transition
		case investmentDomain.StatusFunded, investmentDomain.StatusReleased, investmentDomain.StatusCompleted:
			dto = result(inv, true)
			return nil
		default:
			return investmentDomain.ErrInvalidStateTransition
		}
		if err := inv.Advance(investmentDomain.StatusFunded, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		dto = result(inv, false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AcceptDelivery records the delivery proof: funded → released.
func (u *Usecase) AcceptDelivery(ctx context.Context, investmentID string) (*ResultDTO, error) {
	var dto *ResultDTO
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, inv *investmentDomain.Investment) error {
		switch inv.Status {
		case investmentDomain.StatusFunded:
			// fall through to the transition
		case investmentDomain.StatusReleased, investmentDomain.StatusCompleted:
			dto = result(inv, true)
			return nil
		default:
			return investmentDomain.ErrInvalidStateTransition
		}
		if err := inv.Advance(investmentDomain.StatusReleased, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}
		dto = result(inv, false)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investmentDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Settle finalizes the investment: released → completed plus both ledger
// credits, all inside one locked transaction. Redelivery of the settlement
// notification is absorbed: a completed investment yields success with no
// further credits.
func (u *Usecase) Settle(ctx context.Context, intentID string) (*ResultDTO, error) {
	var dto *ResultDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := u.lockByIntent(ctx, r, intentID)
		if err != nil {
			return err
		}

		if inv.Status == investmentDomain.StatusCompleted {
			dto = result(inv, true)
			return nil
		}
		if inv.Status != investmentDomain.StatusReleased {
			// settlement cannot skip the delivery proof
			return investmentDomain.ErrInvalidStateTransition
		}

		if err := inv.Advance(investmentDomain.StatusCompleted, time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Investments.Save(ctx, inv); err != nil {
			return err
		}

		proj, err := r.Projects.GetByProjectID(ctx, inv.ProjectID)
		if err != nil {
			return err
		}
		if err := r.Accounts.Credit(ctx, proj.CreatorID, inv.CreatorAmount); err != nil {
			return err
		}
		if err := r.Accounts.Credit(ctx, ledger.BucketOwnerID, inv.BucketAmount); err != nil {
			return err
		}

		dto = result(inv, false)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !dto.AlreadyProcessed {
		metrics.SettlementsCompleted.Inc()
		metrics.LedgerCredits.Add(2)
		slog.Info("settlement completed", "investment_id", dto.InvestmentID, "intent_id", intentID)
	}
	return dto, nil
}

// lockByIntent resolves the investment by external txn id, falling back to
// the investment id embedded in sandbox intents, and locks its row.
func (u *Usecase) lockByIntent(ctx context.Context, r uow.Repos, intentID string) (*investmentDomain.Investment, error) {
	inv, err := r.Investments.GetByExternalTxnIDForUpdate(ctx, intentID)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if embedded, ok := escrow.InvestmentIDFromIntent(intentID); ok {
		inv, err = r.Investments.GetByInvestmentIDForUpdate(ctx, embedded)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, investmentDomain.ErrNotFound
}
