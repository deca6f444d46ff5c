package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
	"github.com/Parthsuii/fintech/pkg/id"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type investmentSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	InvestmentID    string          `gorm:"size:32;column:investment_id"`
	InvestorID      string          `gorm:"size:32;column:investor_id"`
	ProjectID       string          `gorm:"size:32;column:project_id"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount"`
	CreatorAmount   decimal.Decimal `gorm:"column:creator_amount"`
	BucketAmount    decimal.Decimal `gorm:"column:bucket_amount"`
	Status          string          `gorm:"type:text;column:status"` // ← no enum
	ExternalTxnID   *string         `gorm:"column:external_txn_id"`
	StatusUpdatedAt time.Time       `gorm:"column:status_updated_at"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (investmentSQLite) TableName() string { return "investments" }

type accountSQLite struct {
	ID        uint64          `gorm:"primaryKey;column:id"`
	OwnerID   string          `gorm:"size:36;column:owner_id"`
	Balance   decimal.Decimal `gorm:"column:balance"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (accountSQLite) TableName() string { return "accounts" }

type projectSQLite struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	ProjectID      string    `gorm:"size:32;column:project_id"`
	Name           string    `gorm:"column:name"`
	CreatorID      string    `gorm:"size:32;column:creator_id"`
	CreatorPercent float64   `gorm:"column:creator_percent"`
	BucketPercent  float64   `gorm:"column:bucket_percent"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (projectSQLite) TableName() string { return "projects" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&investmentSQLite{}, &accountSQLite{}, &projectSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeInvestment(investmentID, investorID, projectID string, status investmentDomain.Status) *investmentDomain.Investment {
	return &investmentDomain.Investment{
		InvestmentID:    investmentID,
		InvestorID:      investorID,
		ProjectID:       projectID,
		TotalAmount:     decimal.RequireFromString("1000.00"),
		CreatorAmount:   decimal.RequireFromString("700.00"),
		BucketAmount:    decimal.RequireFromString("300.00"),
		Status:          status,
		StatusUpdatedAt: time.Now().UTC(),
	}
}

func TestInvestmentRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := makeInvestment(id.NewID32(), id.NewID32(), id.NewID32(), investmentDomain.StatusInitiated)
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByInvestmentID(ctx, inv.InvestmentID)
	if err != nil {
		t.Fatalf("GetByInvestmentID: %v", err)
	}
	if got.Status != investmentDomain.StatusInitiated {
		t.Fatalf("status = %s", got.Status)
	}
	if !got.TotalAmount.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("total = %s", got.TotalAmount)
	}
}

func TestInvestmentRepository_GetByExternalTxnIDForUpdate(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := makeInvestment(id.NewID32(), id.NewID32(), id.NewID32(), investmentDomain.StatusInitiated)
	txn := "fin_xyz"
	if err := inv.AssignIntent(txn, time.Now().UTC()); err != nil {
		t.Fatalf("AssignIntent: %v", err)
	}
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByExternalTxnIDForUpdate(ctx, txn)
	if err != nil {
		t.Fatalf("GetByExternalTxnIDForUpdate: %v", err)
	}
	if got.InvestmentID != inv.InvestmentID {
		t.Fatalf("got %s, want %s", got.InvestmentID, inv.InvestmentID)
	}

	if _, err := repo.GetByExternalTxnIDForUpdate(ctx, "unknown"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("want ErrRecordNotFound, got %v", err)
	}
}

func TestInvestmentRepository_GetOpenByInvestorAndProject(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	investorID, projectID := id.NewID32(), id.NewID32()

	// terminal investments must not count as open
	done := makeInvestment(id.NewID32(), investorID, projectID, investmentDomain.StatusCompleted)
	if err := repo.Create(ctx, done); err != nil {
		t.Fatalf("Create completed: %v", err)
	}
	if _, err := repo.GetOpenByInvestorAndProject(ctx, investorID, projectID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("completed counted as open: %v", err)
	}

	open := makeInvestment(id.NewID32(), investorID, projectID, investmentDomain.StatusPendingPayment)
	if err := repo.Create(ctx, open); err != nil {
		t.Fatalf("Create pending: %v", err)
	}
	got, err := repo.GetOpenByInvestorAndProject(ctx, investorID, projectID)
	if err != nil {
		t.Fatalf("GetOpenByInvestorAndProject: %v", err)
	}
	if got.InvestmentID != open.InvestmentID {
		t.Fatalf("got %s, want %s", got.InvestmentID, open.InvestmentID)
	}

	// different project stays invisible
	if _, err := repo.GetOpenByInvestorAndProject(ctx, investorID, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("cross-project leak: %v", err)
	}
}

func TestInvestmentRepository_SavePersistsTransition(t *testing.T) {
	db := openTestDB(t)
	repo := NewInvestmentRepository(db)
	ctx := context.Background()

	inv := makeInvestment(id.NewID32(), id.NewID32(), id.NewID32(), investmentDomain.StatusPendingPayment)
	if err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := inv.Advance(investmentDomain.StatusFunded, time.Now().UTC()); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByInvestmentID(ctx, inv.InvestmentID)
	if err != nil {
		t.Fatalf("GetByInvestmentID: %v", err)
	}
	if got.Status != investmentDomain.StatusFunded {
		t.Fatalf("status = %s, want funded", got.Status)
	}
}
