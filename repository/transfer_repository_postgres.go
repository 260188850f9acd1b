package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bankcalc/domain"
)

const (
	transferColumns = `id, amount, currency, source_account_id, destination_type,
	destination_account_id, recipient_name, recipient_account_number, recipient_bank_name,
	ifsc_code, description, status, scheduled_for, failure_reason, created_at, completed_at`

	// amount is read as text so it parses into a decimal without float loss.
	transferSelect = `SELECT id, amount::text, currency, source_account_id, destination_type,
	destination_account_id, recipient_name, recipient_account_number, recipient_bank_name,
	ifsc_code, description, status, scheduled_for, failure_reason, created_at, completed_at
	FROM transfers`
)

type TransferRepositoryPostgres struct {
	db *Pool
}

func NewTransferRepositoryPostgres(db *Pool) *TransferRepositoryPostgres {
	return &TransferRepositoryPostgres{db: db}
}

func (r *TransferRepositoryPostgres) Save(ctx context.Context, t domain.Transfer) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2::numeric, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		t.ID, t.Amount.String(), t.Currency, t.SourceAccountID, string(t.DestinationType),
		t.DestinationAccountID, t.RecipientName, t.RecipientAccountNumber, t.RecipientBankName,
		t.IFSCCode, t.Description, string(t.Status), t.ScheduledFor, t.FailureReason, t.CreatedAt, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save transfer %s: %w", t.ID, err)
	}
	return nil
}

func (r *TransferRepositoryPostgres) Get(ctx context.Context, id uuid.UUID) (domain.Transfer, error) {
	row := r.db.QueryRow(ctx, transferSelect+` WHERE id = $1`, id)
	t, err := scanTransfer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Transfer{}, fmt.Errorf("transfer %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("get transfer %s: %w", id, err)
	}
	return t, nil
}

func (r *TransferRepositoryPostgres) ListDue(ctx context.Context, now time.Time) ([]domain.Transfer, error) {
	rows, err := r.db.Query(ctx, `
		`+transferSelect+`
		WHERE status = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for`,
		string(domain.StatusScheduled), now,
	)
	if err != nil {
		return nil, fmt.Errorf("list due transfers: %w", err)
	}
	defer rows.Close()

	var due []domain.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		due = append(due, t)
	}
	return due, rows.Err()
}

func (r *TransferRepositoryPostgres) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE transfers SET status = $2 WHERE id = $1 AND status = $3`,
		id, string(domain.StatusProcessing), string(domain.StatusScheduled),
	)
	if err != nil {
		return false, fmt.Errorf("claim transfer %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TransferRepositoryPostgres) Update(ctx context.Context, t domain.Transfer) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transfers SET status = $2, failure_reason = $3, completed_at = $4
		WHERE id = $1`,
		t.ID, string(t.Status), t.FailureReason, t.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func scanTransfer(row pgx.Row) (domain.Transfer, error) {
	var (
		t                     domain.Transfer
		amount, destType, sts string
	)
	err := row.Scan(
		&t.ID, &amount, &t.Currency, &t.SourceAccountID, &destType,
		&t.DestinationAccountID, &t.RecipientName, &t.RecipientAccountNumber, &t.RecipientBankName,
		&t.IFSCCode, &t.Description, &sts, &t.ScheduledFor, &t.FailureReason, &t.CreatedAt, &t.CompletedAt,
	)
	if err != nil {
		return domain.Transfer{}, err
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return domain.Transfer{}, err
	}
	t.DestinationType = domain.DestinationType(destType)
	t.Status = domain.TransferStatus(sts)
	return t, nil
}
