package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equipme-backend/internal/domain"
	"equipme-backend/internal/repository"
)

type agreementRepository struct {
	db DBTX
}

func NewAgreementRepository(db DBTX) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

const agreementColumns = `id, cart_item_id, equipment_id, user_id, owner_id, rental_start_date,
	rental_end_date, delivery, COALESCE(delivery_address, ''), user_decision, owner_decision,
	agreement_status, revisions, reserved_transition_id, settled_on, created_on, updated_on`

func (r *agreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	query := `INSERT INTO agreements (cart_item_id, equipment_id, user_id, owner_id,
	              rental_start_date, rental_end_date, delivery, delivery_address,
	              user_decision, owner_decision, agreement_status, revisions, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13) RETURNING id`
	now := time.Now().UTC()
	a.CreatedOn = now
	a.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query,
		a.CartItemID, a.EquipmentID, a.UserID, a.OwnerID,
		a.RentalStartDate, a.RentalEndDate, a.Delivery, a.DeliveryAddress,
		a.UserDecision, a.OwnerDecision, a.Status, a.Revisions, now,
	).Scan(&a.ID)
}

func (r *agreementRepository) scanAgreement(row *sql.Row) (*domain.Agreement, error) {
	var a domain.Agreement
	err := row.Scan(
		&a.ID, &a.CartItemID, &a.EquipmentID, &a.UserID, &a.OwnerID,
		&a.RentalStartDate, &a.RentalEndDate, &a.Delivery, &a.DeliveryAddress,
		&a.UserDecision, &a.OwnerDecision, &a.Status, &a.Revisions,
		&a.ReservedTransitionID, &a.SettledOn, &a.CreatedOn, &a.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *agreementRepository) GetByID(ctx context.Context, id int32) (*domain.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE id = $1`
	a, err := r.scanAgreement(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: agreement %d", domain.ErrNotFound, id)
	}
	return a, err
}

func (r *agreementRepository) GetByCartItem(ctx context.Context, cartItemID int32) (*domain.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE cart_item_id = $1`
	a, err := r.scanAgreement(r.db.QueryRowContext(ctx, query, cartItemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: agreement for cart item %d", domain.ErrNotFound, cartItemID)
	}
	return a, err
}

func (r *agreementRepository) Update(ctx context.Context, a *domain.Agreement) error {
	query := `UPDATE agreements
	          SET rental_start_date = $2, rental_end_date = $3, delivery = $4, delivery_address = $5,
	              user_decision = $6, owner_decision = $7, agreement_status = $8, revisions = $9,
	              reserved_transition_id = $10, settled_on = $11, updated_on = $12
	          WHERE id = $1`
	a.UpdatedOn = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query,
		a.ID, a.RentalStartDate, a.RentalEndDate, a.Delivery, a.DeliveryAddress,
		a.UserDecision, a.OwnerDecision, a.Status, a.Revisions,
		a.ReservedTransitionID, a.SettledOn, a.UpdatedOn,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: agreement %d", domain.ErrNotFound, a.ID)
	}
	return nil
}

func (r *agreementRepository) ListStaleReserved(ctx context.Context, cutoff time.Time) ([]domain.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements
	          WHERE agreement_status = $1 AND reserved_transition_id IS NOT NULL
	            AND settled_on IS NULL AND updated_on < $2
	          ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, domain.AgreementStatusBothAccepted, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agreements []domain.Agreement
	for rows.Next() {
		var a domain.Agreement
		if err := rows.Scan(
			&a.ID, &a.CartItemID, &a.EquipmentID, &a.UserID, &a.OwnerID,
			&a.RentalStartDate, &a.RentalEndDate, &a.Delivery, &a.DeliveryAddress,
			&a.UserDecision, &a.OwnerDecision, &a.Status, &a.Revisions,
			&a.ReservedTransitionID, &a.SettledOn, &a.CreatedOn, &a.UpdatedOn,
		); err != nil {
			return nil, err
		}
		agreements = append(agreements, a)
	}
	return agreements, rows.Err()
}

func (r *agreementRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM agreements WHERE id = $1`, id)
	return err
}

func (r *agreementRepository) CreateComment(ctx context.Context, c *domain.AgreementComment) error {
	query := `INSERT INTO agreement_comments (agreement_id, author_id, origin, comment, changes_terms, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	c.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		c.AgreementID, c.AuthorID, c.Origin, c.Comment, c.ChangesTerms, c.CreatedOn,
	).Scan(&c.ID)
}

func (r *agreementRepository) ListComments(ctx context.Context, agreementID int32) ([]domain.AgreementComment, error) {
	query := `SELECT id, agreement_id, author_id, origin, comment, changes_terms, created_on
	          FROM agreement_comments WHERE agreement_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, agreementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.AgreementComment
	for rows.Next() {
		var c domain.AgreementComment
		if err := rows.Scan(&c.ID, &c.AgreementID, &c.AuthorID, &c.Origin, &c.Comment, &c.ChangesTerms, &c.CreatedOn); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *agreementRepository) DeleteComments(ctx context.Context, agreementID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM agreement_comments WHERE agreement_id = $1`, agreementID)
	return err
}
