package postgres

import (
	"context"
	"fmt"

	"github.com/papertrails/papertrails/internal/domain/letter"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/logger"
	"github.com/papertrails/papertrails/internal/postgres"
	"github.com/papertrails/papertrails/internal/types"
)

type letterRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLetterRepository(db *postgres.DB, logger *logger.Logger) letter.Repository {
	return &letterRepository{db: db, logger: logger}
}

func (r *letterRepository) Create(ctx context.Context, l *letter.Letter) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		q := r.db.GetQuerier(ctx)

		query := `
		INSERT INTO letters (id, organization_id, recipient_id, category_id, signatory_id, subject, body,
			attachment_title, use_recipient_name, use_cc_name, use_digital_signature, use_digital_letterhead,
			reference_number, status, created_at, updated_at, created_by, updated_by)
		VALUES (:id, :organization_id, :recipient_id, :category_id, :signatory_id, :subject, :body,
			:attachment_title, :use_recipient_name, :use_cc_name, :use_digital_signature, :use_digital_letterhead,
			:reference_number, :status, :created_at, :updated_at, :created_by, :updated_by)
		`
		if _, err := q.NamedExecContext(ctx, query, l); err != nil {
			return postgres.MapError(err, "create letter")
		}

		for _, cc := range l.CopyRecipients {
			if _, err := q.NamedExecContext(ctx, `
				INSERT INTO letter_copy_recipients (id, letter_id, recipient_id, user_id)
				VALUES (:id, :letter_id, :recipient_id, :user_id)`, cc); err != nil {
				return postgres.MapError(err, "create letter copy recipient")
			}
		}

		for _, att := range l.Attachments {
			if _, err := q.NamedExecContext(ctx, `
				INSERT INTO letter_attachments (id, letter_id, title, file_name, file_size, file_type, mime_type, created_at)
				VALUES (:id, :letter_id, :title, :file_name, :file_size, :file_type, :mime_type, :created_at)`, att); err != nil {
				return postgres.MapError(err, "create letter attachment")
			}
		}

		for _, ref := range l.References {
			if _, err := q.NamedExecContext(ctx, `
				INSERT INTO letter_references (id, letter_id, internal_letter_id, external_reference_number)
				VALUES (:id, :letter_id, :internal_letter_id, :external_reference_number)`, ref); err != nil {
				return postgres.MapError(err, "create letter reference")
			}
		}

		return nil
	})
}

func (r *letterRepository) Update(ctx context.Context, l *letter.Letter) error {
	query := `
	UPDATE letters SET
		subject = :subject,
		body = :body,
		signatory_id = :signatory_id,
		attachment_title = :attachment_title,
		use_recipient_name = :use_recipient_name,
		use_cc_name = :use_cc_name,
		use_digital_signature = :use_digital_signature,
		use_digital_letterhead = :use_digital_letterhead,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id
	`

	result, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, l)
	if err != nil {
		return postgres.MapError(err, "update letter")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return letter.NewLetterNotFoundError(l.ID)
	}
	return nil
}

func (r *letterRepository) Get(ctx context.Context, id string) (*letter.Letter, error) {
	var l letter.Letter
	err := r.db.GetQuerier(ctx).GetContext(ctx, &l,
		`SELECT * FROM letters WHERE id = $1 AND status = $2`, id, types.StatusPublished)
	if err != nil {
		if ierr.IsNotFound(postgres.MapError(err, "get letter")) {
			return nil, letter.NewLetterNotFoundError(id)
		}
		return nil, postgres.MapError(err, "get letter")
	}

	if err := r.loadChildren(ctx, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *letterRepository) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*letter.Letter, error) {
	var l letter.Letter
	err := r.db.GetQuerier(ctx).GetContext(ctx, &l,
		`SELECT * FROM letters WHERE reference_number = $1 AND status = $2`, referenceNumber, types.StatusPublished)
	if err != nil {
		return nil, postgres.MapError(err, "get letter by reference number")
	}
	return &l, nil
}

func (r *letterRepository) List(ctx context.Context, filter *types.LetterFilter) ([]*letter.Letter, error) {
	if filter == nil {
		filter = types.NewLetterFilter()
	}

	conds, args := r.conditions(filter)
	query := "SELECT * FROM letters" + whereClause(conds) +
		fmt.Sprintf(" ORDER BY created_at %s", orderDirection(filter.OrDefault()))
	query, args = paginate(query, args, filter.OrDefault())

	var letters []*letter.Letter
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &letters, r.db.Rebind(query), args...); err != nil {
		return nil, postgres.MapError(err, "list letters")
	}
	return letters, nil
}

func (r *letterRepository) Count(ctx context.Context, filter *types.LetterFilter) (int, error) {
	if filter == nil {
		filter = types.NewLetterFilter()
	}

	conds, args := r.conditions(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, r.db.Rebind("SELECT COUNT(*) FROM letters"+whereClause(conds)), args...); err != nil {
		return 0, postgres.MapError(err, "count letters")
	}
	return count, nil
}

func (r *letterRepository) conditions(filter *types.LetterFilter) ([]string, []interface{}) {
	conds := []string{"status = ?"}
	args := []interface{}{types.StatusPublished}
	if filter.OrganizationID != "" {
		conds = append(conds, "organization_id = ?")
		args = append(args, filter.OrganizationID)
	}
	if filter.RecipientID != "" {
		conds = append(conds, "recipient_id = ?")
		args = append(args, filter.RecipientID)
	}
	if filter.CategoryID != "" {
		conds = append(conds, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	return conds, args
}

func (r *letterRepository) loadChildren(ctx context.Context, l *letter.Letter) error {
	q := r.db.GetQuerier(ctx)

	if err := q.SelectContext(ctx, &l.CopyRecipients,
		`SELECT * FROM letter_copy_recipients WHERE letter_id = $1`, l.ID); err != nil {
		return postgres.MapError(err, "list letter copy recipients")
	}
	if err := q.SelectContext(ctx, &l.Attachments,
		`SELECT * FROM letter_attachments WHERE letter_id = $1 ORDER BY created_at`, l.ID); err != nil {
		return postgres.MapError(err, "list letter attachments")
	}
	if err := q.SelectContext(ctx, &l.References,
		`SELECT * FROM letter_references WHERE letter_id = $1`, l.ID); err != nil {
		return postgres.MapError(err, "list letter references")
	}
	return nil
}
