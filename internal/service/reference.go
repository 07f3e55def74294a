package service

import (
	"context"
	"strings"
	"time"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/config"
	"github.com/papertrails/papertrails/internal/domain/letter"
	"github.com/papertrails/papertrails/internal/domain/organization"
	"github.com/papertrails/papertrails/internal/domain/sequence"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
)

// SenderCodeResolver produces the sender segment of a reference number
type SenderCodeResolver interface {
	SenderCode(ctx context.Context, sender *organization.Organization) (string, error)
}

// OrganizationSenderCode uses the sending organization's short form
type OrganizationSenderCode struct{}

func (OrganizationSenderCode) SenderCode(_ context.Context, sender *organization.Organization) (string, error) {
	if sender == nil || sender.ShortForm == "" {
		return "", ierr.NewError("sender organization has no short form").
			WithHint("The sending organization needs a short form to build a reference number").
			Mark(ierr.ErrValidation)
	}
	return strings.ToUpper(sender.ShortForm), nil
}

// FixedSenderCode returns the same literal for every letter
type FixedSenderCode struct {
	Code string
}

func (f FixedSenderCode) SenderCode(_ context.Context, _ *organization.Organization) (string, error) {
	return strings.ToUpper(f.Code), nil
}

// NewSenderCodeResolver picks the resolver configured under reference.sender_code_mode
func NewSenderCodeResolver(cfg *config.Configuration) SenderCodeResolver {
	if cfg.Reference.SenderCodeMode == types.SenderCodeModeFixed && cfg.Reference.FixedSenderCode != "" {
		return FixedSenderCode{Code: cfg.Reference.FixedSenderCode}
	}
	return OrganizationSenderCode{}
}

// LetterContext is what a reference number is derived from
type LetterContext struct {
	OrganizationID string
	RecipientID    string
	CategoryID     string
	CreatedAt      time.Time
}

func letterContextOf(l *letter.Letter) LetterContext {
	return LetterContext{
		OrganizationID: l.OrganizationID,
		RecipientID:    l.RecipientID,
		CategoryID:     l.CategoryID,
		CreatedAt:      l.CreatedAt,
	}
}

type ReferenceService interface {
	// Allocate consumes the next sequence slot and returns the formatted
	// reference. It must run inside the letter's transaction.
	Allocate(ctx context.Context, lc LetterContext) (string, error)
	// Preview returns the reference the next letter would get without
	// consuming a slot
	Preview(ctx context.Context, req *dto.ReferencePreviewRequest) (*dto.ReferencePreviewResponse, error)
}

type referenceService struct {
	ServiceParams
	senderCode SenderCodeResolver
}

func NewReferenceService(params ServiceParams, senderCode SenderCodeResolver) ReferenceService {
	return &referenceService{
		ServiceParams: params,
		senderCode:    senderCode,
	}
}

// referenceParts are the resolved segments of a reference number
type referenceParts struct {
	sender       string
	senderID     string
	recipientOrg string
	category     string
}

func (s *referenceService) Allocate(ctx context.Context, lc LetterContext) (string, error) {
	if lc.CategoryID == "" {
		return "", letter.NewPreconditionError("category must be set before generating reference number")
	}
	if lc.OrganizationID == "" {
		return "", letter.NewPreconditionError("organization must be set")
	}
	if lc.RecipientID == "" {
		return "", letter.NewPreconditionError("recipient must be set")
	}

	parts, err := s.resolveParts(ctx, lc.OrganizationID, lc.RecipientID, lc.CategoryID, true)
	if err != nil {
		return "", err
	}

	year := lc.CreatedAt.Year()
	if lc.CreatedAt.IsZero() {
		year = time.Now().UTC().Year()
	}

	seq, err := s.SequenceRepo.IncrementAndGet(ctx, s.scope(year, parts.senderID))
	if err != nil {
		return "", err
	}

	ref := letter.FormatReference(parts.sender, parts.recipientOrg, parts.category, year, seq)
	s.Logger.Debugw("allocated reference number",
		"reference_number", ref,
		"organization_id", lc.OrganizationID,
		"sequence", seq,
	)
	return ref, nil
}

func (s *referenceService) Preview(ctx context.Context, req *dto.ReferencePreviewRequest) (*dto.ReferencePreviewResponse, error) {
	if !req.IsComplete() {
		return &dto.ReferencePreviewResponse{
			TentativeReferenceNumber: types.ReferencePreviewPlaceholder,
		}, nil
	}

	parts, err := s.resolveParts(ctx, req.OrganizationID, req.RecipientID, req.CategoryID, false)
	if err != nil {
		return nil, err
	}

	year := previewYear(req.Date)
	seq, err := s.SequenceRepo.PeekNext(ctx, s.scope(year, parts.senderID))
	if err != nil {
		return nil, err
	}

	return &dto.ReferencePreviewResponse{
		TentativeReferenceNumber: letter.FormatReference(parts.sender, parts.recipientOrg, parts.category, year, seq),
	}, nil
}

// resolveParts loads every segment of a reference. With required set, a
// relation that does not exist fails validation instead of not found.
func (s *referenceService) resolveParts(ctx context.Context, organizationID, recipientID, categoryID string, required bool) (*referenceParts, error) {
	missing := func(err error, id, message string) error {
		if required && ierr.IsNotFound(err) {
			return letter.NewUnresolvedRelationError(id, message)
		}
		return err
	}

	cat, err := s.CategoryRepo.Get(ctx, categoryID)
	if err != nil {
		return nil, missing(err, categoryID, "category must be set before generating reference number")
	}

	sender, err := s.OrganizationRepo.Get(ctx, organizationID)
	if err != nil {
		return nil, missing(err, organizationID, "organization must be set")
	}

	rcpt, err := s.RecipientRepo.Get(ctx, recipientID)
	if err != nil {
		return nil, missing(err, recipientID, "recipient must be set")
	}
	if !rcpt.HasOrganization() {
		return nil, letter.NewPreconditionError("recipient must have an organization")
	}

	recipientOrg, err := s.OrganizationRepo.Get(ctx, *rcpt.OrganizationID)
	if err != nil {
		return nil, missing(err, *rcpt.OrganizationID, "recipient must have an organization")
	}

	senderCode, err := s.senderCode.SenderCode(ctx, sender)
	if err != nil {
		return nil, err
	}

	return &referenceParts{
		sender:       senderCode,
		senderID:     sender.ID,
		recipientOrg: recipientOrg.ShortForm,
		category:     cat.Code(),
	}, nil
}

func (s *referenceService) scope(year int, organizationID string) sequence.ScopeKey {
	if s.Config.Reference.PerOrganization {
		return sequence.NewOrganizationScope(sequence.NamespaceLetter, year, organizationID)
	}
	return sequence.NewYearScope(sequence.NamespaceLetter, year)
}

// previewYear takes the year of a YYYY-MM-DD or RFC3339 date and falls back to the current year
func previewYear(date string) int {
	if t, err := types.ParseDate(date); err == nil {
		return t.Year()
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Year()
	}
	return time.Now().UTC().Year()
}
