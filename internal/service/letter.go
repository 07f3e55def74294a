package service

import (
	"context"

	"github.com/papertrails/papertrails/internal/api/dto"
	"github.com/papertrails/papertrails/internal/domain/letter"
	"github.com/papertrails/papertrails/internal/domain/recipient"
	"github.com/papertrails/papertrails/internal/domain/user"
	ierr "github.com/papertrails/papertrails/internal/errors"
	"github.com/papertrails/papertrails/internal/types"
	"github.com/samber/lo"
)

type LetterService interface {
	CreateLetter(ctx context.Context, req dto.CreateLetterRequest) (*dto.LetterResponse, error)
	GetLetter(ctx context.Context, id string) (*dto.LetterResponse, error)
	ListLetters(ctx context.Context, filter *types.LetterFilter) (*dto.ListLettersResponse, error)
	UpdateLetter(ctx context.Context, id string, req dto.UpdateLetterRequest) (*dto.LetterResponse, error)
}

type letterService struct {
	ServiceParams
	references ReferenceService
}

func NewLetterService(params ServiceParams, references ReferenceService) LetterService {
	return &letterService{
		ServiceParams: params,
		references:    references,
	}
}

func (s *letterService) CreateLetter(ctx context.Context, req dto.CreateLetterRequest) (*dto.LetterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l := req.ToLetter(ctx)

	if err := s.checkCopies(ctx, &req); err != nil {
		return nil, err
	}

	internalRefs, err := s.resolveInternalReferences(ctx, l.ID, req.InternalReferences)
	if err != nil {
		return nil, err
	}
	l.References = append(l.References, internalRefs...)

	err = s.withAllocationRetry(ctx, func(ctx context.Context) error {
		ref, err := s.references.Allocate(ctx, letterContextOf(l))
		if err != nil {
			return err
		}
		l.ReferenceNumber = lo.ToPtr(ref)

		return s.LetterRepo.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created letter",
		"letter_id", l.ID,
		"reference_number", lo.FromPtr(l.ReferenceNumber),
		"copies", len(l.CopyRecipients),
		"attachments", len(l.Attachments),
	)

	return dto.NewLetterResponse(l), nil
}

// checkCopies makes sure every CC id points at an existing recipient or user
func (s *letterService) checkCopies(ctx context.Context, req *dto.CreateLetterRequest) error {
	if ids := req.CopyRecipientIDs(); len(ids) > 0 {
		found, err := s.RecipientRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if missing := missingIDs(ids, lo.Map(found, func(r *recipient.Recipient, _ int) string { return r.ID })); len(missing) > 0 {
			return newMissingCopiesError("recipient", missing)
		}
	}

	if ids := lo.Uniq(req.CopyMyOrg); len(ids) > 0 {
		found, err := s.UserRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if missing := missingIDs(ids, lo.Map(found, func(u *user.User, _ int) string { return u.ID })); len(missing) > 0 {
			return newMissingCopiesError("user", missing)
		}
	}
	return nil
}

// resolveInternalReferences turns reference numbers into links to earlier
// letters. Unknown numbers are skipped.
func (s *letterService) resolveInternalReferences(ctx context.Context, letterID string, numbers []string) ([]*letter.Reference, error) {
	refs := make([]*letter.Reference, 0, len(numbers))
	for _, number := range lo.Uniq(lo.Compact(numbers)) {
		ref, err := s.LetterRepo.GetByReferenceNumber(ctx, number)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.Logger.Warnw("skipping unknown internal reference",
					"letter_id", letterID,
					"reference_number", number,
				)
				continue
			}
			return nil, err
		}
		refs = append(refs, letter.NewInternalReference(letterID, ref.ID))
	}
	return refs, nil
}

func (s *letterService) GetLetter(ctx context.Context, id string) (*dto.LetterResponse, error) {
	if id == "" {
		return nil, ierr.NewError("letter_id is required").
			WithHint("Letter ID is required").
			Mark(ierr.ErrValidation)
	}

	l, err := s.LetterRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewLetterResponse(l), nil
}

func (s *letterService) ListLetters(ctx context.Context, filter *types.LetterFilter) (*dto.ListLettersResponse, error) {
	if filter == nil {
		filter = types.NewLetterFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	letters, err := s.LetterRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.LetterRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(letters, func(l *letter.Letter, _ int) *dto.LetterResponse {
		return dto.NewLetterResponse(l)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *letterService) UpdateLetter(ctx context.Context, id string, req dto.UpdateLetterRequest) (*dto.LetterResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var l *letter.Letter
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		l, err = s.LetterRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		req.Apply(ctx, l)
		return s.LetterRepo.Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewLetterResponse(l), nil
}

func missingIDs(want, found []string) []string {
	missing, _ := lo.Difference(want, found)
	return missing
}

func newMissingCopiesError(kind string, ids []string) error {
	return ierr.NewError("copy "+kind+" not found").
		WithHintf("Some %s copies do not exist", kind).
		WithReportableDetails(map[string]any{
			kind + "_ids": ids,
		}).
		Mark(ierr.ErrValidation)
}
