package sqlite

import (
	"context"
	"errors"
	"fmt"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository creates a new instance of CandidateRepository.
func NewCandidateRepository(db *gorm.DB) repository.CandidateRepository {
	return &candidateRepository{db: db}
}

// FindByID retrieves a candidate by its ID, with its interview preloaded.
func (r *candidateRepository) FindByID(ctx context.Context, id uint) (*entity.Candidate, error) {
	var candidate entity.Candidate
	if err := r.db.WithContext(ctx).Preload("Interview").First(&candidate, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find candidate by id %d: %w", id, err)
	}
	return &candidate, nil
}

// FindAll retrieves every non-archived candidate.
func (r *candidateRepository) FindAll(ctx context.Context) ([]*entity.Candidate, error) {
	var candidates []*entity.Candidate
	if err := r.db.WithContext(ctx).Preload("Interview").Where("is_archived = ?", false).Order("id asc").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

// FindWithInterviews retrieves the roster the reminder loop scans: every candidate carrying an interview.
func (r *candidateRepository) FindWithInterviews(ctx context.Context) ([]entity.Candidate, error) {
	db := r.db.WithContext(ctx)
	var candidates []entity.Candidate
	withInterview := db.Model(&entity.Interview{}).Select("candidate_id")
	if err := db.Preload("Interview").Where("id IN (?)", withInterview).Order("id asc").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates with interviews: %w", err)
	}
	return candidates, nil
}

// Create creates a new candidate. Returns the ID of the created candidate.
func (r *candidateRepository) Create(ctx context.Context, candidate *entity.Candidate) (uint, error) {
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return 0, fmt.Errorf("failed to create candidate %q: %w", candidate.Name, err)
	}
	return candidate.ID, nil
}

// ScheduleInterviews upserts one interview per candidate so a new schedule
// replaces the previous one in place.
func (r *candidateRepository) ScheduleInterviews(ctx context.Context, candidateIDs []uint, interview entity.Interview, status constant.CandidateStatus) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCandidates(tx, candidateIDs); err != nil {
			return err
		}
		for _, id := range candidateIDs {
			iv := interview
			iv.ID = 0
			iv.CandidateID = id
			iv.Interviewers = append([]string(nil), interview.Interviewers...)

			upsert := clause.OnConflict{
				Columns:   []clause.Column{{Name: "candidate_id"}},
				UpdateAll: true,
			}
			if err := tx.Clauses(upsert).Create(&iv).Error; err != nil {
				return fmt.Errorf("failed to upsert interview for candidate %d: %w", id, err)
			}
		}
		if err := tx.Model(&entity.Candidate{}).Where("id IN ?", candidateIDs).Update("status", status.String()).Error; err != nil {
			return fmt.Errorf("failed to update candidate status: %w", err)
		}
		return nil
	})
	return err
}

// CancelInterviews deletes the interviews of the listed candidates.
func (r *candidateRepository) CancelInterviews(ctx context.Context, candidateIDs []uint, status constant.CandidateStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCandidates(tx, candidateIDs); err != nil {
			return err
		}
		if err := tx.Where("candidate_id IN ?", candidateIDs).Delete(&entity.Interview{}).Error; err != nil {
			return fmt.Errorf("failed to delete interviews: %w", err)
		}
		if err := tx.Model(&entity.Candidate{}).Where("id IN ?", candidateIDs).Update("status", status.String()).Error; err != nil {
			return fmt.Errorf("failed to update candidate status: %w", err)
		}
		return nil
	})
}

// SetNoShow updates the no-show flag of a candidate's interview.
func (r *candidateRepository) SetNoShow(ctx context.Context, candidateID uint, noShow bool) error {
	res := r.db.WithContext(ctx).Model(&entity.Interview{}).Where("candidate_id = ?", candidateID).Update("no_show", noShow)
	if res.Error != nil {
		return fmt.Errorf("failed to update no-show for candidate %d: %w", candidateID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("interview for candidate %d not found: %w", candidateID, gorm.ErrRecordNotFound)
	}
	return nil
}

// requireCandidates fails with gorm.ErrRecordNotFound unless every id exists.
func requireCandidates(tx *gorm.DB, ids []uint) error {
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	var count int64
	if err := tx.Model(&entity.Candidate{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count candidates: %w", err)
	}
	if int(count) != len(unique) {
		return fmt.Errorf("%d of %d candidates not found: %w", len(unique)-int(count), len(unique), gorm.ErrRecordNotFound)
	}
	return nil
}
