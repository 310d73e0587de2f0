package record

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docinblink/api/internal/domain"
	"github.com/docinblink/api/internal/pkg/id"
)

const presignTTL = 15 * time.Minute

type Store interface {
	Put(ctx context.Context, rec *domain.MedicalRecord) error
	Get(ctx context.Context, recordID string) (*domain.MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]domain.MedicalRecord, error)
	Update(ctx context.Context, recordID string, updates map[string]interface{}) error
}

type FamilyStore interface {
	Get(ctx context.Context, memberID string) (*domain.FamilyMember, error)
}

// FileStore is the slice of object storage the record service needs.
type FileStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Service manages medical records of family members, including attached
// documents in object storage.
type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateMedicalRecordRequest) (*domain.MedicalRecord, error)
	ListForPatient(ctx context.Context, userID, patientID string) ([]domain.MedicalRecord, error)
	AttachFile(ctx context.Context, userID, recordID, filename, b64Data string) (*domain.MedicalRecord, error)
}

type ServiceDeps struct {
	Repo     Store
	Families FamilyStore
	Files    FileStore
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateMedicalRecordRequest) (*domain.MedicalRecord, error) {
	if err := s.checkOwner(ctx, userID, req.PatientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recordDate := now
	if req.RecordDate != "" {
		d, err := time.Parse("2006-01-02", req.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("record_date must be YYYY-MM-DD: %w", domain.ErrBadRequest)
		}
		recordDate = d
	}

	rec := &domain.MedicalRecord{
		RecordID:    id.New(),
		PatientID:   req.PatientID,
		RecordType:  req.RecordType,
		Description: req.Description,
		DoctorName:  req.DoctorName,
		RecordDate:  recordDate,
		CreatedAt:   now,
	}
	if err := s.deps.Repo.Put(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) ListForPatient(ctx context.Context, userID, patientID string) ([]domain.MedicalRecord, error) {
	if err := s.checkOwner(ctx, userID, patientID); err != nil {
		return nil, err
	}
	records, err := s.deps.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		s.presign(ctx, &records[i])
	}
	return records, nil
}

func (s *service) AttachFile(ctx context.Context, userID, recordID, filename, b64Data string) (*domain.MedicalRecord, error) {
	rec, err := s.deps.Repo.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, userID, rec.PatientID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("records/%s/%s", recordID, filename)
	if _, err := s.deps.Files.UploadBase64(ctx, key, b64Data); err != nil {
		return nil, err
	}
	if err := s.deps.Repo.Update(ctx, recordID, map[string]interface{}{"file_key": key}); err != nil {
		// the orphaned object is removed so a retry starts clean
		if delErr := s.deps.Files.Delete(ctx, key); delErr != nil {
			slog.Warn("failed to remove orphaned record file", "key", key, "error", delErr)
		}
		return nil, err
	}

	rec.FileKey = &key
	s.presign(ctx, rec)
	return rec, nil
}

// checkOwner verifies the family member belongs to userID.
func (s *service) checkOwner(ctx context.Context, userID, patientID string) error {
	m, err := s.deps.Families.Get(ctx, patientID)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return fmt.Errorf("patient belongs to another account: %w", domain.ErrForbidden)
	}
	return nil
}

// presign fills FileURL for records with an attachment, best effort.
func (s *service) presign(ctx context.Context, rec *domain.MedicalRecord) {
	if rec.FileKey == nil || s.deps.Files == nil {
		return
	}
	url, err := s.deps.Files.PresignedURL(ctx, *rec.FileKey, presignTTL)
	if err != nil {
		slog.Warn("failed to presign record file", "record_id", rec.RecordID, "error", err)
		return
	}
	rec.FileURL = &url
}
