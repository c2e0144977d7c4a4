package attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/log"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

var ErrEntryNotFound = errors.New("pessoa não encontrada na lista")

type AttendanceService interface {
	Put(entry *domain.AttendanceEntry) (*domain.AttendanceEntry, error)
	Mark(id string, present bool) (*domain.AttendanceEntry, error)
	Delete(id string) error
	List(group string) ([]*domain.AttendanceEntry, domain.AttendanceSummary, error)
	Reset() (int, error)
	Snapshot() (*domain.Table, error)
}

type Service struct {
	repo repository.RecordRepository
	now  func() time.Time
}

func NewService(repo repository.RecordRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Put inclui ou atualiza uma pessoa; a marcação existente é preservada
func (s *Service) Put(entry *domain.AttendanceEntry) (*domain.AttendanceEntry, error) {
	entry.ID = strings.TrimSpace(entry.ID)
	entry.Name = strings.TrimSpace(entry.Name)

	if err := utils.ValidateStruct(entry); err != nil {
		return nil, err
	}

	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		entry.ID = id
	} else {
		current, err := s.repo.Get(entry.ID)
		if err != nil {
			return nil, err
		}
		if current != nil {
			prev := domain.AttendanceEntryFromRecord(current)
			entry.Present = prev.Present
			entry.CheckedAt = prev.CheckedAt
		}
	}

	if err := s.repo.Put(entry.ToRecord()); err != nil {
		return nil, err
	}
	return entry, nil
}

// Mark registra presença (com hora) ou ausência
func (s *Service) Mark(id string, present bool) (*domain.AttendanceEntry, error) {
	id = strings.TrimSpace(id)

	rec, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrEntryNotFound
	}

	entry := domain.AttendanceEntryFromRecord(rec)
	entry.Present = present
	entry.CheckedAt = nil
	if present {
		now := s.now().Truncate(time.Second)
		entry.CheckedAt = &now
	}

	if err := s.repo.Put(entry.ToRecord()); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(id string) error {
	id = strings.TrimSpace(id)

	rec, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrEntryNotFound
	}
	return s.repo.Delete(id)
}

// List devolve a lista (filtrada por grupo quando informado) e as contagens
func (s *Service) List(group string) ([]*domain.AttendanceEntry, domain.AttendanceSummary, error) {
	var summary domain.AttendanceSummary

	records, err := s.repo.List()
	if err != nil {
		return nil, summary, err
	}

	entries := make([]*domain.AttendanceEntry, 0, len(records))
	for _, rec := range records {
		entry := domain.AttendanceEntryFromRecord(rec)
		if group != "" && !strings.EqualFold(entry.Group, group) {
			continue
		}

		entries = append(entries, entry)
		summary.Total++
		if entry.Present {
			summary.Present++
		}
	}
	summary.Absent = summary.Total - summary.Present

	return entries, summary, nil
}

// Reset desmarca todos para uma nova toma de lista
func (s *Service) Reset() (int, error) {
	records, err := s.repo.List()
	if err != nil {
		return 0, err
	}

	reset := 0
	for _, rec := range records {
		entry := domain.AttendanceEntryFromRecord(rec)
		if !entry.Present && entry.CheckedAt == nil {
			continue
		}

		entry.Present = false
		entry.CheckedAt = nil
		if err := s.repo.Put(entry.ToRecord()); err != nil {
			return reset, err
		}
		reset++
	}

	log.L.WithField("reset", reset).Info("Lista reiniciada")
	return reset, nil
}

func (s *Service) Snapshot() (*domain.Table, error) {
	return s.repo.Snapshot()
}
