package contacts

import (
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

var ErrContactNotFound = errors.New("contato não encontrado")

type ContactsService interface {
	Get(id string) (*domain.Contact, error)
	Put(contact *domain.Contact) (*domain.Contact, error)
	Delete(id string) error
	List(status domain.ContactStatus) ([]*domain.Contact, error)
	Snapshot() (*domain.Table, error)
}

type Service struct {
	repo repository.RecordRepository
	arms []string
	now  func() time.Time
}

func NewService(repo repository.RecordRepository, scriptArms []string) *Service {
	if len(scriptArms) == 0 {
		scriptArms = []string{"A"}
	}
	return &Service{
		repo: repo,
		arms: scriptArms,
		now:  time.Now,
	}
}

func (s *Service) Get(id string) (*domain.Contact, error) {
	id = strings.TrimSpace(id)

	rec, err := s.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrContactNotFound
	}
	return s.fromRecord(rec), nil
}

// Put cria ou atualiza o contato. Sem id, um novo é gerado; sem estatus,
// o contato fica pendiente.
func (s *Service) Put(contact *domain.Contact) (*domain.Contact, error) {
	contact.ID = strings.TrimSpace(contact.ID)
	contact.Name = strings.TrimSpace(contact.Name)

	if contact.Status == "" {
		contact.Status = domain.ContactStatusPending
	}

	if err := utils.ValidateStruct(contact); err != nil {
		return nil, err
	}

	if contact.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, err
		}
		contact.ID = id
	}

	contact.UpdatedAt = s.now()
	if err := s.repo.Put(contact.ToRecord()); err != nil {
		return nil, err
	}

	contact.ScriptArm = s.ScriptArm(contact.ID)
	return contact, nil
}

func (s *Service) Delete(id string) error {
	id = strings.TrimSpace(id)

	rec, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrContactNotFound
	}
	return s.repo.Delete(id)
}

// List devolve os contatos ordenados pelo id; status vazio não filtra
func (s *Service) List(status domain.ContactStatus) ([]*domain.Contact, error) {
	records, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	contacts := make([]*domain.Contact, 0, len(records))
	for _, rec := range records {
		c := s.fromRecord(rec)
		if status != "" && c.Status != status {
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (s *Service) Snapshot() (*domain.Table, error) {
	return s.repo.Snapshot()
}

// ScriptArm escolhe o roteiro de ligação do contato; o mesmo id cai
// sempre no mesmo braço
func (s *Service) ScriptArm(id string) string {
	return s.arms[xxhash.Sum64String(id)%uint64(len(s.arms))]
}

func (s *Service) fromRecord(rec *domain.Record) *domain.Contact {
	c := domain.ContactFromRecord(rec)
	c.ScriptArm = s.ScriptArm(c.ID)
	return c
}
