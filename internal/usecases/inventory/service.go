package inventory

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/sales-report-api/infrastructure/repository"
	"github.com/vfg2006/sales-report-api/internal/config"
	"github.com/vfg2006/sales-report-api/internal/domain"
	"github.com/vfg2006/sales-report-api/pkg/utils"
)

var (
	ErrItemNotFound = errors.New("item de inventário não encontrado")
	ErrSKURequired  = errors.New("sku é obrigatório")
)

// dias de venda recente usados no cálculo da velocidade
const recentWindowDays = 30

type InventoryService interface {
	Get(sku string) (*domain.InventoryItem, error)
	Put(item *domain.InventoryItem) (*domain.InventoryItem, error)
	Delete(sku string) error
	List() ([]*domain.InventoryItem, error)
	Snapshot() (*domain.Table, error)
	Reorder() ([]domain.ReorderSuggestion, error)
}

type Service struct {
	repo repository.RecordRepository
	cfg  config.Inventory
	now  func() time.Time
}

func NewService(repo repository.RecordRepository, cfg config.Inventory) *Service {
	return &Service{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *Service) Get(sku string) (*domain.InventoryItem, error) {
	rec, err := s.repo.Get(strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrItemNotFound
	}
	return domain.InventoryItemFromRecord(rec), nil
}

func (s *Service) Put(item *domain.InventoryItem) (*domain.InventoryItem, error) {
	item.SKU = strings.TrimSpace(item.SKU)
	if item.SKU == "" {
		return nil, ErrSKURequired
	}

	if err := utils.ValidateStruct(item); err != nil {
		return nil, err
	}

	item.UpdatedAt = s.now()
	if err := s.repo.Put(item.ToRecord()); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Delete(sku string) error {
	sku = strings.TrimSpace(sku)

	rec, err := s.repo.Get(sku)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrItemNotFound
	}
	return s.repo.Delete(sku)
}

func (s *Service) List() ([]*domain.InventoryItem, error) {
	records, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	items := make([]*domain.InventoryItem, 0, len(records))
	for _, rec := range records {
		items = append(items, domain.InventoryItemFromRecord(rec))
	}
	return items, nil
}

func (s *Service) Snapshot() (*domain.Table, error) {
	return s.repo.Snapshot()
}

// Reorder sugere quanto comprar de cada SKU para cobrir CoverDays dias.
// A velocidade diária pondera as vendas dos últimos 30 dias com a média do
// ano (vendas do ano / dias trabalhados). Só entram SKUs com quantidade > 0.
func (s *Service) Reorder() ([]domain.ReorderSuggestion, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}

	worked := float64(utils.WorkedDays(s.now(), s.cfg.NonWorkedDays))

	suggestions := make([]domain.ReorderSuggestion, 0)
	for _, item := range items {
		velocity := DailyVelocity(item, worked, s.cfg.RecentWeight)
		qty := int(math.Ceil(velocity*float64(s.cfg.CoverDays) - item.OnHand))
		if qty <= 0 {
			continue
		}

		suggestions = append(suggestions, domain.ReorderSuggestion{
			SKU:           item.SKU,
			Name:          item.Name,
			OnHand:        item.OnHand,
			DailyVelocity: utils.RoundWithTwoDecimalPlace(velocity),
			Quantity:      qty,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Quantity != suggestions[j].Quantity {
			return suggestions[i].Quantity > suggestions[j].Quantity
		}
		return suggestions[i].SKU < suggestions[j].SKU
	})

	return suggestions, nil
}

// DailyVelocity = w*recente + (1-w)*anual
func DailyVelocity(item *domain.InventoryItem, workedDays, recentWeight float64) float64 {
	if workedDays < 1 {
		workedDays = 1
	}
	recent := item.Sold30 / recentWindowDays
	annual := item.SoldYTD / workedDays
	return recentWeight*recent + (1-recentWeight)*annual
}
