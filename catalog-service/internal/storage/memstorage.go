package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/amasacademy/portal/catalog-service/internal/domain/models"
	storerrros "github.com/amasacademy/portal/catalog-service/internal/storage/errors"
)

type MemStorage struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func New() *MemStorage {
	return &MemStorage{
		products: make(map[string]models.Product),
	}
}

func (ms *MemStorage) SaveProduct(product models.Product) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if product.PID == "" {
		product.PID = uuid.New().String()
	}
	ms.products[product.PID] = product
	return nil
}

func (ms *MemStorage) SaveProducts(products []models.Product) error {
	for _, product := range products {
		if err := ms.SaveProduct(product); err != nil {
			return err
		}
	}
	return nil
}

func (ms *MemStorage) GetProducts(search, category, sortBy string, ascending bool) ([]models.Product, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	var products []models.Product
	for _, product := range ms.products {
		if search != "" && !strings.Contains(strings.ToLower(product.Name+" "+product.Desc), strings.ToLower(search)) {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	if len(products) == 0 {
		return nil, storerrros.ErrEmptyProductList
	}

	sort.Slice(products, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "price":
			less = products[i].Price < products[j].Price
		case "name":
			less = products[i].Name < products[j].Name
		default:
			less = products[i].PID < products[j].PID
		}
		if !ascending {
			return !less
		}
		return less
	})
	return products, nil
}

func (ms *MemStorage) GetProduct(pid string) (models.Product, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	product, ok := ms.products[pid]
	if !ok {
		return models.Product{}, storerrros.ErrProductNoExist
	}
	return product, nil
}

func (ms *MemStorage) DeleteProduct(pid string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.products[pid]; !ok {
		return storerrros.ErrProductNoExist
	}
	delete(ms.products, pid)
	return nil
}
