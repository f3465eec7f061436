// cache.go — LRU-кэш чтения сур с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
//
// Кэшируются только суры: это самый горячий публичный контент,
// и его объём ограничен сверху (114 записей). Мутации инвалидируют
// запись точечно, TTL страхует от рассинхронизации.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/alfurqan/quran-cms/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qc_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш сур.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qc_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша сур.",
	})
)

// CacheService — LRU-кэш сур с автоматическим TTL.
// Каждый экземпляр сервиса имеет собственный in-memory кэш.
type CacheService struct {
	cache *expirable.LRU[string, *model.Sura]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[string, *model.Sura](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// Get возвращает суру из кэша по id.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(id string) (*model.Sura, bool) {
	val, ok := c.cache.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *CacheService) Set(id string, s *model.Sura) {
	c.cache.Add(id, s)
}

// Delete удаляет запись из кэша (инвалидация при мутации).
func (c *CacheService) Delete(id string) {
	c.cache.Remove(id)
}
