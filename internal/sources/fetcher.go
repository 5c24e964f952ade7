package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/qsdiary/internal/telemetry/metrics"
	"github.com/2beens/qsdiary/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	fetchTimeout = 10 * time.Second
	// seconds a fresh response is served from memory
	freshCacheExpire = 5 * 60
	// a last good response nobody asked for in this long is dropped
	lastGoodExpire = 30 * 24 * time.Hour

	resultFresh  = "fresh"
	resultCached = "cached"
	resultStale  = "stale"
	resultFailed = "failed"
)

var ErrSourceUnavailable = errors.New("source unavailable")

// Fetcher GETs JSON documents from third party sources. Fresh responses are
// kept in memory for a few minutes, and the last good response of every URL
// is kept in redis to be served when the source is down.
type Fetcher struct {
	httpClient     *http.Client
	cache          *freecache.Cache
	redisClient    *redis.Client
	metricsManager *metrics.Manager
}

func NewFetcher(httpClient *http.Client, redisClient *redis.Client, metricsManager *metrics.Manager) *Fetcher {
	megabyte := 1024 * 1024
	return &Fetcher{
		httpClient:     httpClient,
		cache:          freecache.NewCache(20 * megabyte),
		redisClient:    redisClient,
		metricsManager: metricsManager,
	}
}

func lastGoodKey(url string) string {
	return fmt.Sprintf("source-last-good::%s", url)
}

// FetchJSON decodes the document at url into target. source only labels
// metrics and spans.
func (f *Fetcher) FetchJSON(ctx context.Context, source, url string, target any) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sources.fetcher.fetchJSON")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("source", source))

	result := resultFailed
	defer func() {
		f.metricsManager.CounterSourceFetches.WithLabelValues(source, result).Inc()
		span.SetAttributes(attribute.String("source.result", result))
	}()

	cacheKey := []byte(url)
	if cached, err := f.cache.Get(cacheKey); err == nil {
		if err := json.Unmarshal(cached, target); err == nil {
			result = resultCached
			return nil
		}
		log.Errorf("%s: unmarshal cached response: %s", source, err)
	}

	respBytes, fetchErr := f.get(ctx, url)
	if fetchErr == nil {
		if fetchErr = json.Unmarshal(respBytes, target); fetchErr == nil {
			result = resultFresh
			if err := f.cache.Set(cacheKey, respBytes, freshCacheExpire); err != nil {
				log.Errorf("%s: set fresh cache: %s", source, err)
			}
			if f.redisClient != nil {
				if err := f.redisClient.Set(ctx, lastGoodKey(url), respBytes, lastGoodExpire).Err(); err != nil {
					log.Errorf("%s: store last good response: %s", source, err)
				}
			}
			return nil
		}
		fetchErr = fmt.Errorf("unmarshal response: %w", fetchErr)
	}
	log.Warnf("%s: fetch %s: %s", source, url, fetchErr)

	if f.redisClient != nil {
		stale, err := f.redisClient.Get(ctx, lastGoodKey(url)).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Errorf("%s: get last good response: %s", source, err)
		}
		if len(stale) > 0 {
			if err := json.Unmarshal(stale, target); err == nil {
				log.Debugf("%s: serving last good response for %s", source, url)
				result = resultStale
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, source, fetchErr)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return respBytes, nil
}
