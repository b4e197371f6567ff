package distancematrix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"

	"routeopt/internal/domain"
	"routeopt/internal/obstrace"
)

// HTTPProvider fetches distance/duration matrices from an external
// routing API: it POSTs the origin/destination coordinates as JSON to
// BaseURL+"/matrix" and reads back distances in kilometers and durations
// in minutes. Transient failures are retried with exponential backoff
// before giving up to the Haversine fallback; the backoff multiplier is
// the backoff library's default.
type HTTPProvider struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxRetries int
	BaseDelay  time.Duration
}

// NewHTTPProvider builds a provider with sane HTTP client defaults.
func NewHTTPProvider(baseURL, apiKey string, maxRetries int, baseDelay time.Duration) *HTTPProvider {
	return &HTTPProvider{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxRetries: maxRetries,
		BaseDelay:  baseDelay,
	}
}

type matrixRequest struct {
	Origins      [][2]float64 `json:"origins"`
	Destinations [][2]float64 `json:"destinations"`
}

type matrixResponse struct {
	DistancesKm [][]float64 `json:"distances_km"`
	DurationsMin [][]float64 `json:"durations_min"`
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("distance matrix provider returned %d: %s", e.Code, e.Body)
}

// FetchMatrix implements Provider. It issues one matrix request for the
// full location set and retries transient failures (429, 5xx, network
// errors) with exponential backoff, bounded by MaxRetries.
func (p *HTTPProvider) FetchMatrix(ctx context.Context, locations []domain.Location) (*domain.Matrix, *domain.Matrix, error) {
	ctx, span := obstrace.StartSpan(ctx, "distancematrix.http_provider.fetch_matrix",
		attribute.Int("routeopt.locations", len(locations)),
		attribute.String("routeopt.provider.base_url", p.BaseURL),
	)
	defer span.End()

	coords := make([][2]float64, len(locations))
	ids := make([]string, len(locations))
	for i, loc := range locations {
		coords[i] = [2]float64{loc.Latitude, loc.Longitude}
		ids[i] = loc.ID
	}

	payload, err := json.Marshal(matrixRequest{Origins: coords, Destinations: coords})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	operation := func() (*matrixResponse, error) {
		attemptCtx, attemptSpan := obstrace.StartSpan(ctx, "distancematrix.http_provider.attempt")
		defer attemptSpan.End()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, p.BaseURL+"/matrix", bytes.NewReader(payload))
		if err != nil {
			obstrace.RecordError(attemptSpan, err)
			return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.HTTPClient.Do(req)
		if err != nil {
			obstrace.RecordError(attemptSpan, err)
			var netErr net.Error
			if errors.As(err, &netErr) {
				return nil, err // retryable
			}
			return nil, backoff.Permanent(err)
		}
		defer resp.Body.Close()
		attemptSpan.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

		if resp.StatusCode >= 400 {
			statusErr := &httpStatusError{Code: resp.StatusCode}
			obstrace.RecordError(attemptSpan, statusErr)
			switch resp.StatusCode {
			case http.StatusTooManyRequests, http.StatusInternalServerError,
				http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
				return nil, statusErr // retryable
			default:
				return nil, backoff.Permanent(statusErr)
			}
		}

		var mr matrixResponse
		if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
			obstrace.RecordError(attemptSpan, err)
			return nil, backoff.Permanent(fmt.Errorf("decode matrix response: %w", err))
		}
		return &mr, nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay

	mr, err := backoff.Retry(ctx, operation, backoff.WithBackOff(b), backoff.WithMaxTries(uint(p.MaxRetries)+1))
	if err != nil {
		obstrace.RecordError(span, err)
		return nil, nil, fmt.Errorf("distance matrix provider exhausted retries: %w", err)
	}

	n := len(ids)
	if len(mr.DistancesKm) != n || len(mr.DurationsMin) != n {
		return nil, nil, fmt.Errorf("matrix provider returned %dx%d, expected %dx%d",
			len(mr.DistancesKm), len(mr.DurationsMin), n, n)
	}

	dist := domain.NewMatrix(ids)
	dur := domain.NewMatrix(ids)
	for i := 0; i < n; i++ {
		if len(mr.DistancesKm[i]) != n || len(mr.DurationsMin[i]) != n {
			return nil, nil, fmt.Errorf("matrix provider row %d has wrong length", i)
		}
		for j := 0; j < n; j++ {
			dist.Values[i][j] = math.Max(0, mr.DistancesKm[i][j])
			dur.Values[i][j] = math.Max(0, mr.DurationsMin[i][j])
		}
	}

	return dist, dur, nil
}
