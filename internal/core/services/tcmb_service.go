package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/core/domain"
	portssvc "github.com/aegeantours/tour_backoffice_app/internal/core/ports/services"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// DefaultTCMBEndpoint is the daily quotation published by the central bank.
const DefaultTCMBEndpoint = "https://www.tcmb.gov.tr/kurlar/today.xml"

// tcmbDocument mirrors the TCMB daily XML structure.
type tcmbDocument struct {
	XMLName    xml.Name       `xml:"Tarih_Date"`
	Currencies []tcmbCurrency `xml:"Currency"`
}

type tcmbCurrency struct {
	Code         string `xml:"CurrencyCode,attr"`
	ForexSelling string `xml:"ForexSelling"`
}

// tcmbService previews the TCMB daily quotation. It only reads; propagating
// a quote into the rate store requires an explicit operator refresh, so an
// unattended bad quote can never silently reprice the books.
type tcmbService struct {
	BaseService
	endpoint string
	client   *http.Client
	// Quotes are cached per calendar day so repeated previews do not
	// refetch the feed.
	quoteCache *cache.Cache
}

// NewTCMBService creates a new TCMB quote service.
func NewTCMBService(endpoint string, timeout time.Duration, cacheTTL time.Duration) portssvc.RateQuoteSvcFacade {
	if endpoint == "" {
		endpoint = DefaultTCMBEndpoint
	}
	return &tcmbService{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: timeout},
		quoteCache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Ensure tcmbService implements the RateQuoteSvcFacade interface
var _ portssvc.RateQuoteSvcFacade = (*tcmbService)(nil)

// FetchCentralBankQuote implements portssvc.RateQuoteSvcFacade.
func (s *tcmbService) FetchCentralBankQuote(ctx context.Context) (*domain.CentralBankQuote, error) {
	cacheKey := "tcmb-" + time.Now().UTC().Format("2006-01-02")
	if cached, found := s.quoteCache.Get(cacheKey); found {
		quote := cached.(domain.CentralBankQuote)
		return &quote, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned status %d", apperrors.ErrQuoteUnavailable, resp.StatusCode)
	}

	var doc tcmbDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}

	quote, err := quoteFromDocument(doc)
	if err != nil {
		return nil, err
	}

	s.quoteCache.Set(cacheKey, *quote, cache.DefaultExpiration)
	return quote, nil
}

// quoteFromDocument extracts the EUR/USD selling rates from the daily feed.
func quoteFromDocument(doc tcmbDocument) (*domain.CentralBankQuote, error) {
	quote := domain.CentralBankQuote{QuotedAt: time.Now().UTC()}
	for _, currency := range doc.Currencies {
		switch currency.Code {
		case string(domain.EUR):
			rate, err := decimal.NewFromString(currency.ForexSelling)
			if err != nil {
				return nil, fmt.Errorf("%w: bad EUR rate %q", apperrors.ErrQuoteUnavailable, currency.ForexSelling)
			}
			quote.EUR = rate
		case string(domain.USD):
			rate, err := decimal.NewFromString(currency.ForexSelling)
			if err != nil {
				return nil, fmt.Errorf("%w: bad USD rate %q", apperrors.ErrQuoteUnavailable, currency.ForexSelling)
			}
			quote.USD = rate
		}
	}
	if !quote.IsComplete() {
		return nil, fmt.Errorf("%w: feed is missing EUR or USD", apperrors.ErrQuoteUnavailable)
	}
	return &quote, nil
}
