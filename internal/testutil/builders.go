// Package testutil provides testing utilities and helpers for the LinkPilot API.
package testutil

import (
	"fmt"
	"time"

	"github.com/linkpilot/linkpilot-api/internal/domain/model"
)

// BrandRequestBuilder provides a fluent interface for building CreateBrandRequest objects.
type BrandRequestBuilder struct {
	req *model.CreateBrandRequest
}

// NewBrandRequest creates a new BrandRequestBuilder with sensible defaults.
func NewBrandRequest() *BrandRequestBuilder {
	return &BrandRequestBuilder{
		req: &model.CreateBrandRequest{
			Name:    "Acme Running",
			SiteURL: "https://www.acmerunning.com",
			Country: "us",
		},
	}
}

// WithName sets the brand name.
func (b *BrandRequestBuilder) WithName(name string) *BrandRequestBuilder {
	b.req.Name = name
	return b
}

// WithSiteURL sets the brand site URL.
func (b *BrandRequestBuilder) WithSiteURL(siteURL string) *BrandRequestBuilder {
	b.req.SiteURL = siteURL
	return b
}

// WithCountry sets the brand country.
func (b *BrandRequestBuilder) WithCountry(country string) *BrandRequestBuilder {
	b.req.Country = country
	return b
}

// Build returns the constructed CreateBrandRequest.
func (b *BrandRequestBuilder) Build() *model.CreateBrandRequest {
	return b.req
}

// BacklinkRequestBuilder provides a fluent interface for building CreateBacklinkRequest objects.
type BacklinkRequestBuilder struct {
	req *model.CreateBacklinkRequest
}

// NewBacklinkRequest creates a new BacklinkRequestBuilder with sensible defaults.
func NewBacklinkRequest(brandID string) *BacklinkRequestBuilder {
	return &BacklinkRequestBuilder{
		req: &model.CreateBacklinkRequest{
			BrandID:    brandID,
			URL:        "https://blog.example.com/best-running-shoes",
			AnchorText: "best running shoes",
		},
	}
}

// WithURL sets the backlink URL.
func (b *BacklinkRequestBuilder) WithURL(url string) *BacklinkRequestBuilder {
	b.req.URL = url
	return b
}

// WithDomainRating sets the referring domain rating.
func (b *BacklinkRequestBuilder) WithDomainRating(rating int) *BacklinkRequestBuilder {
	b.req.DomainRating = &rating
	return b
}

// WithDomainTraffic sets the referring domain traffic.
func (b *BacklinkRequestBuilder) WithDomainTraffic(traffic int) *BacklinkRequestBuilder {
	b.req.DomainTraffic = &traffic
	return b
}

// WithNofollow marks the backlink nofollow.
func (b *BacklinkRequestBuilder) WithNofollow() *BacklinkRequestBuilder {
	b.req.Nofollow = true
	return b
}

// WithAcquiredOn sets the acquisition date.
func (b *BacklinkRequestBuilder) WithAcquiredOn(acquired time.Time) *BacklinkRequestBuilder {
	b.req.AcquiredOn = &acquired
	return b
}

// Build returns the constructed CreateBacklinkRequest.
func (b *BacklinkRequestBuilder) Build() *model.CreateBacklinkRequest {
	return b.req
}

// ProspectRequestBuilder provides a fluent interface for building CreateProspectRequest objects.
type ProspectRequestBuilder struct {
	req *model.CreateProspectRequest
}

// NewProspectRequest creates a new ProspectRequestBuilder with sensible defaults.
func NewProspectRequest(brandID string) *ProspectRequestBuilder {
	return &ProspectRequestBuilder{
		req: &model.CreateProspectRequest{
			BrandID: brandID,
			URL:     "https://gear.example.org/reviews",
		},
	}
}

// WithURL sets the prospect URL.
func (b *ProspectRequestBuilder) WithURL(url string) *ProspectRequestBuilder {
	b.req.URL = url
	return b
}

// WithStatus sets the outreach status.
func (b *ProspectRequestBuilder) WithStatus(status model.ProspectStatus) *ProspectRequestBuilder {
	b.req.Status = status
	return b
}

// WithDomainRating sets the prospect domain rating.
func (b *ProspectRequestBuilder) WithDomainRating(rating int) *ProspectRequestBuilder {
	b.req.DomainRating = &rating
	return b
}

// WithContactEmail sets the outreach contact email.
func (b *ProspectRequestBuilder) WithContactEmail(email string) *ProspectRequestBuilder {
	b.req.ContactEmail = &email
	return b
}

// Build returns the constructed CreateProspectRequest.
func (b *ProspectRequestBuilder) Build() *model.CreateProspectRequest {
	return b.req
}

// KeywordRequestBuilder provides a fluent interface for building CreateTrackedKeywordRequest objects.
type KeywordRequestBuilder struct {
	req *model.CreateTrackedKeywordRequest
}

// NewKeywordRequest creates a new KeywordRequestBuilder with sensible defaults.
func NewKeywordRequest(brandID string) *KeywordRequestBuilder {
	return &KeywordRequestBuilder{
		req: &model.CreateTrackedKeywordRequest{
			BrandID: brandID,
			Keyword: "running shoes",
			Country: "us",
		},
	}
}

// WithKeyword sets the keyword text.
func (b *KeywordRequestBuilder) WithKeyword(keyword string) *KeywordRequestBuilder {
	b.req.Keyword = keyword
	return b
}

// WithCountry sets the keyword country.
func (b *KeywordRequestBuilder) WithCountry(country string) *KeywordRequestBuilder {
	b.req.Country = country
	return b
}

// WithDomain sets the tracked domain.
func (b *KeywordRequestBuilder) WithDomain(domain string) *KeywordRequestBuilder {
	b.req.Domain = domain
	return b
}

// Build returns the constructed CreateTrackedKeywordRequest.
func (b *KeywordRequestBuilder) Build() *model.CreateTrackedKeywordRequest {
	return b.req
}

// RankRequestBuilder provides a fluent interface for building RecordRankRequest objects.
type RankRequestBuilder struct {
	req *model.RecordRankRequest
}

// NewRankRequest creates a new RankRequestBuilder with sensible defaults.
func NewRankRequest(keywordID string) *RankRequestBuilder {
	return &RankRequestBuilder{
		req: &model.RecordRankRequest{
			KeywordID: keywordID,
			Position:  10,
			Source:    model.RankSourceManual,
		},
	}
}

// WithPosition sets the observed position.
func (b *RankRequestBuilder) WithPosition(position int) *RankRequestBuilder {
	b.req.Position = position
	return b
}

// WithDay sets the observation day.
func (b *RankRequestBuilder) WithDay(day time.Time) *RankRequestBuilder {
	b.req.Day = &day
	return b
}

// WithSource sets the observation source.
func (b *RankRequestBuilder) WithSource(source string) *RankRequestBuilder {
	b.req.Source = source
	return b
}

// WithRankedURL sets the ranking URL.
func (b *RankRequestBuilder) WithRankedURL(url string) *RankRequestBuilder {
	b.req.RankedURL = &url
	return b
}

// WithSearchVolume sets the keyword search volume.
func (b *RankRequestBuilder) WithSearchVolume(volume int) *RankRequestBuilder {
	b.req.SearchVolume = &volume
	return b
}

// Build returns the constructed RecordRankRequest.
func (b *RankRequestBuilder) Build() *model.RecordRankRequest {
	return b.req
}

// UniqueBrandName returns a brand name unlikely to collide across tests
// sharing one database.
func UniqueBrandName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
