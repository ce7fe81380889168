package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrBrandNotFound      = errors.New("brand not found")
	ErrBrandNameExists    = errors.New("brand name already exists")
	ErrBacklinkNotFound   = errors.New("backlink not found")
	ErrProspectNotFound   = errors.New("prospect not found")
	ErrLinkDomainNotFound = errors.New("link domain not found")
	ErrKeywordNotFound    = errors.New("tracked keyword not found")
	ErrKeywordExists      = errors.New("keyword is already tracked for this brand and country")
	ErrBatchNotFound      = errors.New("import batch not found")
	ErrWatchNotFound      = errors.New("imposter watch not found")
	ErrJobNotFound        = errors.New("rank job not found")
	ErrScheduleNotFound   = errors.New("rank schedule not found")
)

// Sort direction constants shared by list queries.
const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)
