package services

import "regexp"

// Cache-Control directives assigned by the policy
const (
	CacheOneYear  = "public, max-age=31536000"
	CacheOneMonth = "public, max-age=2592000"
	CacheOneDay   = "public, max-age=86400"
	CacheNone     = "no-cache"
)

// PolicyTier names the classifier that produced a directive
type PolicyTier string

const (
	TierStatus      PolicyTier = "status"
	TierPath        PolicyTier = "path"
	TierContentType PolicyTier = "content_type"
	TierDefault     PolicyTier = "default"
)

const (
	statusOK               = "200"
	statusMovedPermanently = "301"
	statusFound            = "302"

	movedPermanentlyDescription = "Moved Permanently"
)

// contentListPatterns identify index pages that get a shorter lifetime than assets
var contentListPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/albums/$`),
	regexp.MustCompile(`^/tags/`),
}

var cacheByStatusTable = map[string]string{
	statusMovedPermanently: CacheOneYear,
	// Unreachable while redirects are normalized first; kept for callers
	// that evaluate a raw 302.
	statusFound: CacheOneDay,
	"304":       CacheNone,
	"400":       CacheNone,
	"403":       CacheNone,
	"404":       CacheNone,
	"500":       CacheNone,
	"503":       CacheNone,
}

var cacheByMimeTable = map[string]string{
	"image/jpeg":               CacheOneYear,
	"image/png":                CacheOneYear,
	"image/svg+xml":            CacheOneYear,
	"image/gif":                CacheOneYear,
	"text/css":                 CacheOneYear,
	"application/javascript":   CacheOneYear,
	"font/otf":                 CacheOneYear,
	"font/ttf":                 CacheOneYear,
	"application/font-sfnt":    CacheOneYear,
	"image/vnd.microsoft.icon": CacheOneYear,
	"binary/octet-stream":      CacheOneYear,

	"text/html":  CacheOneMonth,
	"text/plain": CacheOneMonth,

	"application/xml": CacheOneDay,
}

// PolicyInput is everything the cache decision depends on
type PolicyInput struct {
	Status      string `json:"status"`
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
}

// classifier yields a directive when it has an opinion about the input
type classifier struct {
	tier     PolicyTier
	classify func(in PolicyInput) (string, bool)
}

// cacheClassifiers are consulted in order; the first directive wins
var cacheClassifiers = []classifier{
	{tier: TierStatus, classify: cacheByStatus},
	{tier: TierPath, classify: cacheByPath},
	{tier: TierContentType, classify: cacheByMime},
}

func cacheByStatus(in PolicyInput) (string, bool) {
	directive, ok := cacheByStatusTable[in.Status]
	return directive, ok
}

func cacheByPath(in PolicyInput) (string, bool) {
	if in.Status == statusOK && IsContentList(in.Path) {
		return CacheOneDay, true
	}
	return "", false
}

func cacheByMime(in PolicyInput) (string, bool) {
	directive, ok := cacheByMimeTable[in.ContentType]
	return directive, ok
}

// IsContentList reports whether path is a listing page such as /albums/ or /tags/...
func IsContentList(path string) bool {
	for _, pattern := range contentListPatterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// DetermineCacheControl runs the decision chain and returns the directive
// together with the tier that produced it.
func DetermineCacheControl(in PolicyInput) (string, PolicyTier) {
	for _, c := range cacheClassifiers {
		if directive, ok := c.classify(in); ok {
			return directive, c.tier
		}
	}
	return CacheNone, TierDefault
}
