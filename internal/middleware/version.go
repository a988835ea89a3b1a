package middleware

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersion describes one published version of the HTTP API
type APIVersion struct {
	Version    string     `json:"version"`
	Status     string     `json:"status"` // "active" or "deprecated"
	SunsetDate *time.Time `json:"sunset_date,omitempty"`
	Message    string     `json:"message,omitempty"`
}

type VersionMiddleware struct {
	versions       map[string]APIVersion
	defaultVersion string
}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		versions: map[string]APIVersion{
			"v1": {Version: "v1", Status: "active", Message: "Current stable API version"},
		},
		defaultVersion: "v1",
	}
}

// Deprecate marks a version as deprecated with an optional sunset date.
func (vm *VersionMiddleware) Deprecate(version, message string, sunset *time.Time) {
	vm.versions[version] = APIVersion{Version: version, Status: "deprecated", SunsetDate: sunset, Message: message}
}

// VersionHeader stamps responses of a route group with its API version
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", version)

			if ver, ok := vm.versions[version]; ok {
				h.Set("X-API-Message", ver.Message)
				if ver.Status == "deprecated" {
					h.Set("X-API-Deprecated", "true")
					if ver.SunsetDate != nil {
						h.Set("X-API-Sunset", ver.SunsetDate.Format(time.RFC3339))
						h.Set("Warning", `299 stockroom "This API version will be removed on `+ver.SunsetDate.Format("2006-01-02")+`"`)
					}
				}
			}
			return next(c)
		}
	}
}

// APIVersionResolver rejects requests for unknown /vN prefixes and records
// the resolved version on the echo context under "api_version".
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version := versionFromPath(c.Request().URL.Path)
			if version == "" {
				c.Set("api_version", vm.defaultVersion)
				return next(c)
			}
			if _, ok := vm.versions[version]; !ok {
				return c.JSON(http.StatusNotFound, map[string]string{
					"error":              "Unsupported API version",
					"supported_versions": strings.Join(vm.supported(), ", "),
				})
			}
			c.Set("api_version", version)
			return next(c)
		}
	}
}

// versionFromPath returns "vN" when the first path segment looks like a version.
func versionFromPath(path string) string {
	segment := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	if len(segment) < 2 || segment[0] != 'v' {
		return ""
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return segment
}

func (vm *VersionMiddleware) supported() []string {
	out := make([]string, 0, len(vm.versions))
	for v := range vm.versions {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
