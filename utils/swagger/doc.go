package swagger

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// DocInfo describes the API in the generated document
type DocInfo struct {
	Title   string
	Version string
	// BasePath is stripped when deriving tags
	BasePath string
	// Routes under these prefixes are documented without BearerAuth
	PublicPrefixes []string
}

// BuildDoc derives an OpenAPI 3 document from the registered gin routes.
// Only routes under BasePath are documented.
func BuildDoc(info DocInfo, routes gin.RoutesInfo) map[string]interface{} {
	sorted := make(gin.RoutesInfo, len(routes))
	copy(sorted, routes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Method < sorted[j].Method
	})

	paths := map[string]map[string]interface{}{}
	for _, r := range sorted {
		if info.BasePath != "" && !strings.HasPrefix(r.Path, info.BasePath) {
			continue
		}
		path, params := openAPIPath(r.Path)

		op := map[string]interface{}{
			"operationId": strings.ToLower(r.Method) + strings.NewReplacer("/", "_", "{", "", "}", "").Replace(path),
			"tags":        []string{tagOf(strings.TrimPrefix(r.Path, info.BasePath))},
			"responses": map[string]interface{}{
				"default": map[string]interface{}{
					"description": "APIResponse envelope",
					"content": map[string]interface{}{
						"application/json": map[string]interface{}{
							"schema": map[string]interface{}{"$ref": "#/components/schemas/APIResponse"},
						},
					},
				},
			},
		}
		if len(params) > 0 {
			parameters := make([]map[string]interface{}, 0, len(params))
			for _, p := range params {
				parameters = append(parameters, map[string]interface{}{
					"name":     p,
					"in":       "path",
					"required": true,
					"schema":   map[string]string{"type": "string"},
				})
			}
			op["parameters"] = parameters
		}
		if !isPublic(info.PublicPrefixes, r.Path) {
			op["security"] = []map[string][]string{{"BearerAuth": {}}}
		}
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			op["requestBody"] = map[string]interface{}{
				"content": map[string]interface{}{
					"application/json": map[string]interface{}{
						"schema": map[string]string{"type": "object"},
					},
				},
			}
		}

		if paths[path] == nil {
			paths[path] = map[string]interface{}{}
		}
		paths[path][strings.ToLower(r.Method)] = op
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]string{
			"title":   info.Title,
			"version": info.Version,
		},
		"paths": paths,
		"components": map[string]interface{}{
			"securitySchemes": map[string]interface{}{
				"BearerAuth": map[string]string{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
			"schemas": map[string]interface{}{
				"APIResponse": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"status":  map[string]string{"type": "string"},
						"code":    map[string]string{"type": "integer"},
						"message": map[string]string{"type": "string"},
						"data":    map[string]interface{}{},
						"count":   map[string]string{"type": "integer"},
						"error": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"type":    map[string]string{"type": "string"},
								"details": map[string]string{"type": "string"},
								"field":   map[string]string{"type": "string"},
							},
						},
					},
				},
			},
		},
	}
}

// ServeDoc serves the document built from engine's routes at request time
func ServeDoc(info DocInfo, engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, BuildDoc(info, engine.Routes()))
	}
}

// openAPIPath rewrites gin's :param segments to {param}
func openAPIPath(path string) (string, []string) {
	segments := strings.Split(path, "/")
	var params []string
	for i, s := range segments {
		if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "*") {
			name := s[1:]
			params = append(params, name)
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/"), params
}

func tagOf(path string) string {
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			return s
		}
	}
	return "root"
}

func isPublic(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
