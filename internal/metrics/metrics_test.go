package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathPattern(t *testing.T) {
	testCases := []struct {
		name       string
		path       string
		pathValues map[string]string
		expected   string
	}{
		{
			name:       "Parameter In Middle Of Path",
			path:       "/api/v1/shopping-lists/9eb946b7-52c1-4b7e-8a2d-6f3b1c90ea4c/items",
			pathValues: map[string]string{"listId": "9eb946b7-52c1-4b7e-8a2d-6f3b1c90ea4c"},
			expected:   "/api/v1/shopping-lists/{listId}/items",
		},
		{
			name:       "Parameter At End Of Path",
			path:       "/api/v1/items/3f8c2a91-0d4e-4f6b-9c7a-215e8d90bb3f",
			pathValues: map[string]string{"itemId": "3f8c2a91-0d4e-4f6b-9c7a-215e8d90bb3f"},
			expected:   "/api/v1/items/{itemId}",
		},
		{
			name:       "Share Code Parameter",
			path:       "/api/v1/shared/4821",
			pathValues: map[string]string{"code": "4821"},
			expected:   "/api/v1/shared/{code}",
		},
		{
			name:     "No Parameters",
			path:     "/api/v1/shopping-lists",
			expected: "/api/v1/shopping-lists",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			for param, value := range tc.pathValues {
				req.SetPathValue(param, value)
			}

			assert.Equal(t, tc.expected, pathPattern(req))
		})
	}
}
