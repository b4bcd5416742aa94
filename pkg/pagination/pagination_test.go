// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
	}{
		{name: "defaults", query: "", expectedPage: 1, expectedLimit: 20},
		{name: "explicit values", query: "?page=3&limit=50", expectedPage: 3, expectedLimit: 50},
		{name: "zero page clamped", query: "?page=0", expectedPage: 1, expectedLimit: 20},
		{name: "negative limit clamped", query: "?limit=-5", expectedPage: 1, expectedLimit: 20},
		{name: "excessive limit clamped", query: "?limit=5000", expectedPage: 1, expectedLimit: 20},
		{name: "garbage input ignored", query: "?page=abc&limit=xyz", expectedPage: 1, expectedLimit: 20},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/books"+tc.query, nil)

			params := FromRequest(request)

			assert.Equal(t, tc.expectedPage, params.Page)
			assert.Equal(t, tc.expectedLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, Params{Page: 0, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasMore)

	lastPage := NewMeta(3, 20, 45)
	assert.False(t, lastPage.HasMore)

	empty := NewMeta(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasMore)
}
