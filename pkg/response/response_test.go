package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageData(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		pageSize  int
		wantSize  int
		wantPages int
	}{
		{"整除", 40, 1, 20, 20, 2},
		{"有余数进一页", 41, 1, 20, 20, 3},
		{"空列表", 0, 1, 20, 20, 0},
		{"pageSize为0按默认页长兜底", 5, 1, 0, 20, 1},
		{"pageSize为负按默认页长兜底", 5, 1, -3, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pd *PageData
			require.NotPanics(t, func() {
				pd = NewPageData(nil, tt.total, tt.page, tt.pageSize)
			})
			assert.Equal(t, tt.wantSize, pd.PageSize)
			assert.Equal(t, tt.wantPages, pd.TotalPages)
		})
	}
}
