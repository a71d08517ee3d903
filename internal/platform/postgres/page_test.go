package postgres

import "testing"

func TestClampPage(t *testing.T) {
	tests := []struct {
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{0, 0, DefaultDraftPageSize, 0},
		{-5, -1, DefaultDraftPageSize, 0},
		{10, 30, 10, 30},
		{1000, 0, MaxDraftPageSize, 0},
	}

	for _, tt := range tests {
		limit, offset := clampPage(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffs {
			t.Errorf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffs)
		}
	}
}
