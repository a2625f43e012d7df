package utils

import "testing"

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.50 KB"},
		{1048576, "1 MB"},
		{2621440, "2.50 MB"},
		{1073741824, "1 GB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.bytes); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %s, want %s", tc.bytes, got, tc.want)
		}
	}
}
