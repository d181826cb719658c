// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want FormatClass
	}{
		{"/docs/report.pdf", FormatPDF},
		{"/docs/REPORT.PDF", FormatPDF},
		{"notes.txt", FormatText},
		{"photo.jpg", FormatImage},
		{"photo.JPEG", FormatImage},
		{"anim.gif", FormatImage},
		{"chart.png", FormatImage},
		{"letter.doc", FormatOffice},
		{"letter.docx", FormatOffice},
		{"letter.odt", FormatOffice},
		{"letter.rtf", FormatOffice},
		{"archive.zip", FormatUnsupported},
		{"Makefile", FormatUnsupported},
		{"", FormatUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestParseReadFilter(t *testing.T) {
	for _, valid := range []string{"all", "read", "unread"} {
		f, err := ParseReadFilter(valid)
		require.NoError(t, err)
		assert.Equal(t, ReadFilter(valid), f)
	}

	_, err := ParseReadFilter("gelesene")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gelesene")
}

func TestReadFilterMatches(t *testing.T) {
	read := DocumentRef{Path: "a.pdf", Read: true}
	unread := DocumentRef{Path: "b.pdf"}

	assert.True(t, FilterAll.Matches(read))
	assert.True(t, FilterAll.Matches(unread))
	assert.True(t, FilterRead.Matches(read))
	assert.False(t, FilterRead.Matches(unread))
	assert.False(t, FilterUnread.Matches(read))
	assert.True(t, FilterUnread.Matches(unread))
}
