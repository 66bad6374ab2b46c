package fc2ppvdb

import (
	"fc2ppvdb-scraper/lib/stash"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractId(t *testing.T) {
	testCases := []struct {
		name     string
		frag     stash.SceneFragment
		expected string
	}{
		{
			name:     "article url",
			frag:     stash.SceneFragment{Url: "https://fc2ppvdb.com/articles/4544576"},
			expected: "4544576",
		},
		{
			name: "url wins over code",
			frag: stash.SceneFragment{
				Url:  "https://fc2ppvdb.com/articles/4544576?ref=top",
				Code: "FC2-PPV-1111111",
			},
			expected: "4544576",
		},
		{
			name: "non-article url falls through to code",
			frag: stash.SceneFragment{
				Url:  "https://fc2ppvdb.com/actresses/12345",
				Code: "FC2-PPV-4620103",
			},
			expected: "4620103",
		},
		{
			name:     "code",
			frag:     stash.SceneFragment{Code: "FC2-PPV-4544576-2"},
			expected: "4544576",
		},
		{
			name:     "title",
			frag:     stash.SceneFragment{Title: "【個人撮影】FC2-PPV-4620103 初撮り"},
			expected: "4620103",
		},
		{
			name: "first matching file path",
			frag: stash.SceneFragment{
				Files: []stash.SceneFile{
					{Path: "/media/sample.mp4"},
					{Path: "/media/FC2-PPV-4544576/FC2-PPV-4544576.mp4"},
				},
			},
			expected: "4544576",
		},
		{
			name: "title wins over files",
			frag: stash.SceneFragment{
				Title: "FC2-PPV-4620103",
				Files: []stash.SceneFile{{Path: "/media/FC2-PPV-4544576.mp4"}},
			},
			expected: "4620103",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			id, err := ExtractId(test.frag)
			require.NoError(t, err)
			require.Equal(t, test.expected, id)
		})
	}
}

func TestExtractIdMissing(t *testing.T) {
	testCases := []struct {
		name string
		frag stash.SceneFragment
	}{
		{name: "empty fragment", frag: stash.SceneFragment{}},
		{
			// resolutions and dates are too short to be video ids
			name: "short digit runs",
			frag: stash.SceneFragment{
				Code:  "1080p",
				Title: "2024 souvenir",
				Files: []stash.SceneFile{{Path: "/media/720p/scene.mp4"}},
			},
		},
		{
			name: "url without an article id",
			frag: stash.SceneFragment{Url: "https://fc2ppvdb.com/articles/"},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ExtractId(test.frag)
			require.ErrorIs(t, err, MissingIdentifier)
		})
	}
}
