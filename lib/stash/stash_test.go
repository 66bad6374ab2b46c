package stash

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	testCases := []struct {
		input    string
		expected Operation
		ok       bool
	}{
		{input: "scene-by-fragment", expected: SceneByFragment, ok: true},
		{input: "scene-by-url", expected: SceneByURL, ok: true},
		{input: "scene-by-name", ok: false},
		{input: "", ok: false},
	}

	for _, test := range testCases {
		op, err := ParseOperation(test.input)
		if !test.ok {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, test.expected, op)
	}
}

func TestReadFragment(t *testing.T) {
	input := `{
		"title": "FC2-PPV-4544576",
		"url": "https://fc2ppvdb.com/articles/4544576",
		"files": [{"path": "/media/FC2-PPV-4544576.mp4"}]
	}`

	frag, err := ReadFragment(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "FC2-PPV-4544576", frag.Title)
	require.Equal(t, "https://fc2ppvdb.com/articles/4544576", frag.Url)
	require.Equal(t, []SceneFile{{Path: "/media/FC2-PPV-4544576.mp4"}}, frag.Files)
}

func TestReadFragmentRejectsGarbage(t *testing.T) {
	_, err := ReadFragment(strings.NewReader("scene-by-fragment"))
	require.Error(t, err)
}

func TestWriteScene(t *testing.T) {
	scene := ScrapedScene{
		Title:      "PPV souvenir",
		Date:       "2025-01-02",
		Tags:       []ScrapedTag{},
		Performers: []ScrapedPerformer{},
		Studio:     ScrapedStudio{Name: "souvenir", Url: "https://fc2ppvdb.com/writers/souvenir"},
		Director:   "souvenir",
		Code:       "FC2-PPV-4544576",
		Image:      "https://fc2ppvdb.com/storage/thumb.jpg",
		Url:        "https://fc2ppvdb.com/articles/4544576",
	}

	var buf bytes.Buffer
	err := WriteScene(&buf, scene)
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "\n"))
	require.True(t, strings.HasSuffix(out, "\n"))
	// the host still expects the collection keys when they are empty
	require.Contains(t, out, `"tags":[]`)
	require.Contains(t, out, `"performers":[]`)
	require.Contains(t, out, `"code":"FC2-PPV-4544576"`)
}
