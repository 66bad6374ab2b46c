package fc2ppvdb

import (
	"fc2ppvdb-scraper/lib/stash"
	"fmt"
	"regexp"
)

var MissingIdentifier = fmt.Errorf("Failed to extract id from input")

// video ids are runs of five or more digits
var articleUrlRegex = regexp.MustCompile(`.+/articles/(\d{5,}).*`)
var looseIdRegex = regexp.MustCompile(`.*?(\d{5,}).*`)

// ExtractId pulls the numeric video id out of a scene fragment. The
// sources are tried in a fixed order: the scene url, then the code,
// then the title, then each attached file path. The first match wins.
func ExtractId(frag stash.SceneFragment) (string, error) {
	if frag.Url != "" {
		groups := articleUrlRegex.FindStringSubmatch(frag.Url)
		if groups != nil {
			return groups[1], nil
		}
	}

	if frag.Code != "" {
		groups := looseIdRegex.FindStringSubmatch(frag.Code)
		if groups != nil {
			return groups[1], nil
		}
	}

	if frag.Title != "" {
		groups := looseIdRegex.FindStringSubmatch(frag.Title)
		if groups != nil {
			return groups[1], nil
		}
	}

	for _, file := range frag.Files {
		groups := looseIdRegex.FindStringSubmatch(file.Path)
		if groups != nil {
			return groups[1], nil
		}
	}

	return "", MissingIdentifier
}
