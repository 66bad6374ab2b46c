package fc2ppvdb

import (
	"fc2ppvdb-scraper/lib/stash"
	"fmt"
	"strings"
)

// MissingFieldError reports a key the article payload was expected to
// carry but did not.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("%q cannot be found", e.Field)
}

// the payload behind /articles/article-info
type articleInfo struct {
	Article *article `json:"article"`
}

type article struct {
	Title       *string          `json:"title"`
	ReleaseDate *string          `json:"release_date"`
	VideoId     any              `json:"video_id"`
	ImageUrl    *string          `json:"image_url"`
	Writer      *articleWriter   `json:"writer"`
	Tags        []articleTag     `json:"tags"`
	Actresses   []articleActress `json:"actresses"`
}

type articleWriter struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type articleTag struct {
	Name *string `json:"name"`
}

type articleActress struct {
	Name *string `json:"name"`
	Id   any     `json:"id"`
}

// exportScene normalizes a decoded article payload into the record the
// host expects. baseUrl prefixes every relative link the payload hands
// back. the video id echoed by the api, not the one that was requested,
// ends up in the code and url fields.
func exportScene(baseUrl string, payload articleInfo) (stash.ScrapedScene, error) {
	if payload.Article == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "article"}
	}
	art := payload.Article

	if art.Tags == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "tags"}
	}
	tags := []stash.ScrapedTag{}
	for _, tag := range art.Tags {
		if tag.Name == nil {
			return stash.ScrapedScene{}, MissingFieldError{Field: "name"}
		}
		tags = append(tags, stash.ScrapedTag{Name: *tag.Name})
	}

	if art.Actresses == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "actresses"}
	}
	performers := []stash.ScrapedPerformer{}
	for _, actress := range art.Actresses {
		if actress.Name == nil {
			return stash.ScrapedScene{}, MissingFieldError{Field: "name"}
		}
		if actress.Id == nil {
			return stash.ScrapedScene{}, MissingFieldError{Field: "id"}
		}
		performers = append(performers, stash.ScrapedPerformer{
			Name: *actress.Name,
			Urls: []string{fmt.Sprintf("%s/actresses/%s", baseUrl, jsonScalar(actress.Id))},
		})
	}

	if art.ImageUrl == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "image_url"}
	}
	image := *art.ImageUrl
	if !strings.HasPrefix(image, "https") {
		image = baseUrl + image
	}

	if art.Title == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "title"}
	}
	if art.ReleaseDate == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "release_date"}
	}
	if art.Writer == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "writer"}
	}
	if art.Writer.Name == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "name"}
	}
	if art.Writer.Slug == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "slug"}
	}
	if art.VideoId == nil {
		return stash.ScrapedScene{}, MissingFieldError{Field: "video_id"}
	}
	videoId := jsonScalar(art.VideoId)

	return stash.ScrapedScene{
		Title:      *art.Title,
		Date:       *art.ReleaseDate,
		Tags:       tags,
		Performers: performers,
		Studio: stash.ScrapedStudio{
			Name: *art.Writer.Name,
			Url:  fmt.Sprintf("%s/writers/%s", baseUrl, *art.Writer.Slug),
		},
		Director: *art.Writer.Name,
		Code:     "FC2-PPV-" + videoId,
		Image:    image,
		Url:      fmt.Sprintf("%s/articles/%s", baseUrl, videoId),
	}, nil
}

// the api is loose about scalar types, ids in particular show up as
// both strings and numbers
func jsonScalar(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
