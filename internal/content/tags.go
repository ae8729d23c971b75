package content

import (
	"context"
	"regexp"
	"strings"

	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/domain"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

var (
	tagWhitespaceRe = regexp.MustCompile(`\s+`)
	tagStripRe      = regexp.MustCompile(`[^a-z0-9-]`)
)

// TagNameToSlug converts a display tag to its URL form. Idempotent: applying
// it to an existing slug yields the same slug.
func TagNameToSlug(tagName string) string {
	s := strings.ToLower(tagName)
	s = tagWhitespaceRe.ReplaceAllString(s, "-")
	return tagStripRe.ReplaceAllString(s, "")
}

// SlugToDisplayName rebuilds a readable name from a tag slug. Capitalization
// of the original tag is not recoverable; words are simply title-cased.
func SlugToDisplayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ActivityByTag lists published activity posts carrying the tag in either of
// the two independent tag sets, matched case-insensitively. Tag sets are JSON
// fields the CMS cannot filter reliably, so matching happens here.
func (s *Service) ActivityByTag(ctx context.Context, tagName string) ([]domain.ActivityArticle, error) {
	var articles []domain.ActivityArticle
	err := s.cms.ListItems(ctx, CollectionActivity, directus.Query{
		Filter: directus.Eq("status", domain.StatusPublished),
		Sort:   []string{"-published_at"},
	}, &articles)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(tagName)
	matched := articles[:0]
	for _, article := range articles {
		if hasTag(article.GenericTags, want) || hasTag(article.ProjectTags, want) {
			matched = append(matched, article)
		}
	}
	return matched, nil
}

func hasTag(tags []string, wantLower string) bool {
	for _, t := range tags {
		if strings.ToLower(t) == wantLower {
			return true
		}
	}
	return false
}

// ActivityByTagSlug lists published activity posts for a tag addressed by its
// URL slug. A curated tag description, when one exists for the slug, carries
// the canonical tag_name; without one each article tag is slugged and compared,
// so tag names with punctuation still resolve from their own slug.
func (s *Service) ActivityByTagSlug(ctx context.Context, slug string) ([]domain.ActivityArticle, error) {
	desc, err := s.ProjectTagDescriptionBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if desc != nil && desc.TagName != "" {
		return s.ActivityByTag(ctx, desc.TagName)
	}

	var articles []domain.ActivityArticle
	err = s.cms.ListItems(ctx, CollectionActivity, directus.Query{
		Filter: directus.Eq("status", domain.StatusPublished),
		Sort:   []string{"-published_at"},
	}, &articles)
	if err != nil {
		return nil, err
	}

	matched := articles[:0]
	for _, article := range articles {
		if hasTagSlug(article.GenericTags, slug) || hasTagSlug(article.ProjectTags, slug) {
			matched = append(matched, article)
		}
	}
	return matched, nil
}

func hasTagSlug(tags []string, slug string) bool {
	for _, t := range tags {
		if TagNameToSlug(t) == slug {
			return true
		}
	}
	return false
}

// ProjectTagDescriptions lists the curated tag descriptions in sort order.
// The collection is optional; a missing collection yields an empty list.
func (s *Service) ProjectTagDescriptions(ctx context.Context) ([]domain.ProjectTagDescription, error) {
	var descriptions []domain.ProjectTagDescription
	err := s.cms.ListItems(ctx, "project_tag_descriptions", directus.Query{
		Sort: []string{"sort"},
	}, &descriptions)
	if err != nil {
		if directus.IsNotFound(err) {
			logger.Log.Warn("project_tag_descriptions collection not configured")
			return nil, nil
		}
		return nil, err
	}
	return descriptions, nil
}

// ProjectTagDescriptionBySlug fetches one tag description, nil when absent.
func (s *Service) ProjectTagDescriptionBySlug(ctx context.Context, slug string) (*domain.ProjectTagDescription, error) {
	var descriptions []domain.ProjectTagDescription
	err := s.cms.ListItems(ctx, "project_tag_descriptions", directus.Query{
		Filter: directus.Eq("slug", slug),
		Limit:  1,
	}, &descriptions)
	if err != nil {
		if directus.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(descriptions) == 0 {
		return nil, nil
	}
	return &descriptions[0], nil
}
