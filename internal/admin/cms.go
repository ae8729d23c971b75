package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cvan-em/artsnetwork/internal/directus"
	"github.com/cvan-em/artsnetwork/internal/logger"
)

// CMSAdmin is the slice of the CMS API the bootstrap procedures need.
type CMSAdmin interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
	CreateCollection(ctx context.Context, spec directus.CollectionSpec) error
	FieldExists(ctx context.Context, collection, field string) (bool, error)
	CreateField(ctx context.Context, collection string, spec directus.FieldSpec) error
	ListPermissions(ctx context.Context, collection string) ([]directus.Permission, error)
	CreatePermission(ctx context.Context, perm directus.Permission) error
	ListItems(ctx context.Context, collection string, q directus.Query, out any) error
	UpdateItem(ctx context.Context, collection, id string, patch any) error
}

// PublicReadCollections are the collections the website reads anonymously.
var PublicReadCollections = []string{
	"events",
	"opportunities",
	"activity",
	"team_members",
	"home_page",
	"about_page",
	"mentoring_page",
	"activity_page",
	"event_submission_form",
	"opportunity_submission_form",
	"project_tag_descriptions",
	"directus_files",
}

func textField(name string) directus.FieldSpec {
	return directus.FieldSpec{Field: name, Type: "string"}
}

func richTextField(name string) directus.FieldSpec {
	return directus.FieldSpec{
		Field: name,
		Type:  "text",
		Meta:  map[string]any{"interface": "input-rich-text-html"},
	}
}

// SingletonSpecs are the page-content collections the site renders from,
// created on demand so a fresh CMS install serves defaults instead of 403s.
func SingletonSpecs() []directus.CollectionSpec {
	singleton := func(collection string, fields ...directus.FieldSpec) directus.CollectionSpec {
		return directus.CollectionSpec{
			Collection: collection,
			Meta:       map[string]any{"singleton": true},
			Fields:     fields,
		}
	}

	return []directus.CollectionSpec{
		singleton("home_page",
			textField("hero_title"), textField("hero_subtitle"),
			textField("hero_cta_primary_text"), textField("hero_cta_primary_link"),
			textField("hero_cta_secondary_text"), textField("hero_cta_secondary_link"),
			textField("activity_section_title"), richTextField("activity_section_description"),
			textField("events_section_title"), richTextField("events_section_description"),
			textField("opportunities_section_title"), richTextField("opportunities_section_description"),
		),
		singleton("about_page",
			textField("hero_title"), richTextField("hero_description"),
			textField("who_we_are_title"), richTextField("who_we_are_content"),
			textField("what_we_do_title"), richTextField("what_we_do_content"),
			textField("how_we_work_title"), richTextField("how_we_work_content"),
			textField("national_network_title"), richTextField("national_network_content"),
			textField("accessibility_title"), richTextField("accessibility_content"),
			richTextField("steering_group_description"),
		),
		singleton("mentoring_page",
			textField("hero_title"), richTextField("hero_description"),
			textField("about_programme_title"), richTextField("about_programme_content"),
			textField("who_can_apply_title"), richTextField("who_can_apply_content"),
			textField("what_we_offer_title"), richTextField("what_we_offer_content"),
			textField("get_involved_title"), richTextField("get_involved_content"),
			textField("calendly_url"),
		),
		singleton("activity_page",
			textField("hero_title"), richTextField("hero_description"),
		),
		singleton("event_submission_form",
			textField("page_title"), richTextField("intro_text"),
			richTextField("success_message"), richTextField("review_text"),
		),
		singleton("opportunity_submission_form",
			textField("page_title"), richTextField("intro_text"),
			richTextField("success_message"), richTextField("review_text"),
		),
	}
}

// EnsureCollections creates any listed collections that do not exist yet.
// Returns the names created.
func EnsureCollections(ctx context.Context, cms CMSAdmin, specs []directus.CollectionSpec) ([]string, error) {
	var created []string
	for _, spec := range specs {
		exists, err := cms.CollectionExists(ctx, spec.Collection)
		if err != nil {
			return created, fmt.Errorf("check collection %s: %w", spec.Collection, err)
		}
		if exists {
			logger.Log.Info("collection exists, skipping", "collection", spec.Collection)
			continue
		}
		if err := cms.CreateCollection(ctx, spec); err != nil {
			return created, fmt.Errorf("create collection %s: %w", spec.Collection, err)
		}
		logger.Log.Info("created collection", "collection", spec.Collection)
		created = append(created, spec.Collection)
	}
	return created, nil
}

// EnsurePublicRead grants anonymous read on each collection that lacks it.
// Returns the collections that received a new grant.
func EnsurePublicRead(ctx context.Context, cms CMSAdmin, collections []string) ([]string, error) {
	var granted []string
	for _, collection := range collections {
		perms, err := cms.ListPermissions(ctx, collection)
		if err != nil {
			return granted, fmt.Errorf("list permissions for %s: %w", collection, err)
		}

		if hasPublicRead(perms) {
			logger.Log.Info("public read already granted, skipping", "collection", collection)
			continue
		}

		err = cms.CreatePermission(ctx, directus.Permission{
			Role:       nil, // public role
			Collection: collection,
			Action:     "read",
			Fields:     []string{"*"},
		})
		if err != nil {
			return granted, fmt.Errorf("grant public read on %s: %w", collection, err)
		}
		logger.Log.Info("granted public read", "collection", collection)
		granted = append(granted, collection)
	}
	return granted, nil
}

func hasPublicRead(perms []directus.Permission) bool {
	for _, p := range perms {
		if p.Role == nil && p.Action == "read" {
			return true
		}
	}
	return false
}

// taggedRecord is the minimal shape RenameTag reads: the id plus the two
// tag arrays activity articles carry.
type taggedRecord struct {
	Id          int64    `json:"id"`
	GenericTags []string `json:"generic_tags"`
	ProjectTags []string `json:"project_tags"`
}

// RenameTag rewrites every occurrence of oldName to newName in the tag
// arrays of a collection. Returns the number of records updated.
func RenameTag(ctx context.Context, cms CMSAdmin, collection, oldName, newName string) (int, error) {
	var records []taggedRecord
	if err := cms.ListItems(ctx, collection, directus.Query{}, &records); err != nil {
		return 0, fmt.Errorf("list %s: %w", collection, err)
	}

	updated := 0
	for _, rec := range records {
		generic, changedGeneric := replaceTag(rec.GenericTags, oldName, newName)
		project, changedProject := replaceTag(rec.ProjectTags, oldName, newName)
		if !changedGeneric && !changedProject {
			continue
		}

		patch := map[string]any{}
		if changedGeneric {
			patch["generic_tags"] = mustJSON(generic)
		}
		if changedProject {
			patch["project_tags"] = mustJSON(project)
		}

		id := strconv.FormatInt(rec.Id, 10)
		if err := cms.UpdateItem(ctx, collection, id, patch); err != nil {
			return updated, fmt.Errorf("update %s/%s: %w", collection, id, err)
		}
		logger.Log.Info("renamed tag", "collection", collection, "id", rec.Id, "old", oldName, "new", newName)
		updated++
	}
	return updated, nil
}

func replaceTag(tags []string, oldName, newName string) ([]string, bool) {
	changed := false
	out := make([]string, len(tags))
	for i, tag := range tags {
		if tag == oldName {
			out[i] = newName
			changed = true
		} else {
			out[i] = tag
		}
	}
	return out, changed
}

func mustJSON(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
