// Copyright 2025 - 2026, the tavernd contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package userdata maps logical user identities to their on-disk directory
trees.

A Template is the fixed, ordered set of logical directory names together
with the relative path fragment each one lives at under a user's root.
Resolving a template against a data root and a handle yields the absolute
directory set for that user. The template is read-only after configuration
load; resolution never writes to it.
*/
package userdata

// Key names a logical directory purpose. Route registration and in-process
// collaborators look directories up by these keys, never by raw paths.
type Key string

// The fixed set of logical directory names.
const (
	KeyRoot             Key = "root"
	KeyThumbnails       Key = "thumbnails"
	KeyThumbnailsBg     Key = "thumbnailsBg"
	KeyThumbnailsAvatar Key = "thumbnailsAvatar"
	KeyWorlds           Key = "worlds"
	KeyUser             Key = "user"
	KeyAvatars          Key = "avatars"
	KeyUserImages       Key = "userImages"
	KeyGroups           Key = "groups"
	KeyGroupChats       Key = "groupChats"
	KeyChats            Key = "chats"
	KeyCharacters       Key = "characters"
	KeyBackgrounds      Key = "backgrounds"
	KeyNovelAI          Key = "novelAI"
	KeyKoboldAI         Key = "koboldAI"
	KeyOpenAI           Key = "openAI"
	KeyTextGen          Key = "textGen"
	KeyInstruct         Key = "instruct"
	KeyContext          Key = "context"
	KeyQuickReplies     Key = "quickReplies"
	KeyAssets           Key = "assets"
	KeyWorkflows        Key = "workflows"
	KeyFiles            Key = "files"
	KeyVectors          Key = "vectors"
	KeyBackups          Key = "backups"
	KeySysprompt        Key = "sysprompt"
	KeyExtensions       Key = "extensions"
)

// Entry is one (logical name, relative path fragment) pair of a Template.
type Entry struct {
	Key      Key    `yaml:"key"`
	Fragment string `yaml:"path"`
}

// Template is an ordered set of directory entries, data-root-agnostic.
type Template []Entry

// DefaultTemplate returns the built-in directory layout.
//
// The returned slice is a fresh copy on every call, so callers that take a
// template from configuration may append or reorder without affecting
// later calls.
func DefaultTemplate() Template {
	return Template{
		{KeyRoot, ""},
		{KeyThumbnails, "thumbnails"},
		{KeyThumbnailsBg, "thumbnails/bg"},
		{KeyThumbnailsAvatar, "thumbnails/avatar"},
		{KeyWorlds, "worlds"},
		{KeyUser, "user"},
		{KeyAvatars, "User Avatars"},
		{KeyUserImages, "user/images"},
		{KeyGroups, "groups"},
		{KeyGroupChats, "group chats"},
		{KeyChats, "chats"},
		{KeyCharacters, "characters"},
		{KeyBackgrounds, "backgrounds"},
		{KeyNovelAI, "NovelAI Settings"},
		{KeyKoboldAI, "KoboldAI Settings"},
		{KeyOpenAI, "OpenAI Settings"},
		{KeyTextGen, "TextGen Settings"},
		{KeyInstruct, "instruct"},
		{KeyContext, "context"},
		{KeyQuickReplies, "QuickReplies"},
		{KeyAssets, "assets"},
		{KeyWorkflows, "user/workflows"},
		{KeyFiles, "user/files"},
		{KeyVectors, "vectors"},
		{KeyBackups, "backups"},
		{KeySysprompt, "sysprompt"},
		{KeyExtensions, "extensions"},
	}
}

// Keys returns the template's logical names in template order.
func (t Template) Keys() []Key {
	keys := make([]Key, len(t))
	for i, entry := range t {
		keys[i] = entry.Key
	}

	return keys
}

// Fragment returns the relative path fragment for key,
// and whether the template contains it.
func (t Template) Fragment(key Key) (string, bool) {
	for _, entry := range t {
		if entry.Key == key {
			return entry.Fragment, true
		}
	}

	return "", false
}
