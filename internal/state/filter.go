package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterTracks returns the tracks matching query in their original order.
// Fuzzy matches win; when nothing matches fuzzily a plain case-insensitive
// substring match over the label and album name is used instead.
func FilterTracks(tracks []Track, query string) []Track {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return tracks
	}
	labels := make([]string, len(tracks))
	for i, t := range tracks {
		labels[i] = t.Label()
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Track, 0, len(matches))
		for idx, t := range tracks {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, t)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if strings.Contains(strings.ToLower(t.Label()), lower) {
			filtered = append(filtered, t)
			continue
		}
		if t.Album != nil && strings.Contains(strings.ToLower(t.Album.Name), lower) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// VisibleTracks applies the window filter when one is set.
func (w WindowState) VisibleTracks(tracks []Track) []Track {
	if w.Filter == "" {
		return tracks
	}
	return FilterTracks(tracks, w.Filter)
}

// TrackURIs lists the URIs of tracks in order.
func TrackURIs(tracks []Track) []string {
	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI()
	}
	return uris
}
